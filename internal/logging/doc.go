// Package logging configures the application's slog loggers: a pretty console
// handler for interactive use, a JSON handler for machine consumption, attr
// helper constructors, and a sampler that keeps progress output readable.
package logging
