// Package config loads and validates the TOML configuration file controlling
// output, subtitle handling, transcription, and network behavior.
package config
