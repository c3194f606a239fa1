package logging

import (
	"context"
	"log/slog"

	"vidscribe/internal/services"
)

// Field keys shared by handlers and callers.
const (
	FieldComponent = "component"
	FieldTaskID    = "task_id"
	FieldStage     = "stage"
)

// WithContext returns the logger enriched with any task/stage annotations
// present on the context. A nil logger yields a no-op logger.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	if ctx == nil {
		return logger
	}
	if id, ok := services.TaskIDFromContext(ctx); ok {
		logger = logger.With(String(FieldTaskID, id))
	}
	if stage, ok := services.StageFromContext(ctx); ok {
		logger = logger.With(String(FieldStage, stage))
	}
	return logger
}

// NewComponentLogger tags a logger with a component attribute. A nil base
// logger is replaced with a no-op logger.
func NewComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	return logger.With(String(FieldComponent, component))
}
