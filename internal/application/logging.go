package application

import (
	"context"
	"errors"
	"log/slog"

	"github.com/example/roster-scheduler/internal/logging"
)

func defaultLogger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}

func serviceLogger(ctx context.Context, base *slog.Logger, serviceName, operation string, attrs ...any) *slog.Logger {
	logger := logging.FromContext(ctx)
	if logger == nil {
		logger = base
	}
	if logger == nil {
		logger = slog.Default()
	}

	pairs := []any{"service", serviceName}
	if operation != "" {
		pairs = append(pairs, "operation", operation)
	}
	if len(attrs) > 0 {
		pairs = append(pairs, attrs...)
	}
	return logger.With(pairs...)
}

// ErrorKind maps sentinel and validation errors to a stable logging label.
func ErrorKind(err error) string {
	if err == nil {
		return ""
	}
	switch {
	case errors.Is(err, ErrPastWeekEdit):
		return "past_week_edit"
	case errors.Is(err, ErrStoreNotSelected):
		return "store_not_selected"
	case errors.Is(err, ErrBusinessContextMissing):
		return "business_context_missing"
	case errors.Is(err, ErrUnsavedChanges):
		return "unsaved_changes"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	}

	var pErr *PersistenceFailure
	if errors.As(err, &pErr) {
		return "persistence_failure"
	}

	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return "validation"
	}

	return "unexpected"
}
