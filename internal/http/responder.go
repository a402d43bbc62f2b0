package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/roster-scheduler/internal/application"
)

var (
	errBadRequestBody   = errors.New("invalid request body")
	errInvalidEventID   = errors.New("invalid event id")
	errMethodNotAllowed = errors.New("method not allowed")
)

type errorResponse struct {
	ErrorCode string            `json:"error_code,omitempty"`
	Message   string            `json:"message"`
	Errors    map[string]string `json:"errors,omitempty"`
}

type responder struct {
	logger *slog.Logger
}

func newResponder(logger *slog.Logger) responder {
	if logger == nil {
		logger = slog.Default()
	}
	return responder{logger: logger}
}

func (r responder) writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}

	if status == http.StatusNoContent || payload == nil {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		r.loggerFor(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

func (r responder) writeError(ctx context.Context, w http.ResponseWriter, status int, err error) {
	message := http.StatusText(status)
	if err != nil {
		if msg := strings.TrimSpace(err.Error()); msg != "" {
			message = msg
		}
		r.loggerFor(ctx).ErrorContext(ctx, "request failed", "status", status, "error", err)
	}

	r.writeJSON(ctx, w, status, errorResponse{Message: message})
}

// handleServiceError converts application errors into the blocking-alert
// responses the roster surface shows the user.
func (r responder) handleServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	if err == nil {
		r.writeError(ctx, w, http.StatusInternalServerError, errors.New("unknown error"))
		return
	}

	switch {
	case errors.Is(err, application.ErrPastWeekEdit):
		r.writeJSON(ctx, w, http.StatusConflict, errorResponse{
			ErrorCode: "PAST_WEEK_EDIT",
			Message:   "You cannot edit rosters of past weeks.",
		})
	case errors.Is(err, application.ErrUnsavedChanges):
		r.writeJSON(ctx, w, http.StatusConflict, errorResponse{
			ErrorCode: "UNSAVED_CHANGES",
			Message:   "You have unsaved changes. Confirm to discard them.",
		})
	case errors.Is(err, application.ErrStoreNotSelected):
		r.writeJSON(ctx, w, http.StatusUnprocessableEntity, errorResponse{
			ErrorCode: "STORE_NOT_SELECTED",
			Message:   "Please select a store for saving the roster.",
		})
	case errors.Is(err, application.ErrBusinessContextMissing):
		r.writeJSON(ctx, w, http.StatusUnprocessableEntity, errorResponse{
			ErrorCode: "BUSINESS_CONTEXT_MISSING",
			Message:   "No business context is configured for this session.",
		})
	case errors.Is(err, application.ErrNotFound):
		r.writeJSON(ctx, w, http.StatusNotFound, errorResponse{Message: "The requested resource was not found."})
	default:
		var pErr *application.PersistenceFailure
		if errors.As(err, &pErr) {
			r.loggerFor(ctx).ErrorContext(ctx, "persistence failure", "op", pErr.Op, "error", pErr.Err)
			r.writeJSON(ctx, w, http.StatusBadGateway, errorResponse{
				ErrorCode: "PERSISTENCE_FAILURE",
				Message:   "Failed to save roster.",
			})
			return
		}

		var vErr *application.ValidationError
		if errors.As(err, &vErr) {
			r.writeJSON(ctx, w, http.StatusUnprocessableEntity, errorResponse{
				Message: "The request contains invalid fields.",
				Errors:  vErr.FieldErrors,
			})
			return
		}

		r.loggerFor(ctx).ErrorContext(ctx, "unexpected error", "error", err)
		r.writeJSON(ctx, w, http.StatusInternalServerError, errorResponse{Message: "Internal server error."})
	}
}

func (r responder) loggerFor(ctx context.Context) *slog.Logger {
	if logger := LoggerFromContext(ctx); logger != nil {
		return logger
	}
	return r.logger
}
