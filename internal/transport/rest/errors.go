package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/etimoloji/clauson-dictionary/internal/domain"
	"github.com/etimoloji/clauson-dictionary/pkg/ctxutil"
)

// Client-facing messages. Internal error detail never leaves the process.
const (
	msgInternal      = "internal server error"
	msgNotFound      = "not found"
	msgConflict      = "already exists"
	msgForbidden     = "unauthorized access"
	msgAdminDisabled = "admin access is disabled (no passcode configured)"
	msgBadBody       = "invalid request body"
	msgInvalid       = "invalid input"
	msgCanceled      = "request canceled"
)

// statusClientClosedRequest marks requests the client abandoned before a
// response was written. Nobody reads the body; the access log does.
const statusClientClosedRequest = 499

// handleError maps a service error onto a status code and JSON body.
func handleError(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()

	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		fields := make([]fieldErrorResponse, len(ve.Errors))
		for i, fe := range ve.Errors {
			fields[i] = fieldErrorResponse{Field: fe.Field, Message: fe.Message}
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: ve.Error(), Fields: fields})
	case errors.Is(err, domain.ErrValidation):
		// Store-level rejections carry constraint names; keep them in the log.
		log.DebugContext(ctx, "validation rejected by store",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusBadRequest, msgInvalid)
	case errors.Is(err, domain.ErrAdminDisabled):
		writeError(w, http.StatusServiceUnavailable, msgAdminDisabled)
	case errors.Is(err, domain.ErrUnauthorized):
		log.WarnContext(ctx, "admin passcode rejected",
			slog.String("path", r.URL.Path),
			slog.String("client_ip", ctxutil.ClientIPFromCtx(ctx)),
		)
		writeError(w, http.StatusForbidden, msgForbidden)
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, msgNotFound)
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, msgConflict)
	case errors.Is(err, context.Canceled):
		log.DebugContext(ctx, "request canceled", slog.String("path", r.URL.Path))
		writeError(w, statusClientClosedRequest, msgCanceled)
	default:
		log.ErrorContext(ctx, "internal error",
			slog.String("path", r.URL.Path),
			slog.String("request_id", ctxutil.RequestIDFromCtx(ctx)),
		)
		log.DebugContext(ctx, "internal error detail",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, msgInternal)
	}
}
