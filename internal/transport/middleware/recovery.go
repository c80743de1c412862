package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/etimoloji/clauson-dictionary/pkg/ctxutil"
)

// Recovery turns a handler panic into a logged 500 response. It usually
// sits outside RequestID, so the request id is read back from the response
// header when the context does not carry one. http.ErrAbortHandler is
// re-raised so the server aborts the connection silently.
func Recovery(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}

				id := ctxutil.RequestIDFromCtx(r.Context())
				if id == "" {
					id = w.Header().Get(RequestIDHeader)
				}
				logger.ErrorContext(r.Context(), "panic recovered",
					slog.Any("error", rec),
					slog.String("stack", string(debug.Stack())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("request_id", id),
				)
				writeError(w, http.StatusInternalServerError, "internal server error")
			}()
			next.ServeHTTP(w, r)
		})
	}
}
