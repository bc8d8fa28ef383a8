package middleware

import (
	"context"
	"log/slog"
	"net/http"
)

const loggerContextKey contextKey = "logger"

// WithRequestLogger stores a logger pre-tagged with request metadata
// (method, path, request_id, owner_id) in the context. Chain it after
// RequestID and OwnerID so both IDs are available.
func WithRequestLogger(baseLogger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			l := baseLogger.With(
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)
			if id := GetRequestID(r.Context()); id != "" {
				l = l.With(slog.String("request_id", id))
			}
			if owner := GetOwnerID(r.Context()); owner != "" {
				l = l.With(slog.String("owner_id", owner))
			}

			next.ServeHTTP(w, r.WithContext(
				context.WithValue(r.Context(), loggerContextKey, l),
			))
		})
	}
}

// GetLogger returns the request-scoped logger, the fallback if none is
// stored, or slog.Default() as a last resort.
func GetLogger(ctx context.Context, fallback ...*slog.Logger) *slog.Logger {
	if l, ok := ctx.Value(loggerContextKey).(*slog.Logger); ok {
		return l
	}
	if len(fallback) > 0 && fallback[0] != nil {
		return fallback[0]
	}
	return slog.Default()
}
