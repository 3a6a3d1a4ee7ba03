package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/juanitaaa04/ethere-backend/internal/logger"
)

// RequestIDMiddleware adds a unique request ID to each request
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx := logger.WithRequestID(r.Context(), requestID)
		// Also readable through middleware.GetReqID.
		ctx = context.WithValue(ctx, middleware.RequestIDKey, requestID)
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AccessLogger returns chi's RequestLogger backed by slog, so access lines carry
// the same request and trace ids as the rest of the logs.
func AccessLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return middleware.RequestLogger(&accessLogFormatter{log: log})
}

type accessLogFormatter struct {
	log *slog.Logger
}

func (f *accessLogFormatter) NewLogEntry(r *http.Request) middleware.LogEntry {
	return &accessLogEntry{log: f.log, r: r}
}

type accessLogEntry struct {
	log *slog.Logger
	r   *http.Request
}

func (e *accessLogEntry) Write(status, bytes int, header http.Header, elapsed time.Duration, extra interface{}) {
	e.log.InfoContext(e.r.Context(), "http request",
		slog.String("method", e.r.Method),
		slog.String("path", e.r.URL.Path),
		slog.Int("status", status),
		slog.Int("bytes", bytes),
		slog.Duration("duration", elapsed),
		slog.String("remote_addr", e.r.RemoteAddr))
}

func (e *accessLogEntry) Panic(v interface{}, stack []byte) {
	e.log.ErrorContext(e.r.Context(), "panic recovered",
		slog.Any("panic", v),
		slog.String("stack", string(stack)))
}
