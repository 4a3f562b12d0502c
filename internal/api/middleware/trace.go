// Package middleware provides HTTP middleware for request tracing and metrics.
package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/pmsdemo/pms-api/internal/api/shared"
	"github.com/pmsdemo/pms-api/internal/platform/logger"
)

// TraceHeader carries the trace ID on requests and responses.
const TraceHeader = "X-Trace-ID"

// maxTraceIDLen bounds trace IDs accepted from clients.
const maxTraceIDLen = 128

// NewTraceMiddleware adds a trace ID to the request context.
// An incoming X-Trace-ID header is reused; otherwise a fresh ID is generated.
// The request-scoped logger stored in the context carries the trace ID and,
// when chi's RequestID middleware ran first, the request ID.
// This middleware should be applied early in the middleware chain to ensure
// that all subsequent handlers have access to the trace ID.
func NewTraceMiddleware(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if incoming := strings.TrimSpace(r.Header.Get(TraceHeader)); incoming != "" &&
				len(incoming) <= maxTraceIDLen {
				ctx = shared.WithTraceID(ctx, incoming)
			} else {
				ctx = shared.SetTraceID(ctx)
			}

			traceID := shared.GetTraceID(ctx)
			w.Header().Set(TraceHeader, traceID)

			log := base.With(slog.String("trace_id", traceID))
			if reqID := chimw.GetReqID(ctx); reqID != "" {
				log = log.With(slog.String("request_id", reqID))
			}

			log.Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			ctx = logger.WithContext(ctx, log)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
