package shared

import (
	"context"

	"github.com/google/uuid"
)

// ContextKey namespaces the request-scoped values this package stores.
type ContextKey string

// TraceIDKey holds the id echoed in the trace header and in error bodies.
const TraceIDKey ContextKey = "traceID"

// SetTraceID stores a newly generated trace id in ctx.
func SetTraceID(ctx context.Context) context.Context {
	return WithTraceID(ctx, uuid.NewString())
}

// WithTraceID stores traceID in ctx, typically one forwarded by a proxy.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// GetTraceID returns the trace id in ctx, or "".
func GetTraceID(ctx context.Context) string {
	id, _ := ctx.Value(TraceIDKey).(string)
	return id
}
