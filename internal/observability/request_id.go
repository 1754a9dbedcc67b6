package observability

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

// RequestIDKey stores the request ID in a request context.
const RequestIDKey contextKey = "request_id"

// NewRequestID returns a random UUID.
func NewRequestID() string {
	return uuid.NewString()
}

func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// RequestIDFromContext returns the request ID in ctx, or "" when none was
// set.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}
