package contextutil

import (
	"context"

	"github.com/google/uuid"
)

// Unexported key type so the context key cannot collide with other packages
type contextKey string

const requestIDKey contextKey = "request_id"

// NewRequestID generates a fresh request id for one logical operation
func NewRequestID() string {
	return uuid.NewString()
}

// WithRequestID injects a request id into the context
func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey, rid)
}

// GetRequestID reads the request id from the context, empty when absent
func GetRequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey).(string); ok {
		return rid
	}
	return ""
}
