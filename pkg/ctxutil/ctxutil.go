package ctxutil

import "context"

type ctxKey string

const (
	openIDKey    ctxKey = "open_id"
	requestIDKey ctxKey = "request_id"
)

// WithOpenID stores the caller's open id in the context.
func WithOpenID(ctx context.Context, openID string) context.Context {
	return context.WithValue(ctx, openIDKey, openID)
}

// OpenIDFromCtx extracts the open id from the context.
// Returns "" and false if the value is missing, empty, or the wrong type.
func OpenIDFromCtx(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(openIDKey).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
