package shared

import (
	"context"

	"github.com/google/uuid"
)

// ContextKey is the type used for context values set by the API layer.
type ContextKey string

// Context keys for various values.
const (
	// ProfileIDContextKey is the context key for the session's profile id.
	ProfileIDContextKey ContextKey = "profileID"

	// TraceIDKey is the key for the trace ID in the request context.
	TraceIDKey ContextKey = "traceID"
)

// SetTraceID adds a fresh trace ID to the context.
// This is useful for correlating logs and error responses.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, uuid.New().String())
}

// GetTraceID retrieves the trace ID from the context.
// If no trace ID exists, it returns an empty string.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// ProfileIDFromContext retrieves the session profile id from the context.
func ProfileIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ProfileIDContextKey).(string)
	return id, ok && id != ""
}
