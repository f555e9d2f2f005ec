package services

import "context"

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	categoryKey  contextKey = "category"
)

// WithRequestID annotates context with the run correlation identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the correlation identifier if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(requestIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithCategory annotates context with the category being classified.
func WithCategory(ctx context.Context, category string) context.Context {
	if category == "" {
		return ctx
	}
	return context.WithValue(ctx, categoryKey, category)
}

// CategoryFromContext returns the category name if present.
func CategoryFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(categoryKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}
