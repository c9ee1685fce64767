// Package requestctx carries per-request identity values through context.
package requestctx

import "context"

type (
	userIDKey    struct{}
	bearerKey    struct{}
	requestIDKey struct{}
)

// WithUserID stores the authenticated user identifier in context.
func WithUserID(ctx context.Context, userID string) context.Context {
	return withValue(ctx, userIDKey{}, userID)
}

// UserIDFromContext returns the user identifier stored in context.
func UserIDFromContext(ctx context.Context) string {
	return stringValue(ctx, userIDKey{})
}

// WithBearerToken stores the session bearer token that backend calls attach.
func WithBearerToken(ctx context.Context, token string) context.Context {
	return withValue(ctx, bearerKey{}, token)
}

// BearerTokenFromContext returns the bearer token stored in context.
func BearerTokenFromContext(ctx context.Context) string {
	return stringValue(ctx, bearerKey{})
}

// WithRequestID stores the correlation id of the current request.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return withValue(ctx, requestIDKey{}, requestID)
}

// RequestIDFromContext returns the correlation id of the current request.
func RequestIDFromContext(ctx context.Context) string {
	return stringValue(ctx, requestIDKey{})
}

func withValue(ctx context.Context, key any, value string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, key, value)
}

func stringValue(ctx context.Context, key any) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(key).(string)
	return value
}
