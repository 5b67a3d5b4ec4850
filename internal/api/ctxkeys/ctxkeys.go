// Package ctxkeys holds the context keys shared by api middleware and handlers.
package ctxkeys

import "context"

// Key is the named type for all API context keys.
// context.Value compares type and value, so string keys from other packages never collide.
type Key string

const (
	// Subject is the admin identity taken from a verified JWT.
	Subject Key = "subject"

	// WebhookAuthenticated is set to "true" once X-Vapi-Secret has been verified.
	WebhookAuthenticated Key = "webhook_authenticated"
)

// WithValue adds a ctxkeys.Key value to the context.
func WithValue(ctx context.Context, key Key, value string) context.Context {
	return context.WithValue(ctx, key, value)
}

// String returns the value stored under key, if any.
func String(ctx context.Context, key Key) (string, bool) {
	v, ok := ctx.Value(key).(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
