package ctxkeys

import (
	"context"
	"testing"
)

func TestWithValue_SetsAndGetsTypedKey(t *testing.T) {
	t.Parallel()

	ctx := WithValue(context.Background(), Subject, "ops@example.com")
	got, ok := String(ctx, Subject)
	if !ok {
		t.Fatalf("expected string value")
	}
	if got != "ops@example.com" {
		t.Fatalf("expected ops@example.com, got %q", got)
	}
}

func TestString_UntypedKeyDoesNotCollide(t *testing.T) {
	t.Parallel()

	//nolint:staticcheck // deliberately using a plain string key
	ctx := context.WithValue(context.Background(), "subject", "intruder")
	if _, ok := String(ctx, Subject); ok {
		t.Fatal("plain string key must not satisfy the typed Subject key")
	}
}
