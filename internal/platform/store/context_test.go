package store

import (
	"context"
	"testing"
)

// TestEntity_SetAndGet sets an entity slug and retrieves it
func TestEntity_SetAndGet(t *testing.T) {
	t.Parallel()

	base := context.Background()
	ctx := WithEntity(base, "acme")

	id, ok := Entity(ctx)
	if !ok {
		t.Fatalf("Entity not found")
	}
	if id != "acme" {
		t.Fatalf("Entity mismatch got=%q want=%q", id, "acme")
	}
}

// TestEntity_EmptyString reports false when empty string is stored
func TestEntity_EmptyString(t *testing.T) {
	t.Parallel()

	ctx := WithEntity(context.Background(), "")

	id, ok := Entity(ctx)
	if ok {
		t.Fatalf("Entity ok should be false for empty value")
	}
	if id != "" {
		t.Fatalf("Entity should be empty got=%q", id)
	}
}

// TestEntity_NotPresent returns false on base context
func TestEntity_NotPresent(t *testing.T) {
	t.Parallel()

	id, ok := Entity(context.Background())
	if ok || id != "" {
		t.Fatalf("Entity should be absent on base context")
	}
}

// TestEntity_NoLeak ensures adding value returns a new ctx and base has no value
func TestEntity_NoLeak(t *testing.T) {
	t.Parallel()

	base := context.Background()
	_ = WithEntity(base, "acme")

	id, ok := Entity(base)
	if ok || id != "" {
		t.Fatalf("base context should not have entity value")
	}
}

// TestRequestID_SetAndGet sets a request id and retrieves it
func TestRequestID_SetAndGet(t *testing.T) {
	t.Parallel()

	base := context.Background()
	ctx := WithRequestID(base, "req-123")

	id, ok := RequestID(ctx)
	if !ok {
		t.Fatalf("RequestID not found")
	}
	if id != "req-123" {
		t.Fatalf("RequestID mismatch got=%q want=%q", id, "req-123")
	}
}

// TestRequestID_EmptyString reports false when empty string is stored
func TestRequestID_EmptyString(t *testing.T) {
	t.Parallel()

	ctx := WithRequestID(context.Background(), "")

	id, ok := RequestID(ctx)
	if ok {
		t.Fatalf("RequestID ok should be false for empty value")
	}
	if id != "" {
		t.Fatalf("RequestID should be empty got=%q", id)
	}
}

// TestRequestID_NotPresent returns false on base context
func TestRequestID_NotPresent(t *testing.T) {
	t.Parallel()

	id, ok := RequestID(context.Background())
	if ok || id != "" {
		t.Fatalf("RequestID should be absent on base context")
	}
}

// TestKeys_Isolation ensures entity and request keys do not collide
func TestKeys_Isolation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ctx = WithEntity(ctx, "acme")
	ctx = WithRequestID(ctx, "req-123")

	ent, eok := Entity(ctx)
	req, rok := RequestID(ctx)

	if !eok || ent != "acme" {
		t.Fatalf("Entity mismatch eok=%v ent=%q", eok, ent)
	}
	if !rok || req != "req-123" {
		t.Fatalf("RequestID mismatch rok=%v req=%q", rok, req)
	}
}
