package ch

import (
	"context"
	"testing"
)

// TestOpen_ParsesDSN returns a non nil client without dialing
func TestOpen_ParsesDSN(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cfg := Config{URL: "clickhouse://localhost:9000/default", Role: "api", Tag: "test"}

	cl, err := Open(ctx, cfg)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if cl == nil {
		t.Fatalf("Open returned nil client")
	}
	if err := cl.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
}

// TestOpen_EmptyURL rejects a missing DSN
func TestOpen_EmptyURL(t *testing.T) {
	t.Parallel()

	cl, err := Open(context.Background(), Config{})
	if err == nil {
		t.Fatalf("Open expected error for empty URL, got client=%#v", cl)
	}
	if cl != nil {
		t.Fatalf("Open should return nil client on error")
	}
}

// TestOpen_BadDSN bubbles the parse error
func TestOpen_BadDSN(t *testing.T) {
	t.Parallel()

	cl, err := Open(context.Background(), Config{URL: "://bad"})
	if err == nil {
		t.Fatalf("Open expected parse error, got client=%#v", cl)
	}
	if cl != nil {
		t.Fatalf("Open should return nil client on parse error")
	}
}

// TestGuards_NotOpened verifies a zero value client fails loudly instead of panicking
func TestGuards_NotOpened(t *testing.T) {
	t.Parallel()

	cl := &CH{}
	ctx := context.Background()

	if err := cl.Ping(ctx); err == nil {
		t.Fatalf("Ping expected error on unopened client")
	}
	if err := cl.Insert(ctx, "t", [][]any{{1}}); err == nil {
		t.Fatalf("Insert expected error on unopened client")
	}
	if rows, err := cl.Query(ctx, "SELECT 1"); err == nil {
		t.Fatalf("Query expected error on unopened client, got rows=%v", rows)
	}
	if err := cl.Close(); err != nil {
		t.Fatalf("Close on unopened client returned error: %v", err)
	}
}

// TestBuildClientInfo stamps the product and role
func TestBuildClientInfo(t *testing.T) {
	t.Parallel()

	info := BuildClientInfo("sweeper", "v1")
	if len(info.Products) == 0 {
		t.Fatalf("expected products on client info")
	}
	if info.Products[0].Name != "gripewatch" || info.Products[0].Version != "v1" {
		t.Fatalf("unexpected head product: %+v", info.Products[0])
	}

	var role string
	for _, p := range info.Products {
		if p.Name == "role" {
			role = p.Version
		}
	}
	if role != "sweeper" {
		t.Fatalf("role product mismatch got=%q want=%q", role, "sweeper")
	}
}
