package net_test

import (
	"context"
	"testing"

	pnet "gripewatch/internal/platform/net"
)

func TestWithRequest_And_Getters(t *testing.T) {
	base := context.Background()

	t.Run("sets both ids", func(t *testing.T) {
		ctx := pnet.WithRequest(base, "req-123", "acme-telecom")

		if got := pnet.RequestID(ctx); got != "req-123" {
			t.Fatalf("RequestID got %q want %q", got, "req-123")
		}
		if got := pnet.Entity(ctx); got != "acme-telecom" {
			t.Fatalf("Entity got %q want %q", got, "acme-telecom")
		}
	})

	t.Run("sets only request id", func(t *testing.T) {
		ctx := pnet.WithRequest(base, "r-only", "")

		if got := pnet.RequestID(ctx); got != "r-only" {
			t.Fatalf("RequestID got %q want %q", got, "r-only")
		}
		if got := pnet.Entity(ctx); got != "" {
			t.Fatalf("Entity got %q want empty", got)
		}
	})

	t.Run("sets only entity", func(t *testing.T) {
		ctx := pnet.WithRequest(base, "", "e-only")

		if got := pnet.RequestID(ctx); got != "" {
			t.Fatalf("RequestID got %q want empty", got)
		}
		if got := pnet.Entity(ctx); got != "e-only" {
			t.Fatalf("Entity got %q want %q", got, "e-only")
		}
	})

	t.Run("no ids returns same ctx and empty getters", func(t *testing.T) {
		ctx := pnet.WithRequest(base, "", "")

		// should be the same reference since nothing was set
		if ctx != base {
			t.Fatalf("expected ctx to be unchanged when both ids empty")
		}
		if got := pnet.RequestID(ctx); got != "" {
			t.Fatalf("RequestID got %q want empty", got)
		}
		if got := pnet.Entity(ctx); got != "" {
			t.Fatalf("Entity got %q want empty", got)
		}
	})
}
