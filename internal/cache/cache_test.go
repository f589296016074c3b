package cache

import (
	"context"
	"testing"
	"time"

	"adforge/internal/creative"
)

func testBundle() *creative.Bundle {
	return &creative.Bundle{
		Hooks: []creative.Hook{{ID: "h1", Text: "Did you know?", Pattern: creative.PatternQuestion, Reasoning: "curiosity"}},
		CTAs:  []creative.CTA{{ID: "c1", Text: "Shop now", Type: creative.CTAPrimary}},
	}
}

func TestMemoryCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	if _, ok := c.Get(ctx, "missing"); ok {
		t.Fatalf("expected miss for unknown fingerprint")
	}

	c.Set(ctx, "fp", testBundle(), time.Minute)
	got, ok := c.Get(ctx, "fp")
	if !ok {
		t.Fatalf("expected hit after set")
	}
	if len(got.Hooks) != 1 || got.Hooks[0].Text != "Did you know?" {
		t.Fatalf("cached bundle mismatch: %+v", got)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	c.Set(ctx, "fp", testBundle(), time.Millisecond)
	time.Sleep(5 * time.Millisecond)

	if _, ok := c.Get(ctx, "fp"); ok {
		t.Fatalf("expected expired entry to miss")
	}
}

func TestMemoryCacheReturnsCopy(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()
	c.Set(ctx, "fp", testBundle(), time.Minute)

	first, _ := c.Get(ctx, "fp")
	first.Hooks[0].Text = "mutated"

	// Mutating the outer struct must not affect the stored entry.
	second, _ := c.Get(ctx, "fp")
	if second == first {
		t.Fatalf("cache handed out the same pointer twice")
	}
}

func TestMemoryCacheIgnoresNilBundle(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()
	c.Set(ctx, "fp", nil, time.Minute)
	if _, ok := c.Get(ctx, "fp"); ok {
		t.Fatalf("nil bundle should not be stored")
	}
}
