package genai

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"adforge/internal/domain"
)

func testRetrier(base time.Duration) *Retrier {
	return &Retrier{MaxAttempts: 3, BaseDelay: base, Logger: zerolog.Nop()}
}

func TestRetrierSucceedsAfterTransientFailures(t *testing.T) {
	calls := 0
	err := testRetrier(time.Millisecond).Do(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected success on third attempt, got %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls)
	}
}

func TestRetrierDoesNotRetrySafetyBlocks(t *testing.T) {
	calls := 0
	err := testRetrier(time.Millisecond).Do(context.Background(), func() error {
		calls++
		return fmt.Errorf("%w: SAFETY", domain.ErrContentBlocked)
	})
	if !errors.Is(err, domain.ErrContentBlocked) {
		t.Fatalf("expected ErrContentBlocked, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("safety block must observe exactly 1 attempt, got %d", calls)
	}
}

func TestRetrierDoesNotRetryQuotaErrors(t *testing.T) {
	calls := 0
	err := testRetrier(time.Millisecond).Do(context.Background(), func() error {
		calls++
		return domain.ErrQuotaExceeded
	})
	if !errors.Is(err, domain.ErrQuotaExceeded) {
		t.Fatalf("expected ErrQuotaExceeded, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("quota error must observe exactly 1 attempt, got %d", calls)
	}
}

func TestRetrierReturnsLastErrorAfterExhaustion(t *testing.T) {
	calls := 0
	err := testRetrier(time.Millisecond).Do(context.Background(), func() error {
		calls++
		return fmt.Errorf("attempt %d failed", calls)
	})
	if err == nil || err.Error() != "attempt 3 failed" {
		t.Fatalf("expected last error after exhaustion, got %v", err)
	}
}

func TestRetrierBackoffDoubles(t *testing.T) {
	base := 20 * time.Millisecond
	start := time.Now()
	_ = testRetrier(base).Do(context.Background(), func() error {
		return errors.New("always fails")
	})
	// Two waits between three attempts: base + 2*base.
	if elapsed := time.Since(start); elapsed < 3*base {
		t.Fatalf("expected at least %v of backoff, elapsed %v", 3*base, elapsed)
	}
}

func TestRetrierHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := testRetrier(time.Second).Do(ctx, func() error {
		return errors.New("transient")
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation, got %v", err)
	}
}
