package genai

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"adforge/internal/domain"
)

// Retrier wraps generation calls with bounded retries and exponential
// backoff. Safety blocks and quota exhaustion are fatal and surface
// immediately; everything else is retried up to MaxAttempts with a delay of
// BaseDelay * 2^attempt between attempts.
type Retrier struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Logger      zerolog.Logger
}

// NewRetrier returns a Retrier with the standard 3 attempts and 1s base
// delay.
func NewRetrier(logger zerolog.Logger) *Retrier {
	return &Retrier{MaxAttempts: 3, BaseDelay: time.Second, Logger: logger}
}

// Do runs fn until it succeeds, a fatal error class occurs, the attempt
// budget is exhausted or the context is cancelled. The last error is
// returned after exhaustion.
func (r *Retrier) Do(ctx context.Context, fn func() error) error {
	attempts := r.MaxAttempts
	if attempts <= 0 {
		attempts = 3
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if errors.Is(err, domain.ErrContentBlocked) || errors.Is(err, domain.ErrQuotaExceeded) {
			return err
		}

		r.Logger.Warn().Err(err).Int("attempt", attempt+1).Int("max_attempts", attempts).Msg("genai: generation attempt failed")

		if attempt < attempts-1 {
			if err := sleepCtx(ctx, r.BaseDelay<<attempt); err != nil {
				return err
			}
		}
	}
	return lastErr
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
