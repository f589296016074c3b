package queue

import (
	"context"
	"sync"
	"time"
)

// Limiter caps how many upstream generation requests all workers combined may
// start per rolling minute. Wait blocks the caller until a slot opens or the
// context ends.
type Limiter struct {
	mu        sync.Mutex
	perMinute int
	window    time.Duration
	starts    []time.Time
	now       func() time.Time
}

func NewLimiter(perMinute int) *Limiter {
	return &Limiter{perMinute: perMinute, window: time.Minute, now: time.Now}
}

// Wait reserves one slot in the rolling window, sleeping until one is free.
func (l *Limiter) Wait(ctx context.Context) error {
	for {
		delay := l.reserve()
		if delay == 0 {
			return nil
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// reserve records a start if the window has room, otherwise returns how long
// until the oldest recorded start falls out of the window.
func (l *Limiter) reserve() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.perMinute <= 0 {
		return 0
	}

	now := l.now()
	cutoff := now.Add(-l.window)
	kept := l.starts[:0]
	for _, t := range l.starts {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	l.starts = kept

	if len(l.starts) < l.perMinute {
		l.starts = append(l.starts, now)
		return 0
	}
	return l.starts[0].Add(l.window).Sub(now)
}
