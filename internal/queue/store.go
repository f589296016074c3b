// Package queue provides the durable job queue behind asynchronous content
// generation: a Postgres-backed store claimed with SKIP LOCKED, a worker pool
// with a shared upstream rate limit, and retention cleanup for finished jobs.
package queue

import (
	"context"
	"errors"
	"time"

	"adforge/internal/domain"
)

// ErrNoJob signals an empty queue to the polling loop.
var ErrNoJob = errors.New("no job available")

// RetentionPolicy bounds how long finished jobs stay queryable. A job is
// removed once it is older than the age cutoff for its state, or once more
// than the keep-count newer jobs in that state exist.
type RetentionPolicy struct {
	CompletedKeep int
	CompletedAge  time.Duration
	FailedKeep    int
	FailedAge     time.Duration
}

// DefaultRetention keeps completed jobs for a day and failures for a week.
func DefaultRetention() RetentionPolicy {
	return RetentionPolicy{
		CompletedKeep: 100,
		CompletedAge:  24 * time.Hour,
		FailedKeep:    50,
		FailedAge:     7 * 24 * time.Hour,
	}
}

// Store is the durable queue contract. Claim moves exactly one due job from
// queued to active and increments its attempt counter; concurrent claimers
// never receive the same job.
type Store interface {
	// Enqueue persists a new queued job. A job with the same id already
	// present returns domain.ErrDuplicateJob.
	Enqueue(ctx context.Context, job *domain.Job) error
	// Claim returns the oldest due queued job as active, or ErrNoJob.
	Claim(ctx context.Context) (*domain.Job, error)
	Get(ctx context.Context, id string) (*domain.Job, error)
	SetProgress(ctx context.Context, id string, progress domain.Progress) error
	Complete(ctx context.Context, id string) error
	// Fail terminally fails an active job.
	Fail(ctx context.Context, id, reason string) error
	// Retry moves an active job back to queued with a new due time, keeping
	// the last failure reason for inspection.
	Retry(ctx context.Context, id, reason string, runAt time.Time) error
	// Reap deletes finished jobs that fall outside the retention policy and
	// reports how many rows went away.
	Reap(ctx context.Context, policy RetentionPolicy) (int64, error)
}
