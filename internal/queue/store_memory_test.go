package queue

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"adforge/internal/domain"
)

func queuedJob(id string) *domain.Job {
	return &domain.Job{
		ID:   id,
		Kind: domain.JobGenerate,
		Payload: domain.JobPayload{
			GenerationID: "g-" + id,
			TeamID:       "team-1",
			UserID:       "user-1",
		},
		MaxAttempts: 3,
	}
}

func TestMemoryStoreClaimsOldestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		if err := store.Enqueue(ctx, queuedJob(fmt.Sprintf("job-%d", i))); err != nil {
			t.Fatalf("enqueue: %v", err)
		}
		now = now.Add(time.Second)
	}

	for i := 0; i < 3; i++ {
		j, err := store.Claim(ctx)
		if err != nil {
			t.Fatalf("claim %d: %v", i, err)
		}
		if want := fmt.Sprintf("job-%d", i); j.ID != want {
			t.Fatalf("claimed %s, want %s", j.ID, want)
		}
		if j.State != domain.JobActive || j.Attempts != 1 {
			t.Fatalf("claimed job not active with 1 attempt: %+v", j)
		}
	}

	if _, err := store.Claim(ctx); !errors.Is(err, ErrNoJob) {
		t.Fatalf("empty queue must return ErrNoJob, got %v", err)
	}
}

func TestMemoryStoreRejectsDuplicateID(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if err := store.Enqueue(ctx, queuedJob("job-1")); err != nil {
		t.Fatalf("first enqueue: %v", err)
	}
	err := store.Enqueue(ctx, queuedJob("job-1"))
	if !errors.Is(err, domain.ErrDuplicateJob) {
		t.Fatalf("expected ErrDuplicateJob, got %v", err)
	}
}

func TestMemoryStoreDelayedJobNotClaimable(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	j := queuedJob("job-1")
	j.RunAt = now.Add(time.Minute)
	if err := store.Enqueue(ctx, j); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	if _, err := store.Claim(ctx); !errors.Is(err, ErrNoJob) {
		t.Fatalf("future job must not be claimable, got %v", err)
	}

	now = now.Add(time.Minute)
	if _, err := store.Claim(ctx); err != nil {
		t.Fatalf("due job must be claimable: %v", err)
	}
}

func TestMemoryStoreRetryRequeuesWithBackoff(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	if err := store.Enqueue(ctx, queuedJob("job-1")); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	if _, err := store.Claim(ctx); err != nil {
		t.Fatalf("claim: %v", err)
	}
	if err := store.Retry(ctx, "job-1", "flaky upstream", now.Add(2*time.Second)); err != nil {
		t.Fatalf("retry: %v", err)
	}

	j, err := store.Get(ctx, "job-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if j.State != domain.JobQueued || j.FailReason != "flaky upstream" {
		t.Fatalf("retry must requeue with the failure reason: %+v", j)
	}
	if j.Attempts != 1 {
		t.Fatalf("attempts must survive a retry, got %d", j.Attempts)
	}

	if _, err := store.Claim(ctx); !errors.Is(err, ErrNoJob) {
		t.Fatalf("backed-off job must not be claimable yet")
	}
	now = now.Add(2 * time.Second)
	j2, err := store.Claim(ctx)
	if err != nil {
		t.Fatalf("claim after backoff: %v", err)
	}
	if j2.Attempts != 2 {
		t.Fatalf("second claim must count attempt 2, got %d", j2.Attempts)
	}
}

func TestMemoryStoreCompleteAndFail(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	for _, id := range []string{"job-ok", "job-bad"} {
		if err := store.Enqueue(ctx, queuedJob(id)); err != nil {
			t.Fatalf("enqueue: %v", err)
		}
	}
	if _, err := store.Claim(ctx); err != nil {
		t.Fatalf("claim: %v", err)
	}
	if _, err := store.Claim(ctx); err != nil {
		t.Fatalf("claim: %v", err)
	}

	if err := store.Complete(ctx, "job-ok"); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if err := store.Fail(ctx, "job-bad", "boom"); err != nil {
		t.Fatalf("fail: %v", err)
	}

	ok, _ := store.Get(ctx, "job-ok")
	if ok.State != domain.JobCompleted || ok.Progress.Percent != 100 || ok.FinishedAt == nil {
		t.Fatalf("completed job malformed: %+v", ok)
	}
	bad, _ := store.Get(ctx, "job-bad")
	if bad.State != domain.JobFailed || bad.FailReason != "boom" {
		t.Fatalf("failed job malformed: %+v", bad)
	}
}

func TestMemoryStoreReapByAgeAndCount(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	// Five completed jobs finishing one hour apart, oldest first.
	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("job-%d", i)
		if err := store.Enqueue(ctx, queuedJob(id)); err != nil {
			t.Fatalf("enqueue: %v", err)
		}
		if _, err := store.Claim(ctx); err != nil {
			t.Fatalf("claim: %v", err)
		}
		if err := store.Complete(ctx, id); err != nil {
			t.Fatalf("complete: %v", err)
		}
		now = now.Add(time.Hour)
	}

	// Keep at most 3; age out anything older than 3.5 hours.
	removed, err := store.Reap(ctx, RetentionPolicy{CompletedKeep: 3, CompletedAge: 3*time.Hour + 30*time.Minute})
	if err != nil {
		t.Fatalf("reap: %v", err)
	}
	if removed != 2 {
		t.Fatalf("expected 2 jobs reaped, got %d", removed)
	}
	for _, id := range []string{"job-0", "job-1"} {
		if _, err := store.Get(ctx, id); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("%s should have been reaped", id)
		}
	}
	for _, id := range []string{"job-2", "job-3", "job-4"} {
		if _, err := store.Get(ctx, id); err != nil {
			t.Fatalf("%s should have been kept: %v", id, err)
		}
	}
}
