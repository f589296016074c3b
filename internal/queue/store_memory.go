package queue

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"adforge/internal/domain"
)

// MemoryStore is an in-process queue with the same claim semantics as the
// Postgres store. Used in tests and for single-process development runs.
type MemoryStore struct {
	mu   sync.Mutex
	jobs map[string]*domain.Job
	now  func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{jobs: make(map[string]*domain.Job), now: time.Now}
}

func (s *MemoryStore) Enqueue(_ context.Context, job *domain.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.jobs[job.ID]; exists {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateJob, job.ID)
	}
	copied := *job
	copied.State = domain.JobQueued
	copied.CreatedAt = s.now()
	if copied.RunAt.IsZero() {
		copied.RunAt = copied.CreatedAt
	}
	s.jobs[job.ID] = &copied
	return nil
}

func (s *MemoryStore) Claim(_ context.Context) (*domain.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()

	var due []*domain.Job
	for _, j := range s.jobs {
		if j.State == domain.JobQueued && !j.RunAt.After(now) {
			due = append(due, j)
		}
	}
	if len(due) == 0 {
		return nil, ErrNoJob
	}
	sort.Slice(due, func(i, k int) bool { return due[i].CreatedAt.Before(due[k].CreatedAt) })

	j := due[0]
	j.State = domain.JobActive
	j.Attempts++
	started := now
	j.StartedAt = &started

	copied := *j
	return &copied, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*domain.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *j
	return &copied, nil
}

func (s *MemoryStore) SetProgress(_ context.Context, id string, progress domain.Progress) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[id]
	if !ok {
		return domain.ErrNotFound
	}
	j.Progress = progress
	return nil
}

func (s *MemoryStore) Complete(_ context.Context, id string) error {
	return s.finish(id, domain.JobCompleted, "")
}

func (s *MemoryStore) Fail(_ context.Context, id, reason string) error {
	return s.finish(id, domain.JobFailed, reason)
}

func (s *MemoryStore) finish(id string, state domain.JobState, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[id]
	if !ok {
		return domain.ErrNotFound
	}
	j.State = state
	j.FailReason = reason
	if state == domain.JobCompleted {
		j.Progress = domain.Progress{Step: "Done", Percent: 100}
	}
	finished := s.now()
	j.FinishedAt = &finished
	return nil
}

func (s *MemoryStore) Retry(_ context.Context, id, reason string, runAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[id]
	if !ok {
		return domain.ErrNotFound
	}
	j.State = domain.JobQueued
	j.FailReason = reason
	j.RunAt = runAt
	j.StartedAt = nil
	return nil
}

func (s *MemoryStore) Reap(_ context.Context, policy RetentionPolicy) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()

	var removed int64
	removed += s.reapState(domain.JobCompleted, policy.CompletedKeep, policy.CompletedAge, now)
	removed += s.reapState(domain.JobFailed, policy.FailedKeep, policy.FailedAge, now)
	return removed, nil
}

func (s *MemoryStore) reapState(state domain.JobState, keep int, age time.Duration, now time.Time) int64 {
	var finished []*domain.Job
	for _, j := range s.jobs {
		if j.State == state && j.FinishedAt != nil {
			finished = append(finished, j)
		}
	}
	// Newest first, so everything past the keep-count is removable.
	sort.Slice(finished, func(i, k int) bool { return finished[i].FinishedAt.After(*finished[k].FinishedAt) })

	var removed int64
	for i, j := range finished {
		tooOld := age > 0 && now.Sub(*j.FinishedAt) > age
		overCount := keep > 0 && i >= keep
		if tooOld || overCount {
			delete(s.jobs, j.ID)
			removed++
		}
	}
	return removed
}

var _ Store = (*MemoryStore)(nil)
