package queue

import (
	"context"
	"fmt"
	"time"

	"adforge/internal/domain"
)

// Queue is the enqueue-side facade used by the HTTP layer. Job ids are
// deterministic for full generations, which makes double submission of the
// same generation a no-op at the store level.
type Queue struct {
	store       Store
	gens        domain.GenerationRepository
	maxAttempts int
	now         func() time.Time
}

func New(store Store, gens domain.GenerationRepository, maxAttempts int) *Queue {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Queue{store: store, gens: gens, maxAttempts: maxAttempts, now: time.Now}
}

// GenerateJobID is the deterministic id of a full-generation job.
func GenerateJobID(generationID string) string {
	return "gen-" + generationID
}

// RegenerateJobID is unique per request so a section can be redone any
// number of times.
func RegenerateJobID(generationID string, section domain.Section, at time.Time) string {
	return fmt.Sprintf("regen-%s-%s-%d", generationID, section, at.UnixMilli())
}

// EnqueueGenerate queues the full eight-section pipeline for a generation and
// records the job id on the generation record.
func (q *Queue) EnqueueGenerate(ctx context.Context, g *domain.Generation, input *domain.GenerationInput) (*domain.Job, error) {
	job := &domain.Job{
		ID:   GenerateJobID(g.ID),
		Kind: domain.JobGenerate,
		Payload: domain.JobPayload{
			GenerationID: g.ID,
			TeamID:       g.TeamID,
			UserID:       g.UserID,
			Input:        input,
		},
		State:       domain.JobQueued,
		MaxAttempts: q.maxAttempts,
		RunAt:       q.now(),
	}
	if err := q.store.Enqueue(ctx, job); err != nil {
		return nil, err
	}
	if err := q.gens.SetJobID(ctx, g.ID, job.ID); err != nil {
		return nil, err
	}
	return job, nil
}

// EnqueueRegenerate queues a single-section rebuild of a completed
// generation.
func (q *Queue) EnqueueRegenerate(ctx context.Context, g *domain.Generation, section domain.Section, instructions string) (*domain.Job, error) {
	job := &domain.Job{
		ID:   RegenerateJobID(g.ID, section, q.now()),
		Kind: domain.JobRegenerateSection,
		Payload: domain.JobPayload{
			GenerationID: g.ID,
			TeamID:       g.TeamID,
			UserID:       g.UserID,
			Section:      section,
			Instructions: instructions,
		},
		State:       domain.JobQueued,
		MaxAttempts: q.maxAttempts,
		RunAt:       q.now(),
	}
	if err := q.store.Enqueue(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// Status returns the queue-side view of a job.
func (q *Queue) Status(ctx context.Context, jobID string) (*domain.Job, error) {
	return q.store.Get(ctx, jobID)
}
