package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"adforge/internal/domain"
	"adforge/internal/infra"
	"adforge/internal/sqlinline"
)

// PGStore is the Postgres-backed queue. Claiming relies on
// FOR UPDATE SKIP LOCKED so any number of workers can poll the same table
// without coordination.
type PGStore struct {
	runner infra.SQLExecutor
}

func NewPGStore(runner infra.SQLExecutor) *PGStore {
	return &PGStore{runner: runner}
}

func (s *PGStore) Enqueue(ctx context.Context, job *domain.Job) error {
	payload, err := json.Marshal(job.Payload)
	if err != nil {
		return fmt.Errorf("encode job payload: %w", err)
	}
	runAt := job.RunAt
	if runAt.IsZero() {
		runAt = time.Now()
	}
	_, err = s.runner.Exec(ctx, sqlinline.QEnqueueJob, job.ID, string(job.Kind), payload, job.MaxAttempts, runAt)
	if err != nil {
		var pgErr *pgconn.PgError
		// 23505 unique_violation: the job id already exists.
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateJob, job.ID)
		}
		return err
	}
	return nil
}

func (s *PGStore) Claim(ctx context.Context) (*domain.Job, error) {
	row := s.runner.QueryRow(ctx, sqlinline.QClaimJob)
	var (
		j       domain.Job
		kind    string
		payload []byte
	)
	err := row.Scan(&j.ID, &kind, &payload, &j.Progress.Step, &j.Progress.Percent,
		&j.Attempts, &j.MaxAttempts, &j.RunAt, &j.CreatedAt, &j.StartedAt)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, ErrNoJob
		}
		return nil, err
	}
	j.Kind = domain.JobKind(kind)
	j.State = domain.JobActive
	if err := json.Unmarshal(payload, &j.Payload); err != nil {
		return nil, fmt.Errorf("decode job payload: %w", err)
	}
	return &j, nil
}

func (s *PGStore) Get(ctx context.Context, id string) (*domain.Job, error) {
	row := s.runner.QueryRow(ctx, sqlinline.QGetJob, id)
	var (
		j       domain.Job
		kind    string
		state   string
		payload []byte
	)
	err := row.Scan(&j.ID, &kind, &payload, &state, &j.Progress.Step, &j.Progress.Percent,
		&j.Attempts, &j.MaxAttempts, &j.FailReason, &j.RunAt, &j.CreatedAt, &j.StartedAt, &j.FinishedAt)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	j.Kind = domain.JobKind(kind)
	j.State = domain.JobState(state)
	if err := json.Unmarshal(payload, &j.Payload); err != nil {
		return nil, fmt.Errorf("decode job payload: %w", err)
	}
	return &j, nil
}

func (s *PGStore) SetProgress(ctx context.Context, id string, progress domain.Progress) error {
	_, err := s.runner.Exec(ctx, sqlinline.QSetJobProgress, id, progress.Step, progress.Percent)
	return err
}

func (s *PGStore) Complete(ctx context.Context, id string) error {
	_, err := s.runner.Exec(ctx, sqlinline.QCompleteJob, id)
	return err
}

func (s *PGStore) Fail(ctx context.Context, id, reason string) error {
	_, err := s.runner.Exec(ctx, sqlinline.QFailJob, id, reason)
	return err
}

func (s *PGStore) Retry(ctx context.Context, id, reason string, runAt time.Time) error {
	_, err := s.runner.Exec(ctx, sqlinline.QRetryJob, id, reason, runAt)
	return err
}

func (s *PGStore) Reap(ctx context.Context, policy RetentionPolicy) (int64, error) {
	var removed int64
	for _, target := range []struct {
		state string
		keep  int
		age   time.Duration
	}{
		{state: string(domain.JobCompleted), keep: policy.CompletedKeep, age: policy.CompletedAge},
		{state: string(domain.JobFailed), keep: policy.FailedKeep, age: policy.FailedAge},
	} {
		if target.age > 0 {
			tag, err := s.runner.Exec(ctx, sqlinline.QReapJobsByAge, target.state, int64(target.age.Seconds()))
			if err != nil {
				return removed, err
			}
			removed += tag.RowsAffected()
		}
		if target.keep > 0 {
			tag, err := s.runner.Exec(ctx, sqlinline.QReapJobsByCount, target.state, target.keep)
			if err != nil {
				return removed, err
			}
			removed += tag.RowsAffected()
		}
	}
	return removed, nil
}

var _ Store = (*PGStore)(nil)
