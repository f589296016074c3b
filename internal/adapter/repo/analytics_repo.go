package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"adforge/internal/domain"
	"adforge/internal/infra"
	"adforge/internal/sqlinline"
)

// AnalyticsRepositoryPG implements domain.AnalyticsRepository.
type AnalyticsRepositoryPG struct {
	runner infra.SQLExecutor
}

func NewAnalyticsRepository(runner infra.SQLExecutor) *AnalyticsRepositoryPG {
	return &AnalyticsRepositoryPG{runner: runner}
}

func (r *AnalyticsRepositoryPG) Insert(ctx context.Context, event *domain.AnalyticsEvent) error {
	id := event.ID
	if id == "" {
		id = uuid.NewString()
	}
	metadata, err := json.Marshal(event.Metadata)
	if err != nil {
		return fmt.Errorf("encode event metadata: %w", err)
	}
	_, err = r.runner.Exec(ctx, sqlinline.QInsertAnalyticsEvent, id, event.TeamID, event.EventType, metadata)
	return err
}

var _ domain.AnalyticsRepository = (*AnalyticsRepositoryPG)(nil)
