package repo

import (
	"context"

	"adforge/internal/domain"
	"adforge/internal/infra"
	"adforge/internal/sqlinline"
)

// TeamRepositoryPG implements domain.TeamRepository.
type TeamRepositoryPG struct {
	runner infra.SQLExecutor
}

func NewTeamRepository(runner infra.SQLExecutor) *TeamRepositoryPG {
	return &TeamRepositoryPG{runner: runner}
}

func (r *TeamRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Team, error) {
	row := r.runner.QueryRow(ctx, sqlinline.QGetTeam, id)
	var t domain.Team
	if err := row.Scan(&t.ID, &t.Name, &t.Credits, &t.CreatedAt); err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

var _ domain.TeamRepository = (*TeamRepositoryPG)(nil)
