// Package repo contains the PostgreSQL implementations of the domain
// repository interfaces.
package repo

import (
	"context"
	"encoding/json"

	"adforge/internal/domain"
	"adforge/internal/infra"
	"adforge/internal/sqlinline"
)

// GenerationRepositoryPG implements domain.GenerationRepository.
type GenerationRepositoryPG struct {
	runner infra.SQLExecutor
}

func NewGenerationRepository(runner infra.SQLExecutor) *GenerationRepositoryPG {
	return &GenerationRepositoryPG{runner: runner}
}

func (r *GenerationRepositoryPG) Create(ctx context.Context, g *domain.Generation) error {
	_, err := r.runner.Exec(ctx, sqlinline.QInsertGeneration,
		g.ID,
		g.TeamID,
		g.UserID,
		g.BrandID,
		g.ProductID,
		g.TemplateID,
		string(g.Platform),
		string(g.Goal),
		string(g.Style),
		g.Duration,
		g.Language,
	)
	return err
}

func (r *GenerationRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Generation, error) {
	return scanGeneration(r.runner.QueryRow(ctx, sqlinline.QGetGeneration, id))
}

func (r *GenerationRepositoryPG) GetForTeam(ctx context.Context, id, teamID string) (*domain.Generation, error) {
	return scanGeneration(r.runner.QueryRow(ctx, sqlinline.QGetGenerationForTeam, id, teamID))
}

func (r *GenerationRepositoryPG) ListForTeam(ctx context.Context, teamID string, limit int) ([]domain.Generation, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.runner.Query(ctx, sqlinline.QListGenerationsForTeam, teamID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Generation
	for rows.Next() {
		g, err := scanGeneration(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *g)
	}
	return out, rows.Err()
}

func (r *GenerationRepositoryPG) MarkProcessing(ctx context.Context, id, jobID string) error {
	return r.exec(ctx, sqlinline.QMarkGenerationProcessing, id, jobID)
}

func (r *GenerationRepositoryPG) SaveSection(ctx context.Context, id string, section domain.Section, data json.RawMessage) error {
	query, ok := sectionQueries[section]
	if !ok {
		return domain.ErrUnknownSection
	}
	return r.exec(ctx, query, id, data)
}

func (r *GenerationRepositoryPG) Complete(ctx context.Context, id string, sections map[domain.Section]json.RawMessage) error {
	return r.exec(ctx, sqlinline.QCompleteGeneration,
		id,
		sections[domain.SectionHooks],
		sections[domain.SectionScripts],
		sections[domain.SectionShotlist],
		sections[domain.SectionVoiceover],
		sections[domain.SectionCaptions],
		sections[domain.SectionCTAs],
		sections[domain.SectionObjectionHandling],
		sections[domain.SectionAdCopy],
	)
}

func (r *GenerationRepositoryPG) MarkFailed(ctx context.Context, id, errorMessage string) error {
	return r.exec(ctx, sqlinline.QMarkGenerationFailed, id, errorMessage)
}

func (r *GenerationRepositoryPG) SetJobID(ctx context.Context, id, jobID string) error {
	return r.exec(ctx, sqlinline.QSetGenerationJobID, id, jobID)
}

func (r *GenerationRepositoryPG) SetCreditsUsed(ctx context.Context, id string, credits int) error {
	return r.exec(ctx, sqlinline.QSetGenerationCreditsUsed, id, credits)
}

func (r *GenerationRepositoryPG) exec(ctx context.Context, query string, args ...any) error {
	tag, err := r.runner.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var sectionQueries = map[domain.Section]string{
	domain.SectionHooks:             sqlinline.QSaveGenerationHooks,
	domain.SectionScripts:           sqlinline.QSaveGenerationScripts,
	domain.SectionShotlist:          sqlinline.QSaveGenerationShotlist,
	domain.SectionVoiceover:         sqlinline.QSaveGenerationVoiceover,
	domain.SectionCaptions:          sqlinline.QSaveGenerationCaptions,
	domain.SectionCTAs:              sqlinline.QSaveGenerationCTAs,
	domain.SectionObjectionHandling: sqlinline.QSaveGenerationObjectionHandling,
	domain.SectionAdCopy:            sqlinline.QSaveGenerationAdCopy,
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGeneration(row rowScanner) (*domain.Generation, error) {
	var g domain.Generation
	err := row.Scan(
		&g.ID,
		&g.TeamID,
		&g.UserID,
		&g.BrandID,
		&g.ProductID,
		&g.TemplateID,
		&g.Platform,
		&g.Goal,
		&g.Style,
		&g.Duration,
		&g.Language,
		&g.Status,
		&g.Hooks,
		&g.Scripts,
		&g.Shotlist,
		&g.Voiceover,
		&g.Captions,
		&g.CTAs,
		&g.ObjectionHandling,
		&g.AdCopy,
		&g.CreditsUsed,
		&g.ErrorMessage,
		&g.JobID,
		&g.CreatedAt,
		&g.UpdatedAt,
		&g.CompletedAt,
	)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &g, nil
}

var _ domain.GenerationRepository = (*GenerationRepositoryPG)(nil)
