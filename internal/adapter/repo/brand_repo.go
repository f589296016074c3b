package repo

import (
	"context"

	"adforge/internal/domain"
	"adforge/internal/infra"
	"adforge/internal/sqlinline"
)

// BrandRepositoryPG implements domain.BrandRepository.
type BrandRepositoryPG struct {
	runner infra.SQLExecutor
}

func NewBrandRepository(runner infra.SQLExecutor) *BrandRepositoryPG {
	return &BrandRepositoryPG{runner: runner}
}

func (r *BrandRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Brand, error) {
	row := r.runner.QueryRow(ctx, sqlinline.QGetBrand, id)
	var b domain.Brand
	err := row.Scan(
		&b.ID,
		&b.TeamID,
		&b.Name,
		&b.Industry,
		&b.TargetAudience,
		&b.Tonality,
		&b.USPs,
		&b.NoGos,
		&b.CreatedAt,
	)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *BrandRepositoryPG) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	row := r.runner.QueryRow(ctx, sqlinline.QGetProduct, id)
	var p domain.Product
	err := row.Scan(
		&p.ID,
		&p.BrandID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.Benefits,
		&p.Objections,
		&p.Reviews,
		&p.CreatedAt,
	)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

var _ domain.BrandRepository = (*BrandRepositoryPG)(nil)
