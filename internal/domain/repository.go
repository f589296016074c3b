package domain

import (
	"context"
	"encoding/json"
)

// GenerationRepository defines persistence for generation records. Section
// writes are individually durable so a crash mid-pipeline leaves partial,
// inspectable output.
type GenerationRepository interface {
	Create(ctx context.Context, g *Generation) error
	GetByID(ctx context.Context, id string) (*Generation, error)
	GetForTeam(ctx context.Context, id, teamID string) (*Generation, error)
	ListForTeam(ctx context.Context, teamID string, limit int) ([]Generation, error)
	// MarkProcessing flips PENDING to PROCESSING and attaches the job id.
	MarkProcessing(ctx context.Context, id, jobID string) error
	// SaveSection persists a single output field and bumps updated_at.
	SaveSection(ctx context.Context, id string, section Section, data json.RawMessage) error
	// Complete writes all provided sections, sets COMPLETED and completed_at.
	Complete(ctx context.Context, id string, sections map[Section]json.RawMessage) error
	MarkFailed(ctx context.Context, id, errorMessage string) error
	SetJobID(ctx context.Context, id, jobID string) error
	SetCreditsUsed(ctx context.Context, id string, credits int) error
}

// BrandRepository provides read-only brand/product context for briefs.
type BrandRepository interface {
	GetByID(ctx context.Context, id string) (*Brand, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
}

// TeamRepository reads team records; balance mutation is the ledger's job.
type TeamRepository interface {
	GetByID(ctx context.Context, id string) (*Team, error)
}

// CreditLedger is the atomic balance contract. Implementations serialize
// concurrent calls per team so no interleaving can lose an update or drive
// the balance below zero.
type CreditLedger interface {
	Credit(ctx context.Context, teamID, userID string, amount int, entryType LedgerEntryType, description string) (int, error)
	Debit(ctx context.Context, teamID, userID string, amount int, description string, metadata map[string]any) (int, error)
	Refund(ctx context.Context, teamID, userID string, amount int, description string) (int, error)
	Balance(ctx context.Context, teamID string) (int, error)
	Recent(ctx context.Context, teamID string, limit int) ([]LedgerEntry, error)
}

// AnalyticsRepository appends product analytics events.
type AnalyticsRepository interface {
	Insert(ctx context.Context, event *AnalyticsEvent) error
}
