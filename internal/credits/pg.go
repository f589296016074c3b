package credits

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"adforge/internal/domain"
)

// PGLedger implements domain.CreditLedger on PostgreSQL. Every operation
// runs in its own transaction and takes a row lock on the team, which
// serializes concurrent balance changes per team.
type PGLedger struct {
	pool *pgxpool.Pool
}

func NewPGLedger(pool *pgxpool.Pool) *PGLedger {
	return &PGLedger{pool: pool}
}

func (l *PGLedger) Credit(ctx context.Context, teamID, userID string, amount int, entryType domain.LedgerEntryType, description string) (int, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("credit amount must be positive, got %d", amount)
	}
	return l.apply(ctx, teamID, userID, amount, entryType, description, nil)
}

func (l *PGLedger) Debit(ctx context.Context, teamID, userID string, amount int, description string, metadata map[string]any) (int, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("debit amount must be positive, got %d", amount)
	}
	return l.apply(ctx, teamID, userID, -amount, domain.EntryGeneration, description, metadata)
}

func (l *PGLedger) Refund(ctx context.Context, teamID, userID string, amount int, description string) (int, error) {
	return l.Credit(ctx, teamID, userID, amount, domain.EntryRefund, description)
}

// apply locks the team row, checks for overdraft on negative amounts,
// updates the balance and appends the ledger entry, all in one transaction.
func (l *PGLedger) apply(ctx context.Context, teamID, userID string, amount int, entryType domain.LedgerEntryType, description string, metadata map[string]any) (int, error) {
	tx, err := l.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, fmt.Errorf("begin ledger tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var balance int
	row := tx.QueryRow(ctx, `SELECT credits FROM teams WHERE id = $1 FOR UPDATE;`, teamID)
	if err := row.Scan(&balance); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("team %s: %w", teamID, domain.ErrNotFound)
		}
		return 0, fmt.Errorf("lock team balance: %w", err)
	}

	newBalance := balance + amount
	if newBalance < 0 {
		return balance, domain.ErrInsufficientCredits
	}

	if _, err := tx.Exec(ctx, `UPDATE teams SET credits = $2 WHERE id = $1;`, teamID, newBalance); err != nil {
		return 0, fmt.Errorf("update team balance: %w", err)
	}

	var metadataJSON []byte
	if len(metadata) > 0 {
		metadataJSON, err = json.Marshal(metadata)
		if err != nil {
			return 0, fmt.Errorf("encode ledger metadata: %w", err)
		}
	}

	if _, err := tx.Exec(ctx, `
INSERT INTO credit_ledger (id, team_id, user_id, amount, balance, type, description, metadata)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
`,
		uuid.NewString(),
		teamID,
		nullableString(userID),
		amount,
		newBalance,
		entryType,
		description,
		metadataJSON,
	); err != nil {
		return 0, fmt.Errorf("append ledger entry: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit ledger tx: %w", err)
	}
	return newBalance, nil
}

func (l *PGLedger) Balance(ctx context.Context, teamID string) (int, error) {
	var balance int
	row := l.pool.QueryRow(ctx, `SELECT credits FROM teams WHERE id = $1;`, teamID)
	if err := row.Scan(&balance); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("team %s: %w", teamID, domain.ErrNotFound)
		}
		return 0, err
	}
	return balance, nil
}

func (l *PGLedger) Recent(ctx context.Context, teamID string, limit int) ([]domain.LedgerEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := l.pool.Query(ctx, `
SELECT id, team_id, COALESCE(user_id, ''), amount, balance, type, description, metadata, created_at
FROM credit_ledger
WHERE team_id = $1
ORDER BY created_at DESC
LIMIT $2;
`, teamID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		var entry domain.LedgerEntry
		var metadataJSON []byte
		if err := rows.Scan(
			&entry.ID,
			&entry.TeamID,
			&entry.UserID,
			&entry.Amount,
			&entry.Balance,
			&entry.Type,
			&entry.Description,
			&metadataJSON,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		if len(metadataJSON) > 0 {
			_ = json.Unmarshal(metadataJSON, &entry.Metadata)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

var _ domain.CreditLedger = (*PGLedger)(nil)
