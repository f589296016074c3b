package credits

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"adforge/internal/domain"
)

// MemoryLedger implements domain.CreditLedger in process memory with the
// same serialization guarantee as the PostgreSQL ledger. It backs tests and
// database-less local runs.
type MemoryLedger struct {
	mu       sync.Mutex
	balances map[string]int
	entries  map[string][]domain.LedgerEntry
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		balances: make(map[string]int),
		entries:  make(map[string][]domain.LedgerEntry),
	}
}

// Seed sets a team's starting balance without a ledger entry. Test helper.
func (l *MemoryLedger) Seed(teamID string, balance int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[teamID] = balance
}

func (l *MemoryLedger) Credit(_ context.Context, teamID, userID string, amount int, entryType domain.LedgerEntryType, description string) (int, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("credit amount must be positive, got %d", amount)
	}
	return l.apply(teamID, userID, amount, entryType, description, nil)
}

func (l *MemoryLedger) Debit(_ context.Context, teamID, userID string, amount int, description string, metadata map[string]any) (int, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("debit amount must be positive, got %d", amount)
	}
	return l.apply(teamID, userID, -amount, domain.EntryGeneration, description, metadata)
}

func (l *MemoryLedger) Refund(ctx context.Context, teamID, userID string, amount int, description string) (int, error) {
	return l.Credit(ctx, teamID, userID, amount, domain.EntryRefund, description)
}

func (l *MemoryLedger) apply(teamID, userID string, amount int, entryType domain.LedgerEntryType, description string, metadata map[string]any) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	balance, ok := l.balances[teamID]
	if !ok {
		return 0, fmt.Errorf("team %s: %w", teamID, domain.ErrNotFound)
	}
	newBalance := balance + amount
	if newBalance < 0 {
		return balance, domain.ErrInsufficientCredits
	}

	l.balances[teamID] = newBalance
	l.entries[teamID] = append(l.entries[teamID], domain.LedgerEntry{
		ID:          uuid.NewString(),
		TeamID:      teamID,
		UserID:      userID,
		Amount:      amount,
		Balance:     newBalance,
		Type:        entryType,
		Description: description,
		Metadata:    metadata,
		CreatedAt:   time.Now(),
	})
	return newBalance, nil
}

func (l *MemoryLedger) Balance(_ context.Context, teamID string) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	balance, ok := l.balances[teamID]
	if !ok {
		return 0, fmt.Errorf("team %s: %w", teamID, domain.ErrNotFound)
	}
	return balance, nil
}

func (l *MemoryLedger) Recent(_ context.Context, teamID string, limit int) ([]domain.LedgerEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	entries := l.entries[teamID]
	if limit <= 0 || limit > len(entries) {
		limit = len(entries)
	}
	out := make([]domain.LedgerEntry, 0, limit)
	for i := len(entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, entries[i])
	}
	return out, nil
}

// Entries returns the full append-only log for a team, oldest first.
func (l *MemoryLedger) Entries(teamID string) []domain.LedgerEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]domain.LedgerEntry, len(l.entries[teamID]))
	copy(out, l.entries[teamID])
	return out
}

var _ domain.CreditLedger = (*MemoryLedger)(nil)
