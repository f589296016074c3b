package domain

import "time"

// LedgerEntryType tags a credit ledger entry with its origin.
type LedgerEntryType string

const (
	EntrySubscriptionGrant LedgerEntryType = "SUBSCRIPTION_GRANT"
	EntryPurchase          LedgerEntryType = "PURCHASE"
	EntryRefund            LedgerEntryType = "REFUND"
	EntryAdjustment        LedgerEntryType = "ADJUSTMENT"
	EntryBonus             LedgerEntryType = "BONUS"
	EntryGeneration        LedgerEntryType = "GENERATION"
)

// LedgerEntry is an immutable, append-only credit movement. Amount is signed;
// Balance snapshots the team total immediately after the entry was applied.
type LedgerEntry struct {
	ID          string
	TeamID      string
	UserID      string
	Amount      int
	Balance     int
	Type        LedgerEntryType
	Description string
	Metadata    map[string]any
	CreatedAt   time.Time
}

// AnalyticsEvent is a fire-and-forget product analytics record.
type AnalyticsEvent struct {
	ID        string
	TeamID    string
	EventType string
	Metadata  map[string]any
	CreatedAt time.Time
}
