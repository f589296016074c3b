package credits

import (
	"context"
	"errors"
	"sync"
	"testing"

	"adforge/internal/domain"
)

func TestLedgerBalanceEqualsSumOfEntries(t *testing.T) {
	ctx := context.Background()
	ledger := NewMemoryLedger()
	ledger.Seed("team-1", 0)

	if _, err := ledger.Credit(ctx, "team-1", "", 100, domain.EntrySubscriptionGrant, "monthly grant"); err != nil {
		t.Fatalf("credit failed: %v", err)
	}
	if _, err := ledger.Debit(ctx, "team-1", "user-1", CostFullPack, "creative pack", nil); err != nil {
		t.Fatalf("debit failed: %v", err)
	}
	if _, err := ledger.Refund(ctx, "team-1", "user-1", CostFullPack, "generation failed"); err != nil {
		t.Fatalf("refund failed: %v", err)
	}
	if _, err := ledger.Credit(ctx, "team-1", "", 50, domain.EntryPurchase, "credit pack"); err != nil {
		t.Fatalf("purchase failed: %v", err)
	}

	entries := ledger.Entries("team-1")
	sum := 0
	for _, entry := range entries {
		sum += entry.Amount
		if entry.Balance != sum {
			t.Fatalf("entry balance snapshot %d does not match running sum %d", entry.Balance, sum)
		}
	}

	balance, err := ledger.Balance(ctx, "team-1")
	if err != nil {
		t.Fatalf("balance failed: %v", err)
	}
	if balance != sum {
		t.Fatalf("balance %d does not equal sum of entries %d", balance, sum)
	}
	if balance != 150 {
		t.Fatalf("expected final balance 150, got %d", balance)
	}
}

func TestLedgerRejectsOverdraft(t *testing.T) {
	ctx := context.Background()
	ledger := NewMemoryLedger()
	ledger.Seed("team-1", 2)

	_, err := ledger.Debit(ctx, "team-1", "user-1", CostScriptOnly, "regenerate scripts", nil)
	if !errors.Is(err, domain.ErrInsufficientCredits) {
		t.Fatalf("expected ErrInsufficientCredits, got %v", err)
	}

	// Rejection must leave balance and ledger untouched.
	balance, _ := ledger.Balance(ctx, "team-1")
	if balance != 2 {
		t.Fatalf("failed debit mutated the balance: %d", balance)
	}
	if entries := ledger.Entries("team-1"); len(entries) != 0 {
		t.Fatalf("failed debit appended %d entries", len(entries))
	}
}

func TestLedgerRejectsNonPositiveAmounts(t *testing.T) {
	ctx := context.Background()
	ledger := NewMemoryLedger()
	ledger.Seed("team-1", 10)

	if _, err := ledger.Debit(ctx, "team-1", "user-1", 0, "zero", nil); err == nil {
		t.Fatalf("expected error for zero debit")
	}
	if _, err := ledger.Credit(ctx, "team-1", "", -5, domain.EntryBonus, "negative"); err == nil {
		t.Fatalf("expected error for negative credit")
	}
}

func TestLedgerUnknownTeam(t *testing.T) {
	ctx := context.Background()
	ledger := NewMemoryLedger()

	if _, err := ledger.Debit(ctx, "ghost", "user-1", 1, "debit", nil); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLedgerSerializesConcurrentOperations(t *testing.T) {
	ctx := context.Background()
	ledger := NewMemoryLedger()
	ledger.Seed("team-1", 1000)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = ledger.Debit(ctx, "team-1", "user-1", 10, "debit", nil)
		}()
		go func() {
			defer wg.Done()
			_, _ = ledger.Credit(ctx, "team-1", "", 10, domain.EntryBonus, "credit")
		}()
	}
	wg.Wait()

	entries := ledger.Entries("team-1")
	sum := 1000
	for _, entry := range entries {
		sum += entry.Amount
	}
	balance, _ := ledger.Balance(ctx, "team-1")
	if balance != sum {
		t.Fatalf("concurrent operations lost an update: balance %d, entry sum %d", balance, sum)
	}
	if balance < 0 {
		t.Fatalf("balance went negative: %d", balance)
	}
}

func TestSectionCost(t *testing.T) {
	cases := map[domain.Section]int{
		domain.SectionHooks:     CostHookOnly,
		domain.SectionScripts:   CostScriptOnly,
		domain.SectionShotlist:  CostSectionRegen,
		domain.SectionVoiceover: CostSectionRegen,
		domain.SectionAdCopy:    CostSectionRegen,
	}
	for section, want := range cases {
		if got := SectionCost(section); got != want {
			t.Fatalf("SectionCost(%s) = %d, want %d", section, got, want)
		}
	}
}
