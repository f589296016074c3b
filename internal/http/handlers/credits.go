package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"adforge/internal/credits"
	"adforge/internal/domain"
)

type ledgerEntryResponse struct {
	ID          string         `json:"id"`
	Amount      int            `json:"amount"`
	Balance     int            `json:"balance"`
	Type        string         `json:"type"`
	Description string         `json:"description"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
}

func (a *App) CreditsBalance(w http.ResponseWriter, r *http.Request) {
	teamID, _, ok := a.identity(w, r)
	if !ok {
		return
	}
	balance, err := a.Ledger.Balance(r.Context(), teamID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "team not found")
			return
		}
		a.error(w, http.StatusInternalServerError, "internal", "failed to load balance")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"balance": balance})
}

func (a *App) CreditsHistory(w http.ResponseWriter, r *http.Request) {
	teamID, _, ok := a.identity(w, r)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	entries, err := a.Ledger.Recent(r.Context(), teamID, limit)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load ledger")
		return
	}
	out := make([]ledgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, ledgerEntryResponse{
			ID:          e.ID,
			Amount:      e.Amount,
			Balance:     e.Balance,
			Type:        string(e.Type),
			Description: e.Description,
			Metadata:    e.Metadata,
			CreatedAt:   e.CreatedAt,
		})
	}
	a.json(w, http.StatusOK, map[string]any{"entries": out})
}

// CreditsCatalog lists the purchasable plans and packs.
func (a *App) CreditsCatalog(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{
		"plans": credits.Plans,
		"packs": credits.Packs,
	})
}

type purchaseRequest struct {
	PackID string `json:"packId,omitempty"`
	PlanID string `json:"planId,omitempty"`
}

// CreditsPurchase applies a pack purchase or a plan grant to the team
// balance. Payment settlement happens upstream; this endpoint only books the
// resulting credits.
func (a *App) CreditsPurchase(w http.ResponseWriter, r *http.Request) {
	teamID, userID, ok := a.identity(w, r)
	if !ok {
		return
	}
	var req purchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	var (
		amount      int
		entryType   domain.LedgerEntryType
		description string
	)
	switch {
	case req.PackID != "":
		pack, ok := credits.Packs[req.PackID]
		if !ok {
			a.error(w, http.StatusBadRequest, "bad_request", "unknown pack")
			return
		}
		amount = pack.Credits
		entryType = domain.EntryPurchase
		description = "Credit pack: " + pack.Name
	case req.PlanID != "":
		plan, ok := credits.Plans[req.PlanID]
		if !ok {
			a.error(w, http.StatusBadRequest, "bad_request", "unknown plan")
			return
		}
		amount = plan.Credits
		entryType = domain.EntrySubscriptionGrant
		description = "Subscription grant: " + plan.Name
	default:
		a.error(w, http.StatusBadRequest, "bad_request", "packId or planId required")
		return
	}

	balance, err := a.Ledger.Credit(r.Context(), teamID, userID, amount, entryType, description)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "team not found")
			return
		}
		a.error(w, http.StatusInternalServerError, "internal", "failed to apply credits")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"balance": balance, "credited": amount})
}
