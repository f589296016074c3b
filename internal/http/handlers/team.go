package handlers

import (
	"errors"
	"net/http"

	"adforge/internal/domain"
)

// TeamGet returns the caller's team with its live credit balance.
func (a *App) TeamGet(w http.ResponseWriter, r *http.Request) {
	teamID, _, ok := a.identity(w, r)
	if !ok {
		return
	}
	team, err := a.Teams.GetByID(r.Context(), teamID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "team not found")
			return
		}
		a.error(w, http.StatusInternalServerError, "internal", "failed to load team")
		return
	}
	balance, err := a.Ledger.Balance(r.Context(), teamID)
	if err != nil {
		balance = team.Credits
	}
	a.json(w, http.StatusOK, map[string]any{
		"id":        team.ID,
		"name":      team.Name,
		"credits":   balance,
		"createdAt": team.CreatedAt,
	})
}
