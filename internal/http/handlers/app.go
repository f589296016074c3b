// Package handlers implements the HTTP API surface.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"adforge/internal/domain"
	"adforge/internal/queue"
)

// App bundles the collaborators every handler needs. Identity comes from the
// X-Team-ID / X-User-ID headers set by the fronting auth proxy.
type App struct {
	Gens   domain.GenerationRepository
	Brands domain.BrandRepository
	Teams  domain.TeamRepository
	Ledger domain.CreditLedger
	Queue  *queue.Queue
	Logger zerolog.Logger
}

func NewApp(
	gens domain.GenerationRepository,
	brands domain.BrandRepository,
	teams domain.TeamRepository,
	ledger domain.CreditLedger,
	q *queue.Queue,
	logger zerolog.Logger,
) *App {
	return &App{Gens: gens, Brands: brands, Teams: teams, Ledger: ledger, Queue: q, Logger: logger}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, map[string]any{
		"error":   code,
		"message": message,
	})
}

func (a *App) currentTeamID(r *http.Request) string {
	return r.Header.Get("X-Team-ID")
}

func (a *App) currentUserID(r *http.Request) string {
	return r.Header.Get("X-User-ID")
}

// identity extracts the team/user pair or writes 401.
func (a *App) identity(w http.ResponseWriter, r *http.Request) (teamID, userID string, ok bool) {
	teamID = a.currentTeamID(r)
	userID = a.currentUserID(r)
	if teamID == "" || userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing team or user context")
		return "", "", false
	}
	return teamID, userID, true
}
