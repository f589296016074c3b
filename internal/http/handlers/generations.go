package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"adforge/internal/credits"
	"adforge/internal/domain"
	"adforge/internal/middleware"
)

type generationResponse struct {
	ID         string `json:"id"`
	BrandID    string `json:"brandId"`
	ProductID  string `json:"productId,omitempty"`
	TemplateID string `json:"templateId,omitempty"`

	Platform domain.Platform         `json:"platform"`
	Goal     domain.Goal             `json:"goal"`
	Style    domain.Style            `json:"style"`
	Duration int                     `json:"duration"`
	Language string                  `json:"language"`
	Status   domain.GenerationStatus `json:"status"`

	Hooks             json.RawMessage `json:"hooks,omitempty"`
	Scripts           json.RawMessage `json:"scripts,omitempty"`
	Shotlist          json.RawMessage `json:"shotlist,omitempty"`
	Voiceover         json.RawMessage `json:"voiceover,omitempty"`
	Captions          json.RawMessage `json:"captions,omitempty"`
	CTAs              json.RawMessage `json:"ctas,omitempty"`
	ObjectionHandling json.RawMessage `json:"objectionHandling,omitempty"`
	AdCopy            json.RawMessage `json:"adCopy,omitempty"`

	CreditsUsed  int        `json:"creditsUsed"`
	ErrorMessage string     `json:"errorMessage,omitempty"`
	JobID        string     `json:"jobId,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
}

func toGenerationResponse(g *domain.Generation) generationResponse {
	return generationResponse{
		ID:                g.ID,
		BrandID:           g.BrandID,
		ProductID:         g.ProductID,
		TemplateID:        g.TemplateID,
		Platform:          g.Platform,
		Goal:              g.Goal,
		Style:             g.Style,
		Duration:          g.Duration,
		Language:          g.Language,
		Status:            g.Status,
		Hooks:             g.Hooks,
		Scripts:           g.Scripts,
		Shotlist:          g.Shotlist,
		Voiceover:         g.Voiceover,
		Captions:          g.Captions,
		CTAs:              g.CTAs,
		ObjectionHandling: g.ObjectionHandling,
		AdCopy:            g.AdCopy,
		CreditsUsed:       g.CreditsUsed,
		ErrorMessage:      g.ErrorMessage,
		JobID:             g.JobID,
		CreatedAt:         g.CreatedAt,
		UpdatedAt:         g.UpdatedAt,
		CompletedAt:       g.CompletedAt,
	}
}

// GenerationsCreate accepts a new generation request, charges nothing yet,
// and queues the pipeline. The balance is checked up front so an obviously
// unaffordable request fails fast instead of at the first worker attempt.
func (a *App) GenerationsCreate(w http.ResponseWriter, r *http.Request) {
	teamID, userID, ok := a.identity(w, r)
	if !ok {
		return
	}

	var input domain.GenerationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if input.BrandID == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "brandId required")
		return
	}
	if input.Language == "" {
		input.Language = middleware.LanguageFromContext(r.Context())
	}
	input.Normalize()

	brand, err := a.Brands.GetByID(r.Context(), input.BrandID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "brand not found")
			return
		}
		a.error(w, http.StatusInternalServerError, "internal", "failed to load brand")
		return
	}
	if brand.TeamID != teamID {
		a.error(w, http.StatusNotFound, "not_found", "brand not found")
		return
	}
	if input.ProductID != "" {
		product, err := a.Brands.GetProduct(r.Context(), input.ProductID)
		if err != nil || product.BrandID != brand.ID {
			a.error(w, http.StatusNotFound, "not_found", "product not found")
			return
		}
	}

	balance, err := a.Ledger.Balance(r.Context(), teamID)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to check balance")
		return
	}
	if balance < credits.CostFullPack {
		a.error(w, http.StatusPaymentRequired, "insufficient_credits", "not enough credits for a full generation")
		return
	}

	g := &domain.Generation{
		ID:         uuid.NewString(),
		TeamID:     teamID,
		UserID:     userID,
		BrandID:    input.BrandID,
		ProductID:  input.ProductID,
		TemplateID: input.TemplateID,
		Platform:   input.Platform,
		Goal:       input.Goal,
		Style:      input.Style,
		Duration:   input.Duration,
		Language:   input.Language,
		Status:     domain.GenerationPending,
	}
	if err := a.Gens.Create(r.Context(), g); err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to create generation")
		return
	}

	job, err := a.Queue.EnqueueGenerate(r.Context(), g, &input)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateJob) {
			a.error(w, http.StatusConflict, "duplicate_job", "generation already queued")
			return
		}
		a.error(w, http.StatusInternalServerError, "internal", "failed to queue generation")
		return
	}

	a.json(w, http.StatusAccepted, map[string]any{
		"generationId": g.ID,
		"jobId":        job.ID,
		"status":       domain.GenerationPending,
	})
}

func (a *App) GenerationsList(w http.ResponseWriter, r *http.Request) {
	teamID, _, ok := a.identity(w, r)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	items, err := a.Gens.ListForTeam(r.Context(), teamID, limit)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to list generations")
		return
	}
	out := make([]generationResponse, 0, len(items))
	for i := range items {
		out = append(out, toGenerationResponse(&items[i]))
	}
	a.json(w, http.StatusOK, map[string]any{"generations": out})
}

func (a *App) GenerationsGet(w http.ResponseWriter, r *http.Request) {
	teamID, _, ok := a.identity(w, r)
	if !ok {
		return
	}
	g, err := a.Gens.GetForTeam(r.Context(), chi.URLParam(r, "id"), teamID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "generation not found")
			return
		}
		a.error(w, http.StatusInternalServerError, "internal", "failed to load generation")
		return
	}
	a.json(w, http.StatusOK, toGenerationResponse(g))
}

// GenerationsStatus merges the generation record with live queue progress so
// pollers see step-level detail while the pipeline runs.
func (a *App) GenerationsStatus(w http.ResponseWriter, r *http.Request) {
	teamID, _, ok := a.identity(w, r)
	if !ok {
		return
	}
	g, err := a.Gens.GetForTeam(r.Context(), chi.URLParam(r, "id"), teamID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "generation not found")
			return
		}
		a.error(w, http.StatusInternalServerError, "internal", "failed to load generation")
		return
	}

	resp := map[string]any{
		"generationId": g.ID,
		"status":       g.Status,
	}
	if g.ErrorMessage != "" {
		resp["errorMessage"] = g.ErrorMessage
	}
	if g.JobID != "" {
		if job, err := a.Queue.Status(r.Context(), g.JobID); err == nil {
			status := map[string]any{
				"id":       job.ID,
				"state":    job.State,
				"step":     job.Progress.Step,
				"percent":  job.Progress.Percent,
				"attempts": job.Attempts,
			}
			if job.FailReason != "" {
				status["failReason"] = job.FailReason
			}
			resp["job"] = status
		}
	}
	a.json(w, http.StatusOK, resp)
}

type regenerateRequest struct {
	Section      string `json:"section"`
	Instructions string `json:"instructions,omitempty"`
}

// GenerationsRegenerate queues a rebuild of one section of a completed
// generation.
func (a *App) GenerationsRegenerate(w http.ResponseWriter, r *http.Request) {
	teamID, _, ok := a.identity(w, r)
	if !ok {
		return
	}

	var req regenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	section, err := domain.ParseSection(req.Section)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "unknown section")
		return
	}

	g, err := a.Gens.GetForTeam(r.Context(), chi.URLParam(r, "id"), teamID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "generation not found")
			return
		}
		a.error(w, http.StatusInternalServerError, "internal", "failed to load generation")
		return
	}
	if g.Status != domain.GenerationCompleted {
		a.error(w, http.StatusConflict, "not_completed", "only completed generations can be regenerated")
		return
	}

	balance, err := a.Ledger.Balance(r.Context(), teamID)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to check balance")
		return
	}
	if balance < credits.SectionCost(section) {
		a.error(w, http.StatusPaymentRequired, "insufficient_credits", "not enough credits for regeneration")
		return
	}

	job, err := a.Queue.EnqueueRegenerate(r.Context(), g, section, req.Instructions)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to queue regeneration")
		return
	}
	a.json(w, http.StatusAccepted, map[string]any{
		"generationId": g.ID,
		"jobId":        job.ID,
		"section":      section,
	})
}
