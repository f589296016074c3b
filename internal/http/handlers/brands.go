package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"adforge/internal/domain"
)

func (a *App) BrandsGet(w http.ResponseWriter, r *http.Request) {
	teamID, _, ok := a.identity(w, r)
	if !ok {
		return
	}
	brand, err := a.Brands.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil || brand.TeamID != teamID {
		if err == nil || errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "brand not found")
			return
		}
		a.error(w, http.StatusInternalServerError, "internal", "failed to load brand")
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"id":             brand.ID,
		"name":           brand.Name,
		"industry":       brand.Industry,
		"targetAudience": brand.TargetAudience,
		"tonality":       brand.Tonality,
		"usps":           brand.USPs,
		"noGos":          brand.NoGos,
		"createdAt":      brand.CreatedAt,
	})
}

func (a *App) ProductsGet(w http.ResponseWriter, r *http.Request) {
	teamID, _, ok := a.identity(w, r)
	if !ok {
		return
	}
	product, err := a.Brands.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "product not found")
			return
		}
		a.error(w, http.StatusInternalServerError, "internal", "failed to load product")
		return
	}
	brand, err := a.Brands.GetByID(r.Context(), product.BrandID)
	if err != nil || brand.TeamID != teamID {
		a.error(w, http.StatusNotFound, "not_found", "product not found")
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"id":          product.ID,
		"brandId":     product.BrandID,
		"name":        product.Name,
		"description": product.Description,
		"price":       product.Price,
		"benefits":    product.Benefits,
		"objections":  product.Objections,
		"reviews":     product.Reviews,
		"createdAt":   product.CreatedAt,
	})
}
