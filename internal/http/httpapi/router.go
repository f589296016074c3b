// Package httpapi assembles the chi router for the API process.
package httpapi

import (
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"adforge/internal/http/handlers"
	"adforge/internal/middleware"
)

type Options struct {
	Logger          zerolog.Logger
	RateLimitPerMin int
	DefaultLanguage string
}

func NewRouter(app *handlers.App, opts Options) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Logger(opts.Logger))
	r.Use(middleware.Language(opts.DefaultLanguage))
	if opts.RateLimitPerMin > 0 {
		r.Use(middleware.RateLimit(opts.RateLimitPerMin, time.Minute))
	}

	r.Get("/v1/healthz", app.Health)

	r.Route("/v1/generations", func(r chi.Router) {
		r.Post("/", app.GenerationsCreate)
		r.Get("/", app.GenerationsList)
		r.Get("/{id}", app.GenerationsGet)
		r.Get("/{id}/status", app.GenerationsStatus)
		r.Post("/{id}/regenerate", app.GenerationsRegenerate)
	})

	r.Route("/v1/credits", func(r chi.Router) {
		r.Get("/", app.CreditsBalance)
		r.Get("/history", app.CreditsHistory)
		r.Get("/catalog", app.CreditsCatalog)
		r.Post("/purchase", app.CreditsPurchase)
	})

	r.Get("/v1/team", app.TeamGet)
	r.Get("/v1/brands/{id}", app.BrandsGet)
	r.Get("/v1/products/{id}", app.ProductsGet)

	return r
}
