// Package http wires the REST surface over the ledger use cases.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/odam/tallybot/internal/adapter/http/handler"
	"github.com/odam/tallybot/internal/adapter/http/middleware"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	ReportHandler *handler.ReportHandler
	LedgerHandler *handler.LedgerHandler
	RateHandler   *handler.RateHandler
	ResetHandler  *handler.ResetHandler
	ExportHandler *handler.ExportHandler
	HealthHandler *handler.HealthHandler
	Logger        zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Metrics)
	r.Use(middleware.Recovery)

	// Health and observability endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/report", cfg.ReportHandler.Get)

		r.Route("/entries", func(r chi.Router) {
			r.Post("/", cfg.LedgerHandler.Record)
			r.Get("/", cfg.LedgerHandler.List)
			r.Get("/export", cfg.ExportHandler.Download)
			r.Delete("/last", cfg.LedgerHandler.Undo)
		})

		r.Route("/rate", func(r chi.Router) {
			r.Get("/", cfg.RateHandler.Get)
			r.Put("/", cfg.RateHandler.Set)
		})

		r.Route("/reset", func(r chi.Router) {
			r.Post("/", cfg.ResetHandler.Request)
			r.Post("/{token}/confirm", cfg.ResetHandler.Confirm)
			r.Post("/{token}/cancel", cfg.ResetHandler.Cancel)
		})
	})

	return r
}
