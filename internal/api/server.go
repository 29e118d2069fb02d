// Package api exposes the analysis and lifecycle services over HTTP.
package api

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ignite/creative-engine/internal/analysis"
	"github.com/ignite/creative-engine/internal/ingest"
	"github.com/ignite/creative-engine/internal/lifecycle"
	"github.com/ignite/creative-engine/internal/specs"
	"github.com/ignite/creative-engine/internal/storage"
)

// Handlers bundles the service dependencies behind the HTTP surface.
// Optional members may be nil; their routes then respond 503.
type Handlers struct {
	Analyzer  *analysis.Analyzer
	Lifecycle *lifecycle.Service
	Specs     *specs.Client
	Source    ingest.Source
	Reports   *storage.ReportCache
	Worker    *lifecycle.Worker
	DB        *sql.DB
	AccountID string
}

// SetupRoutes configures the router with middleware and all API routes.
func SetupRoutes(h *Handlers, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)

	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:5173", "http://localhost:8080"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", h.HealthCheck)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/analysis", func(r chi.Router) {
			r.Post("/run", h.RunAnalysis)
			r.Post("/creative", h.AnalyzeCreative)
			r.Get("/report", h.GetReport)
		})

		r.Route("/creatives", func(r chi.Router) {
			r.Get("/{id}/history", h.GetCreativeHistory)
			r.Post("/{id}/actions", h.LogCreativeAction)
		})

		r.Route("/lifecycle", func(r chi.Router) {
			r.Get("/actions", h.GetRecentActions)
			r.Get("/outcomes", h.GetOutcomes)
			r.Get("/insights", h.GetLearningInsights)
			r.Get("/recommendations", h.GetActionRecommendations)
			r.Get("/config", h.GetLearningConfig)
			r.Put("/config", h.UpdateLearningConfig)
		})

		r.Route("/specs", func(r chi.Router) {
			r.Get("/current", h.GetCurrentSpecs)
			r.Post("/validate/headline", h.ValidateHeadline)
			r.Post("/validate/image", h.ValidateImage)
		})
	})

	return r
}

// NewServer builds an http.Server for the given address. Write timeout is
// generous because a full analysis run can take a while on large accounts.
func NewServer(addr string, router http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       2 * time.Minute,
	}
}
