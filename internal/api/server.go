// Package api implements the HTTP surface of the billing service.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/edvin/jobboard/internal/api/handler"
	mw "github.com/edvin/jobboard/internal/api/middleware"
	"github.com/edvin/jobboard/internal/config"
	"github.com/edvin/jobboard/internal/core"
)

type Server struct {
	router   chi.Router
	logger   zerolog.Logger
	services *core.Services
	apiKeys  *core.APIKeyService
	pool     *pgxpool.Pool
	cfg      *config.Config
}

func NewServer(logger zerolog.Logger, pool *pgxpool.Pool, cfg *config.Config) *Server {
	services := core.NewServices(pool, core.SystemClock(), logger)

	s := &Server{
		router:   chi.NewRouter(),
		logger:   logger,
		services: services,
		apiKeys:  core.NewAPIKeyService(pool),
		pool:     pool,
		cfg:      cfg,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(mw.RequestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(mw.Metrics)
}

func (s *Server) setupRoutes() {
	// Prometheus metrics endpoint
	s.router.Handle("/metrics", promhttp.Handler())

	// Health check endpoints
	s.router.Get("/healthz", s.handleHealthz)
	s.router.Get("/readyz", s.handleReadyz)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(mw.Auth(s.pool))

		// Plans
		plan := handler.NewPlan(s.services.Plan)
		r.Get("/plans", plan.List)
		r.Get("/plans/{id}", plan.Get)

		// Tenants
		tenant := handler.NewTenant(s.services.Tenant)
		r.Get("/tenants", tenant.List)
		r.Post("/tenants", tenant.Create)
		r.Get("/tenants/{id}", tenant.Get)
		r.Get("/tenants/{id}/admins", tenant.ListAdmins)
		r.Post("/tenants/{id}/admins", tenant.AddAdmin)

		// Billing lifecycle
		billing := handler.NewBilling(s.services.Billing, s.services.Tenant, core.SystemClock())
		r.Post("/tenants/{id}/trial", billing.StartTrial)
		r.Post("/tenants/{id}/expire", billing.Expire)
		r.Get("/tenants/{id}/access", billing.Access)
		r.Post("/payments/webhook", billing.PaymentWebhook)

		// Cross-resource search for support tooling
		search := handler.NewSearch(s.services.Search)
		r.Get("/search", search.Search)

		// API keys
		apiKey := handler.NewAPIKey(s.apiKeys)
		r.Post("/api-keys", apiKey.Create)
		r.Delete("/api-keys/{id}", apiKey.Revoke)
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	checks := map[string]string{}
	healthy := true

	if err := s.pool.Ping(ctx); err != nil {
		checks["db"] = err.Error()
		healthy = false
	} else {
		checks["db"] = "ok"
	}

	w.Header().Set("Content-Type", "application/json")
	if healthy {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(checks)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
