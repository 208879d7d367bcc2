package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iho/finwallet/internal/adapter/http/handler"
	"github.com/iho/finwallet/internal/adapter/http/middleware"
	"github.com/iho/finwallet/internal/infrastructure/auth"
	"github.com/iho/finwallet/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	WalletHandler    *handler.WalletHandler
	MergeHandler     *handler.MergeHandler
	TransferHandler  *handler.TransferHandler
	BudgetHandler    *handler.BudgetHandler
	ScheduleHandler  *handler.ScheduleHandler
	RateHandler      *handler.RateHandler
	HealthHandler    *handler.HealthHandler
	IdempotencyStore usecase.IdempotencyStore
	RateLimiter      *middleware.RateLimiter
	JWTManager       *auth.JWTManager
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Auth is optional; enabled only when a JWT manager is configured.
		if cfg.JWTManager != nil {
			r.Use(middleware.AuthMiddleware(cfg.JWTManager))
		}

		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Wallets
		r.Route("/wallets", func(r chi.Router) {
			r.Post("/", cfg.WalletHandler.Create)
			r.Get("/", cfg.WalletHandler.List)
			r.Get("/{id}", cfg.WalletHandler.Get)
			r.Delete("/{id}", cfg.WalletHandler.Delete)
			r.Post("/{id}/withdraw", cfg.WalletHandler.Withdraw)
			r.Get("/{id}/activity", cfg.WalletHandler.ListActivity)
		})

		// Wallet groups
		r.Route("/groups", func(r chi.Router) {
			r.Post("/", cfg.WalletHandler.CreateGroup)
			r.Get("/", cfg.WalletHandler.ListGroups)
		})

		// Merges
		r.Route("/merges", func(r chi.Router) {
			r.Post("/preview", cfg.MergeHandler.Preview)
			r.Post("/", cfg.MergeHandler.Execute)
		})

		// Transfers
		r.Route("/transfers", func(r chi.Router) {
			r.Post("/preview", cfg.TransferHandler.Preview)
			r.Post("/", cfg.TransferHandler.Execute)
		})

		// Exchange rates
		r.Route("/rates", func(r chi.Router) {
			r.Get("/", cfg.RateHandler.Get)
			r.Post("/", cfg.RateHandler.Set)
		})

		// Budgets
		r.Route("/budgets", func(r chi.Router) {
			r.Post("/", cfg.BudgetHandler.Create)
			r.Get("/", cfg.BudgetHandler.List)
			r.Get("/{id}", cfg.BudgetHandler.Get)
			r.Post("/{id}/check", cfg.BudgetHandler.Check)
			r.Post("/{id}/spend", cfg.BudgetHandler.Spend)
		})

		// Schedules
		r.Route("/schedules", func(r chi.Router) {
			r.Post("/", cfg.ScheduleHandler.Create)
			r.Get("/", cfg.ScheduleHandler.List)
			r.Delete("/{id}", cfg.ScheduleHandler.Delete)
		})
	})

	return r
}
