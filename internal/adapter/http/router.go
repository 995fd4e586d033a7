package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/veldbank/corebank/internal/adapter/http/handler"
	"github.com/veldbank/corebank/internal/adapter/http/middleware"
	"github.com/veldbank/corebank/internal/infrastructure/auth"
	"github.com/veldbank/corebank/internal/infrastructure/metrics"
	"github.com/veldbank/corebank/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler     *handler.AccountHandler
	TransactionHandler *handler.TransactionHandler
	AtmHandler         *handler.AtmHandler
	LedgerHandler      *handler.LedgerHandler
	UserHandler        *handler.UserHandler
	HealthHandler      *handler.HealthHandler

	Logger           zerolog.Logger
	Metrics          *metrics.Metrics
	IdempotencyStore usecase.IdempotencyStore
	JWTManager       *auth.JWTManager // nil disables authentication
	AtmRateLimit     float64
	AtmRateBurst     int
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery(cfg.Logger))
	if cfg.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	}

	// Operational endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.IdempotencyStore != nil {
			r.Use(middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore).Wrap)
		}
		if cfg.JWTManager != nil {
			r.Use(middleware.OptionalAuth(cfg.JWTManager))
		}

		// Users
		r.Route("/users", func(r chi.Router) {
			r.Post("/", cfg.UserHandler.Create)
			r.Post("/login", cfg.UserHandler.Login)
			r.Get("/{id}", cfg.UserHandler.Get)
			r.Get("/{id}/accounts", cfg.AccountHandler.ListByUser)
		})

		// Accounts
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.AccountHandler.Create)
			r.Get("/", cfg.AccountHandler.List)
			r.Get("/{id}", cfg.AccountHandler.Get)
			r.Delete("/{id}", cfg.AccountHandler.Deactivate)
			r.Get("/iban/{iban}", cfg.AccountHandler.GetByIBAN)
			r.Get("/{id}/transactions", cfg.TransactionHandler.ListByAccount)
			r.Get("/{id}/transactions/sent", cfg.TransactionHandler.ListSent)
			r.Get("/{id}/transactions/received", cfg.TransactionHandler.ListReceived)
		})

		// Transactions
		r.Route("/transactions", func(r chi.Router) {
			r.Post("/", cfg.TransactionHandler.Create)
			r.Get("/{id}", cfg.TransactionHandler.Get)
		})

		// ATM
		r.Route("/atm", func(r chi.Router) {
			if cfg.AtmRateLimit > 0 {
				r.Use(middleware.NewRateLimiter(cfg.AtmRateLimit, cfg.AtmRateBurst).Limit)
			}
			r.Post("/deposit", cfg.AtmHandler.Deposit)
			r.Post("/withdraw", cfg.AtmHandler.Withdraw)
		})

		// Ledger
		r.Get("/ledger/consistency", cfg.LedgerHandler.CheckConsistency)
	})

	return r
}
