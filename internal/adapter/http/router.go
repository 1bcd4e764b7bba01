package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/iho/gamewallet/internal/adapter/http/handler"
	"github.com/iho/gamewallet/internal/adapter/http/middleware"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	WalletHandler      *handler.WalletHandler
	BasicHandler       *handler.BasicHandler
	AccountHandler     *handler.AccountHandler
	ConsistencyHandler *handler.ConsistencyHandler
	HealthHandler      *handler.HealthHandler
	Authenticator      middleware.Authenticator
	AuthObserver       middleware.AuthObserver
	HTTPMetrics        *middleware.HTTPMetrics // optional
	RateLimiter        *middleware.RateLimiter // optional; applies to vendor routes
	MetricsHandler     http.Handler            // optional; served on /metrics
	AdminToken         string                  // admin routes are disabled when empty
	Logger             zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery(cfg.Logger))
	if cfg.HTTPMetrics != nil {
		r.Use(cfg.HTTPMetrics.Wrap)
	}

	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}

	r.Route("/api", func(r chi.Router) {
		if cfg.RateLimiter != nil {
			r.Use(cfg.RateLimiter.Limit)
		}

		// Signed vendor wallet
		r.Route("/wallet", func(r chi.Router) {
			r.Post("/balance", cfg.WalletHandler.Balance)
			r.Post("/bet", cfg.WalletHandler.Bet)
			r.Post("/bet-result", cfg.WalletHandler.BetResult)
			r.Post("/bet-credit", cfg.WalletHandler.BetCredit)
			r.Post("/bet-debit", cfg.WalletHandler.BetDebit)
			r.Post("/adjustment", cfg.WalletHandler.Adjustment)
			r.Post("/rollback", cfg.WalletHandler.Rollback)
		})

		// Basic-auth game transactions
		r.Group(func(r chi.Router) {
			r.Use(middleware.BasicAuth(cfg.Authenticator, cfg.AuthObserver, cfg.Logger))
			r.Post("/transaction", cfg.BasicHandler.Transaction)
			r.Post("/batch-transactions", cfg.BasicHandler.Batch)
		})
	})

	if cfg.AdminToken != "" {
		r.Route("/admin/v1", func(r chi.Router) {
			r.Use(middleware.AdminToken(cfg.AdminToken))

			r.Get("/consistency", cfg.ConsistencyHandler.Report)
			r.Route("/accounts", func(r chi.Router) {
				r.Post("/", cfg.AccountHandler.Create)
				r.Get("/", cfg.AccountHandler.List)
				r.Get("/{name}", cfg.AccountHandler.Get)
				r.Get("/{name}/consistency", cfg.ConsistencyHandler.Account)
			})
		})
	}

	return r
}
