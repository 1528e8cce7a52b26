package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"simplifai-backend/internal/handlers"
	"simplifai-backend/internal/logger"
	"simplifai-backend/internal/middleware"
)

type Options struct {
	AllowedOrigins []string
	MaxBodyBytes   int64
	RequestTimeout time.Duration
	Limiter        middleware.Limiter // nil disables rate limiting

	// TrustProxyHeaders lets X-Forwarded-For / X-Real-IP replace the socket
	// address. Only safe behind a proxy that overwrites those headers.
	TrustProxyHeaders bool
}

func New(
	log *logger.Logger,
	relayHandler *handlers.RelayHandler,
	chatHandler *handlers.ChatHandler,
	healthHandler *handlers.HealthHandler,
	opts Options,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	if opts.TrustProxyHeaders {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(middleware.CORS(opts.AllowedOrigins))

	r.Get("/health", healthHandler.Health)
	r.Handle("/metrics", promhttp.Handler())

	relayRoutes := func(r chi.Router) {
		if opts.Limiter != nil {
			r.Use(middleware.RateLimit(opts.Limiter, log))
		}
		r.Use(middleware.MaxBytes(opts.MaxBodyBytes))
		if opts.RequestTimeout > 0 {
			r.Use(chimiddleware.Timeout(opts.RequestTimeout))
		}

		r.Post("/simplify", relayHandler.Simplify)
		r.Post("/translate", relayHandler.Translate)
		r.Post("/chat", chatHandler.Chat)
	}

	// The browser extension calls the root paths; /api/v1 is for versioned clients.
	r.Group(relayRoutes)
	r.Route("/api/v1", relayRoutes)

	return r
}
