package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"simplifai-backend/internal/config"
	"simplifai-backend/internal/database"
	"simplifai-backend/internal/handlers"
	"simplifai-backend/internal/logger"
	"simplifai-backend/internal/middleware"
	"simplifai-backend/internal/router"
	"simplifai-backend/internal/services"
)

func main() {
	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()

	log := logger.New(logger.FromConfig(cfg.LogLevel, cfg.IsProduction()))
	log.Info("starting SimplifAI backend", slog.String("env", cfg.Env))

	if cfg.GeminiAPIKey == "" {
		log.Warn("GEMINI_API_KEY not set; every request must supply api_key")
	}

	// os.Exit skips deferred calls, so resources are released through closers.
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	// ──── Step 2: Rate Limiter (Redis when configured) ────
	var limiter middleware.Limiter
	if cfg.RateLimitPerMinute > 0 {
		if cfg.RedisURL != "" {
			redisClient, err := database.NewRedisClient(cfg.RedisURL)
			if err != nil {
				log.Error("redis connection failed", slog.String("error", err.Error()))
				os.Exit(1)
			}
			closers = append(closers, func() {
				if err := redisClient.Close(); err != nil {
					log.Warn("redis close failed", slog.String("error", err.Error()))
				}
			})
			limiter = middleware.NewRedisRateLimiter(redisClient, cfg.RateLimitPerMinute, time.Minute)
			log.Info("rate limiting via redis", slog.Int("per_minute", cfg.RateLimitPerMinute))
		} else {
			memLimiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)
			closers = append(closers, memLimiter.Close)
			limiter = memLimiter
			log.Info("rate limiting in memory", slog.Int("per_minute", cfg.RateLimitPerMinute))
		}
	}

	// ──── Step 3: Gemini Provider & Relay Service ────
	provider := services.NewGeminiProvider(cfg.GeminiModel)
	relay := services.NewRelayService(
		services.NewKeyResolver(cfg.GeminiAPIKey),
		provider,
		cfg.ChatStrictRoles,
		log,
	)

	// ──── Step 4: Handlers & Router ────
	r := router.New(
		log,
		handlers.NewRelayHandler(relay),
		handlers.NewChatHandler(relay),
		handlers.NewHealthHandler(provider.Model(), relay.HasFallbackKey()),
		router.Options{
			AllowedOrigins: cfg.CORSAllowedOrigins,
			MaxBodyBytes:   cfg.MaxBodyBytes,
			RequestTimeout: time.Duration(cfg.RequestTimeout) * time.Second,
			Limiter:        limiter,

			TrustProxyHeaders: cfg.TrustProxyHeaders,
		},
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: time.Duration(cfg.RequestTimeout+15) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("shutting down")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Error("graceful shutdown failed", slog.String("error", err.Error()))
		}
	}()

	log.Info("SimplifAI backend ready",
		slog.String("addr", "http://localhost:"+cfg.Port),
		slog.String("model", provider.Model()),
	)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Error("server error", slog.String("error", err.Error()))
		cleanup()
		os.Exit(1)
	}
	<-shutdownDone
	cleanup()
	log.Info("server stopped")
}
