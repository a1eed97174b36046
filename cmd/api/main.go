package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"review-analyzer/internal/cache"
	"review-analyzer/internal/config"
	httphandler "review-analyzer/internal/http"
	"review-analyzer/internal/middleware"
	"review-analyzer/internal/services/llm"
	"review-analyzer/internal/services/review"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	port := flag.String("port", "", "Port to run the server on (overrides PORT)")
	flag.Parse()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	if *port != "" {
		cfg.Server.Port = *port
	}

	if cfg.LLM.APIKey == "" {
		log.Warn().
			Str("provider", cfg.LLM.Provider).
			Str("secrets_file", cfg.LLM.SecretsFile).
			Msg("No API key configured; analysis requests will report NOT_CONFIGURED")
	} else {
		log.Info().
			Str("provider", cfg.LLM.Provider).
			Str("model", cfg.LLM.Model).
			Msg("API key loaded")
	}

	// Rate limiting: shared window via Redis when configured, else in memory.
	var limiter middleware.Limiter
	if cfg.Redis.Addr != "" {
		redisCache, err := cache.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, falling back to in-memory rate limiting")
		} else {
			defer redisCache.Close()
			limiter = middleware.NewRedisLimiter(redisCache, cfg.RateLimit.RequestsPerMinute)
		}
	}
	if limiter == nil {
		limiter = middleware.NewTokenBucketLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.BurstSize)
	}

	// The provider client is created on first use and reused for the process
	// lifetime; a missing key surfaces per request instead of at startup.
	llmCfg := cfg.LLM
	svc := review.NewService(llmCfg.Provider, llmCfg.Model, func(ctx context.Context) (llm.Client, error) {
		if llmCfg.APIKey == "" {
			return nil, review.ErrNotConfigured
		}
		return llm.NewClient(ctx, llm.ClientConfig{
			Provider:    llmCfg.Provider,
			APIKey:      llmCfg.APIKey,
			BaseURL:     llmCfg.BaseURL,
			Model:       llmCfg.Model,
			Temperature: llmCfg.Temperature,
		})
	})
	defer svc.Close()

	router := httphandler.NewRouter(limiter)
	router.RegisterReviewRoutes(httphandler.NewReviewHandler(svc))
	router.RegisterUIRoutes()
	router.RegisterHealthRoutes()

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown error")
	}

	log.Info().Msg("Server stopped")
}
