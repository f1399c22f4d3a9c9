// Package main is the entry point for the treasure hunt ledger service.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"treasure-hunt-service/internal/auth"
	"treasure-hunt-service/internal/config"
	"treasure-hunt-service/internal/handler"
	"treasure-hunt-service/internal/pkg/db"
	"treasure-hunt-service/internal/pkg/lock"
	"treasure-hunt-service/internal/pkg/metrics"
	"treasure-hunt-service/internal/repository"
	"treasure-hunt-service/internal/server"
	"treasure-hunt-service/internal/service"
)

func main() {
	// Configure zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Load configuration
	cfg, err := config.Load("config")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log.Info().Msg("Configuration loaded successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	dbPool, err := db.NewPool(ctx, &cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer dbPool.Close()

	// Run database migrations
	log.Info().Msg("Running database migrations...")
	if err := repository.Migrate(ctx, dbPool.Pool); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Initialize metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	// Initialize repositories
	adminRepo := repository.NewAdminRepository(dbPool.Pool)
	huntRepo := repository.NewHuntRepository(dbPool.Pool)
	progressRepo := repository.NewProgressRepository(dbPool.Pool)

	// Initialize services
	huntService := service.NewHuntService(adminRepo, huntRepo, m)
	progressService := service.NewProgressService(huntRepo, progressRepo, lock.NewPlayerLock(), m)
	leaderboardService := service.NewLeaderboardService(
		progressRepo,
		cfg.Leaderboard.DefaultLimit,
		cfg.Leaderboard.MaxLimit,
	)

	// Build the router
	router := server.NewRouter(&server.Dependencies{
		Authenticator: auth.NewTokenAuthenticator(cfg.Auth.Secret),
		Hunts:         handler.NewHuntHandler(huntService),
		Progress:      handler.NewProgressHandler(progressService),
		Leaderboard:   handler.NewLeaderboardHandler(leaderboardService),
		Health:        handler.NewHealthHandler(dbPool),
		Metrics:       m,
		Registry:      registry,
	})

	srv := &http.Server{
		Addr:    cfg.Server.Addr(),
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Server is starting...")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}
	log.Info().Msg("Server stopped gracefully")
}
