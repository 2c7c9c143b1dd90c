// Command api is the FixtureCast season API server.
//
// Usage:
//
//	fixturecast-api
//	API_PORT=8080 fixturecast-api

// @title FixtureCast API
// @version 1.0.0
// @description Season simulation and prediction API: projects a partially played round-robin league into a full season with per-match predictions, standings projections, and team strengths.
// @host localhost:8000
// @BasePath /api/v1
// @schemes http https
// @license.name MIT
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/fixturecast/fixturecast/internal/api"
	"github.com/fixturecast/fixturecast/internal/cache"
	"github.com/fixturecast/fixturecast/internal/config"
	"github.com/fixturecast/fixturecast/internal/db"
	"github.com/fixturecast/fixturecast/internal/predict"
	"github.com/fixturecast/fixturecast/internal/refresh"
	"github.com/fixturecast/fixturecast/internal/season"

	_ "github.com/fixturecast/fixturecast/docs" // swagger docs
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	league, err := config.League(cfg.League)
	if err != nil {
		logger.Error("Failed to resolve league", "error", err)
		os.Exit(1)
	}

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Connect to database
	logger.Info("Connecting to database...")
	pool, err := db.New(ctx, cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("Database connected",
		"min_conns", cfg.DBPoolMinConns,
		"max_conns", cfg.DBPoolMaxConns)

	// Initialize cache
	appCache := cache.New(cfg.CacheEnabled)
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled)

	// Prediction model
	model := predict.NewModel(league.BaseHomeGoals, league.BaseAwayGoals, buildStrategy(cfg))
	assembler := season.New(league, model, cfg.PredictWorkers, logger)

	// Background season refresh: builds the export immediately, then on a
	// fixed interval.
	holder := &refresh.Holder{}
	go refresh.Start(ctx, pool.Pool, holder, assembler, cfg, logger)

	// Create router
	router := api.NewRouter(pool.Pool, appCache, cfg, holder, model)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting FixtureCast API",
			"addr", addr,
			"league", league.ID,
			"environment", cfg.Environment,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}

// buildStrategy selects the configured distribution strategy.
func buildStrategy(cfg *config.Config) predict.Strategy {
	if cfg.PredictStrategy == "montecarlo" {
		return predict.NewMonteCarloStrategy(cfg.PredictTrials, cfg.PredictSeed)
	}
	return predict.GridStrategy{}
}
