package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/kpi_tracker/backend/internal/config"
	httpapi "github.com/kpi_tracker/backend/internal/http"
	"github.com/kpi_tracker/backend/internal/service"
)

// @title KPI Tracker API
// @version 1.0
// @description Monthly developer KPI generation and reporting
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := log.Level(level).With().Str("service", "kpi-backend").Logger()

	scoring, err := cfg.Scoring()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid scoring config")
	}

	repo, closeRepo, err := service.OpenRepository(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open repository")
	}
	defer closeRepo()

	kpiService := &service.KPIService{
		Repo:       repo,
		Config:     scoring,
		ConfigFile: cfg.ScoringConfigFile,
		Logger:     logger.With().Str("component", "kpi").Logger(),
		Workers:    cfg.Workers,
	}

	router := httpapi.Router(cfg, repo, kpiService, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info().
			Str("port", cfg.Port).
			Float64("delivery_weight", scoring.DeliveryWeight).
			Float64("quality_weight", scoring.QualityWeight).
			Msg("server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShutdown)
	logger.Info().Msg("server stopped")
}
