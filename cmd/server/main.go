package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mathadv/quiz/internal/adaptive"
	"github.com/mathadv/quiz/internal/api"
	"github.com/mathadv/quiz/internal/config"
	"github.com/mathadv/quiz/internal/db"
	"github.com/mathadv/quiz/internal/jobs"
	"github.com/mathadv/quiz/internal/logger"
	"github.com/mathadv/quiz/internal/models"
	"github.com/mathadv/quiz/internal/repository/sqlite"
	"github.com/mathadv/quiz/internal/services"
	"github.com/mathadv/quiz/internal/worker"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("MathAdv Quiz Server Starting")
	log.Info("===========================================")

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("min_window_size=%d", cfg.MinWindowSize)
	log.Debug("lookback_window=%d", cfg.LookbackWindow)
	log.Debug("high_accuracy=%g", cfg.HighAccuracy)
	log.Debug("low_accuracy=%g", cfg.LowAccuracy)
	log.Debug("max_puzzles=%d", cfg.MaxPuzzles)

	// Open the attempt log database (in-memory by default)
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	// Initialize repositories
	sessionRepo := sqlite.NewSessionRepository(database)
	attemptRepo := sqlite.NewAttemptRepository(database)
	adaptationRepo := sqlite.NewAdaptationRepository(database)
	statsRepo := sqlite.NewStatsRepository(database)

	// Background stats refresh
	statsPool := worker.NewPool(cfg.StatsWorkerCount, cfg.StatsQueueSize)
	queue := jobs.NewWorkerQueue(statsPool, statsRepo)

	engineCfg := adaptive.Config{
		MinWindowSize:  cfg.MinWindowSize,
		LookbackWindow: cfg.LookbackWindow,
		HighAccuracy:   cfg.HighAccuracy,
		LowAccuracy:    cfg.LowAccuracy,
		FastTime: map[models.Difficulty]float64{
			models.Easy:   cfg.FastTimeEasy,
			models.Medium: cfg.FastTimeMedium,
			models.Hard:   cfg.FastTimeHard,
		},
		SlowTime: map[models.Difficulty]float64{
			models.Easy:   cfg.SlowTimeEasy,
			models.Medium: cfg.SlowTimeMedium,
			models.Hard:   cfg.SlowTimeHard,
		},
	}

	// Initialize services
	sessionService := services.NewSessionService(sessionRepo, attemptRepo, adaptationRepo, queue, engineCfg, cfg.MaxPuzzles, cfg.PuzzleSeed)
	statsService := services.NewStatsService(statsRepo, sessionRepo)

	srv := &api.Server{
		DB:             database,
		SessionService: sessionService,
		StatsService:   statsService,
	}

	ctx, cancel := context.WithCancel(context.Background())
	statsPool.Start(ctx)

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("stopping worker pool")
	cancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	statsPool.Stop()

	log.Info("===========================================")
	log.Info("MathAdv Quiz Server Stopped")
	log.Info("===========================================")
}
