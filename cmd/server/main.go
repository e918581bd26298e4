package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"gold-ledger/internal/config"
	"gold-ledger/internal/database"
	"gold-ledger/internal/server"

	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg := config.Load()

	level := slog.LevelInfo
	if cfg.IsDevelopment() {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	logger.Info("Starting gold ledger API", "environment", cfg.Server.Environment, "port", cfg.Server.Port)

	db, err := database.Initialize(cfg)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database", "error", err)
		}
	}()

	if _, err := server.SeedAdmin(cfg, db, logger); err != nil {
		logger.Error("Failed to seed bootstrap admin", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, db, prometheus.DefaultRegisterer, logger)
	if err := srv.Run(ctx); err != nil {
		logger.Error("API server stopped with error", "error", err)
		os.Exit(1)
	}

	logger.Info("API server stopped")
}
