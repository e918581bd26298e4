package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log/slog"
	"os"

	"gold-ledger/internal/config"
	"gold-ledger/internal/database"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/lib/pq"
)

var (
	direction = flag.String("direction", "up", "Migration direction: up, down or status")
	steps     = flag.Int("steps", 1, "Number of migrations to roll back with -direction=down")
	seed      = flag.Bool("seed", false, "Load db/seeds after migrating up")
	path      = flag.String("migrations", "", "Path to the migrations directory (defaults to MIGRATIONS_PATH)")
)

func main() {
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := config.Load()
	if *path != "" {
		cfg.Migration.Path = *path
	}
	cfg.Migration.Seed = cfg.Migration.Seed || *seed

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		logger.Error("Failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	runner := database.NewMigrationRunner(db, cfg.Migration)
	if err := runner.WaitForDatabase(context.Background()); err != nil {
		logger.Error("Database is not reachable", "error", err)
		os.Exit(1)
	}

	switch *direction {
	case "up":
		if err := runner.RunMigrations(); err != nil {
			logger.Error("Migration failed", "error", err)
			os.Exit(1)
		}
		if err := runner.LoadSeeds(); err != nil {
			logger.Error("Seeding failed", "error", err)
			os.Exit(1)
		}
	case "down":
		if err := runner.Rollback(*steps); err != nil {
			logger.Error("Rollback failed", "steps", *steps, "error", err)
			os.Exit(1)
		}
		logger.Info("Rolled back migrations", "steps", *steps)
	case "status":
		// status only reads the version table
	default:
		logger.Error("Unknown direction", "direction", *direction)
		flag.Usage()
		os.Exit(2)
	}

	version, dirty, err := runner.GetMigrationStatus()
	if errors.Is(err, migrate.ErrNilVersion) {
		logger.Info("No migrations applied")
		return
	}
	if err != nil {
		logger.Error("Failed to read migration status", "error", err)
		os.Exit(1)
	}
	logger.Info("Migration status", "version", version, "dirty", dirty)
}
