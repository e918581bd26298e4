package server

import (
	"fmt"
	"log/slog"

	"gold-ledger/internal/config"
	"gold-ledger/internal/database"
	"gold-ledger/internal/models"
	"gold-ledger/internal/services"

	"github.com/google/uuid"
)

// SeedAdmin creates the bootstrap admin named by cfg.Bootstrap when it does not exist yet.
// Without a configured password one is generated and logged once, so a fresh
// deployment can still sign in.
func SeedAdmin(cfg *config.Config, db *database.DB, logger *slog.Logger) (*models.Admin, error) {
	if cfg.Bootstrap.AdminEmail == "" {
		return nil, nil
	}
	if logger == nil {
		logger = slog.Default()
	}

	password := cfg.Bootstrap.AdminPassword
	generated := password == ""
	if generated {
		password = uuid.NewString()
	}

	passwordService := services.NewPasswordService(cfg.Security.BCryptCost, cfg.Security.PasswordMinLength)
	hash, err := passwordService.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash bootstrap admin password: %w", err)
	}

	admin, err := db.SeedAdmin(cfg.Bootstrap.AdminName, cfg.Bootstrap.AdminEmail, hash)
	if err != nil {
		return nil, err
	}

	if generated && admin.PasswordHash == hash {
		logger.Warn("Bootstrap admin created with a generated password",
			"email", admin.Email,
			"password", password,
		)
	}

	return admin, nil
}
