package database

import (
	"fmt"
	"log/slog"
	"time"

	"gold-ledger/internal/config"
	"gold-ledger/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DB struct {
	*gorm.DB
	config *config.DatabaseConfig
}

func New(cfg *config.DatabaseConfig, logLevel logger.LogLevel) (*DB, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxConnections)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{
		DB:     db,
		config: cfg,
	}, nil
}

func (db *DB) AutoMigrate() error {
	return db.DB.AutoMigrate(
		&models.Admin{},
		&models.BlacklistedToken{},
		&models.Customer{},
		&models.Store{},
		&models.Transaction{},
	)
}

func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (db *DB) HealthCheck() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func (db *DB) Transaction(fn func(*gorm.DB) error) error {
	return db.DB.Transaction(fn)
}

// CreateIndexes adds the lookup indexes used by the transaction filter and the
// dashboard windows. Failures are logged and skipped.
func (db *DB) CreateIndexes() error {
	queries := []string{
		"CREATE INDEX IF NOT EXISTS idx_admins_email_lower ON admins(LOWER(email))",
		"CREATE INDEX IF NOT EXISTS idx_blacklisted_tokens_expires_at ON blacklisted_tokens(expires_at)",
		"CREATE INDEX IF NOT EXISTS idx_customers_name_lower ON customers(LOWER(name))",
		"CREATE INDEX IF NOT EXISTS idx_transactions_created_at ON transactions(created_at)",
		"CREATE INDEX IF NOT EXISTS idx_transactions_type_created_at ON transactions(type, created_at)",
		"CREATE INDEX IF NOT EXISTS idx_transactions_payment_method ON transactions(payment_method)",
		"CREATE INDEX IF NOT EXISTS idx_transactions_customer_id ON transactions(customer_id)",
		"CREATE INDEX IF NOT EXISTS idx_transactions_store_name ON transactions(store_name)",
	}

	for _, query := range queries {
		if err := db.DB.Exec(query).Error; err != nil {
			slog.Warn("Failed to create index", "query", query, "error", err)
		}
	}

	return nil
}

// SeedAdmin creates the first admin if no admin with that email exists
func (db *DB) SeedAdmin(name, email, passwordHash string) (*models.Admin, error) {
	var existing models.Admin
	if err := db.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		return &existing, nil
	}

	admin := &models.Admin{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
	}

	if err := db.DB.Create(admin).Error; err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}

	return admin, nil
}

// Initialize creates and configures the database connection
func Initialize(cfg *config.Config) (*DB, error) {
	level := logger.Warn
	if cfg.IsDevelopment() {
		level = logger.Info
	}

	db, err := New(&cfg.Database, level)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	// SQL migrations first; AutoMigrate only when the runner is off or fails
	ran, err := RunMigrationsIfEnabled(sqlDB, cfg.Migration)
	if err != nil {
		slog.Warn("Migration runner failed, falling back to GORM AutoMigrate", "error", err)
	}
	if !ran || err != nil {
		if err := db.AutoMigrate(); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	if err := db.CreateIndexes(); err != nil {
		slog.Warn("Failed to create some indexes", "error", err)
	}

	slog.Info("Database initialized successfully")

	return db, nil
}
