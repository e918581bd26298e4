package database

import (
	"fmt"
	"testing"

	"gold-ledger/internal/config"
	"gold-ledger/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testTables = []string{
	"transactions",
	"customers",
	"stores",
	"blacklisted_tokens",
	"admins",
}

// SetupTestDB opens a private in-memory SQLite database with every table migrated
func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), gormConfig)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	// every pooled connection would get its own empty :memory: database
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	testDB := &DB{
		DB: db,
		config: &config.DatabaseConfig{
			MaxConnections: 1,
			MaxIdleConns:   1,
		},
	}

	if err := testDB.AutoMigrate(); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return testDB
}

func CreateTestCustomer(t *testing.T, db *DB, name string) *models.Customer {
	t.Helper()

	customer := &models.Customer{
		Name:  name,
		Phone: "9876543210",
	}

	if err := db.Create(customer).Error; err != nil {
		t.Fatalf("failed to create test customer: %v", err)
	}

	return customer
}

func CreateTestStore(t *testing.T, db *DB, name string, gold, cash int64) *models.Store {
	t.Helper()

	store := &models.Store{
		Name:        name,
		TotalGold:   decimal.NewFromInt(gold),
		TotalAmount: decimal.NewFromInt(cash),
	}

	if err := db.Create(store).Error; err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}

	return store
}

func CreateTestAdmin(t *testing.T, db *DB, email string) *models.Admin {
	t.Helper()

	admin := &models.Admin{
		Name:         "Test Admin",
		Email:        email,
		PasswordHash: "hashed_password",
	}

	if err := db.Create(admin).Error; err != nil {
		t.Fatalf("failed to create test admin: %v", err)
	}

	return admin
}

func CleanupTestDB(t *testing.T, db *DB) {
	t.Helper()

	for _, table := range testTables {
		if err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			t.Logf("failed to cleanup table %s: %v", table, err)
		}
	}
}
