package repositories

import (
	"time"

	"gold-ledger/internal/models"

	"github.com/google/uuid"
)

// AdminRepositoryInterface defines the contract for admin repository operations
type AdminRepositoryInterface interface {
	Create(admin *models.Admin) error
	GetByID(id uuid.UUID) (*models.Admin, error)
	GetByEmail(email string) (*models.Admin, error)
}

// CustomerRepositoryInterface defines the contract for customer repository operations
type CustomerRepositoryInterface interface {
	Create(customer *models.Customer) error
	GetByID(id uint) (*models.Customer, error)
	List(offset, limit int) ([]models.Customer, int64, error)
}

// StoreRepositoryInterface defines the contract for store repository operations
type StoreRepositoryInterface interface {
	Create(store *models.Store) error
	GetByName(name string) (*models.Store, error)
	List(offset, limit int) ([]models.Store, int64, error)
}

// TransactionRepositoryInterface defines the contract for transaction repository operations
type TransactionRepositoryInterface interface {
	// CreateWithSettlement inserts the transaction and moves the customer and store
	// balances it affects in one database transaction
	CreateWithSettlement(transaction *models.Transaction) error
	// FindByClauses returns one page of transactions matching every clause, newest first,
	// with the total number of matches
	FindByClauses(clauses []models.FilterClause, offset, limit int) ([]models.Transaction, int64, error)
	// GetWindowTotals sums gold and money movements of transactions created at or after since
	GetWindowTotals(since time.Time) (*models.WindowReport, error)
}

// BlacklistedTokenRepositoryInterface defines the contract for blacklisted token repository operations
type BlacklistedTokenRepositoryInterface interface {
	Create(token *models.BlacklistedToken) error
	GetByJTI(jti string) (*models.BlacklistedToken, error)
	DeleteExpired() (int64, error)
}
