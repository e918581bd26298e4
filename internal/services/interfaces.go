package services

import (
	"time"

	"gold-ledger/internal/dto"
	"gold-ledger/internal/models"
	"gold-ledger/internal/pagination"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AuthServiceInterface covers the admin session lifecycle
type AuthServiceInterface interface {
	Register(req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(req *dto.LoginRequest) (*dto.AuthResponse, error)
	Logout(accessToken string) error
	Profile(adminID uuid.UUID) (*models.AdminProfile, error)
}

type TokenServiceInterface interface {
	GenerateAccessToken(admin *models.Admin) (string, time.Time, error)
	ValidateAccessToken(tokenString string) (*models.CustomClaims, error)
	ExtractTokenFromHeader(authHeader string) (string, error)
	GetJTI(tokenString string) (string, error)
	GetTokenExpiry(tokenString string) (time.Time, error)
}

type PasswordServiceInterface interface {
	ValidatePassword(password string) error
	HashPassword(password string) (string, error)
	ComparePassword(password, hash string) bool
	GenerateSecurePassword() (string, error)
}

// TransactionServiceInterface records transactions and answers filtered list queries
type TransactionServiceInterface interface {
	Create(req *dto.CreateTransactionRequest) (*models.Transaction, error)
	Filter(clauses []models.FilterClause, page pagination.PageRequest) (*models.PageResult[models.Transaction], error)
}

type CustomerServiceInterface interface {
	Create(req *dto.CreateCustomerRequest) (*models.Customer, error)
	List(page pagination.PageRequest) (*models.PageResult[models.Customer], error)
}

type StoreServiceInterface interface {
	Create(req *dto.CreateStoreRequest) (*models.Store, error)
	List(page pagination.PageRequest) (*models.PageResult[models.Store], error)
}

// DashboardServiceInterface aggregates one lookback window
type DashboardServiceInterface interface {
	Report(windowDays int) (*models.WindowReport, error)
}

// TransactionGeneratorInterface produces demo ledger history for development databases
type TransactionGeneratorInterface interface {
	GenerateHistoricalTransactions(customerIDs []uint, storeNames []string, startDate, endDate time.Time, count int) []*models.Transaction
	GenerateTransactionType() models.TransactionType
	GeneratePaymentMethod() models.PaymentMethod
	GenerateGoldPrice() decimal.Decimal
	GenerateTimestamp(startDate, endDate time.Time) time.Time
}

type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}
