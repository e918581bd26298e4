package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"gold-ledger/internal/errors"
	"gold-ledger/internal/repositories"
	"gold-ledger/internal/services"

	"github.com/labstack/echo/v4"
)

const (
	maxGeneratedTransactions = 1000
	maxGeneratedDays         = 365
	// generatorSampleSize bounds how many customers and stores the generator draws from
	generatorSampleSize = 100
)

// DevHandler handles development-only endpoints.
// Routes are registered only when the server runs in the development environment.
type DevHandler struct {
	customerRepo    repositories.CustomerRepositoryInterface
	storeRepo       repositories.StoreRepositoryInterface
	transactionRepo repositories.TransactionRepositoryInterface
	generator       services.TransactionGeneratorInterface
	logger          *slog.Logger
}

// NewDevHandler creates a new development handler
func NewDevHandler(
	customerRepo repositories.CustomerRepositoryInterface,
	storeRepo repositories.StoreRepositoryInterface,
	transactionRepo repositories.TransactionRepositoryInterface,
	generator services.TransactionGeneratorInterface,
	logger *slog.Logger,
) *DevHandler {
	return &DevHandler{
		customerRepo:    customerRepo,
		storeRepo:       storeRepo,
		transactionRepo: transactionRepo,
		generator:       generator,
		logger:          logger,
	}
}

// GenerateTestData fills the ledger with settled demo transactions
//
// Method: POST /dev/generate-test-data
// Authentication: Required
// Environment: Development only
//
// Query parameters:
//   - count: Number of transactions to generate (default: 100, max: 1000)
//   - days: Number of days of history to generate (default: 30, max: 365)
//
// Transactions a store cannot cover (not enough gold or cash at that point in the
// replay) are skipped and counted.
func (h *DevHandler) GenerateTestData(c echo.Context) error {
	count, err := getIntParam(c, "count", 100)
	if err != nil || count < 1 || count > maxGeneratedTransactions {
		return SendError(c, errors.ValidationOutOfRange, errors.WithDetails("count must be between 1 and 1000"))
	}

	days, err := getIntParam(c, "days", 30)
	if err != nil || days < 1 || days > maxGeneratedDays {
		return SendError(c, errors.ValidationOutOfRange, errors.WithDetails("days must be between 1 and 365"))
	}

	customers, _, err := h.customerRepo.List(0, generatorSampleSize)
	if err != nil {
		return SendSystemError(c, err)
	}
	stores, _, err := h.storeRepo.List(0, generatorSampleSize)
	if err != nil {
		return SendSystemError(c, err)
	}
	if len(customers) == 0 || len(stores) == 0 {
		return SendError(c, errors.TransactionValidationFailed, errors.WithDetails("Create at least one customer and one store first"))
	}

	customerIDs := make([]uint, 0, len(customers))
	for _, customer := range customers {
		customerIDs = append(customerIDs, customer.ID)
	}
	storeNames := make([]string, 0, len(stores))
	for _, store := range stores {
		storeNames = append(storeNames, store.Name)
	}

	endDate := time.Now().UTC()
	startDate := endDate.AddDate(0, 0, -days)

	created, skipped := 0, 0
	for _, txn := range h.generator.GenerateHistoricalTransactions(customerIDs, storeNames, startDate, endDate, count) {
		if err := h.transactionRepo.CreateWithSettlement(txn); err != nil {
			skipped++
			continue
		}
		created++
	}

	h.logger.Info("Demo transactions generated", "created", created, "skipped", skipped, "days", days)

	return c.JSON(http.StatusOK, SuccessResponse{
		Message: "test data generated successfully",
		Data: map[string]interface{}{
			"transactions_created": created,
			"transactions_skipped": skipped,
			"date_range": map[string]string{
				"start": startDate.Format(time.RFC3339),
				"end":   endDate.Format(time.RFC3339),
			},
		},
	})
}
