package services

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gold-ledger/internal/dto"
	"gold-ledger/internal/models"
	"gold-ledger/internal/pagination"
	"gold-ledger/internal/query"
	"gold-ledger/internal/repositories"

	"github.com/shopspring/decimal"
)

// TransactionService records gold transactions and serves the filtered list
type TransactionService struct {
	transactionRepo repositories.TransactionRepositoryInterface
	metrics         MetricsRecorderInterface
	logger          *slog.Logger
	audit           *AuditLogger
}

// NewTransactionService creates a new transaction service
func NewTransactionService(
	transactionRepo repositories.TransactionRepositoryInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) TransactionServiceInterface {
	return &TransactionService{
		transactionRepo: transactionRepo,
		metrics:         metrics,
		logger:          logger,
		audit:           NewAuditLogger(logger),
	}
}

// Create records a transaction and settles it against the customer and the store
func (s *TransactionService) Create(req *dto.CreateTransactionRequest) (*models.Transaction, error) {
	weight, err := decimal.NewFromString(strings.TrimSpace(req.GoldWeight))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidGoldWeight, err)
	}
	price, err := decimal.NewFromString(strings.TrimSpace(req.GoldPrice))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidGoldPrice, err)
	}

	transaction := &models.Transaction{
		CustomerID:    req.CustomerID,
		StoreName:     strings.TrimSpace(req.StoreName),
		Type:          models.TransactionType(strings.ToLower(req.Type)),
		PaymentMethod: models.PaymentMethod(strings.ToLower(req.PaymentMethod)),
		GoldWeight:    weight,
		GoldPrice:     price,
		Description:   req.Description,
	}

	if err := s.transactionRepo.CreateWithSettlement(transaction); err != nil {
		s.logger.Warn("Transaction rejected",
			"customer_id", req.CustomerID,
			"store", transaction.StoreName,
			"type", transaction.Type,
			"error", err)
		s.audit.LogTransactionRejected(transaction, err)
		return nil, err
	}

	s.metrics.IncrementCounter("transaction.created", map[string]string{
		"type":           string(transaction.Type),
		"payment_method": string(transaction.PaymentMethod),
	})
	s.audit.LogTransactionSettled(transaction)

	return transaction, nil
}

// Filter returns one page of transactions matching every clause
func (s *TransactionService) Filter(clauses []models.FilterClause, page pagination.PageRequest) (*models.PageResult[models.Transaction], error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	if err := query.Validate(clauses); err != nil {
		s.metrics.IncrementCounter("transaction.query", map[string]string{"status": "invalid"})
		return nil, err
	}

	start := time.Now()
	transactions, total, err := s.transactionRepo.FindByClauses(clauses, page.Offset(), page.Size)
	s.metrics.RecordProcessingTime("transaction.query", time.Since(start))
	if err != nil {
		s.metrics.IncrementCounter("transaction.query", map[string]string{"status": "error"})
		return nil, fmt.Errorf("failed to filter transactions: %w", err)
	}

	s.metrics.IncrementCounter("transaction.query", map[string]string{"status": "success"})
	if transactions == nil {
		transactions = []models.Transaction{}
	}
	return &models.PageResult[models.Transaction]{Items: transactions, TotalCount: total}, nil
}
