package handlers

import (
	stderrors "errors"
	"net/http"

	"gold-ledger/internal/dto"
	"gold-ledger/internal/errors"
	"gold-ledger/internal/models"
	"gold-ledger/internal/pagination"
	"gold-ledger/internal/query"
	"gold-ledger/internal/repositories"
	"gold-ledger/internal/services"

	"github.com/labstack/echo/v4"
)

// TransactionHandler serves the transaction ledger
type TransactionHandler struct {
	transactionService services.TransactionServiceInterface
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactionService services.TransactionServiceInterface) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// settlementErrors maps domain failures of a transaction write to client error codes
var settlementErrors = []struct {
	err  error
	code errors.ErrorCode
}{
	{repositories.ErrCustomerNotFound, errors.CustomerNotFound},
	{repositories.ErrStoreNotFound, errors.StoreNotFound},
	{models.ErrInsufficientGold, errors.StoreInsufficientGold},
	{models.ErrInsufficientCash, errors.StoreInsufficientCash},
	{models.ErrInvalidGoldWeight, errors.TransactionInvalidWeight},
	{models.ErrInvalidGoldPrice, errors.TransactionInvalidPrice},
	{models.ErrInvalidTransactionType, errors.TransactionInvalidType},
	{models.ErrInvalidPaymentMethod, errors.TransactionInvalidPayment},
}

// CreateTransaction records a buy or sell and settles it
// @Summary Create transaction
// @Description Record a gold buy or sell; customer balances and store inventory are updated atomically
// @Tags Transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateTransactionRequest true "Transaction"
// @Success 201 {object} SuccessResponse{data=models.Transaction} "Transaction recorded"
// @Failure 400 {object} errors.ErrorResponse "Validation error - VALIDATION_001 / TRANSACTION_00x"
// @Failure 404 {object} errors.ErrorResponse "Unknown customer or store - CUSTOMER_001 / STORE_001"
// @Failure 422 {object} errors.ErrorResponse "Store cannot cover the transaction - STORE_003 / STORE_004"
// @Failure 500 {object} errors.ErrorResponse "System error - SYSTEM_001"
// @Router /transactions/ [post]
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	var req dto.CreateTransactionRequest

	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	transaction, err := h.transactionService.Create(&req)
	if err != nil {
		for _, m := range settlementErrors {
			if stderrors.Is(err, m.err) {
				return SendError(c, m.code)
			}
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusCreated, SuccessResponse{
		Data:    transaction,
		Message: "Transaction recorded successfully",
	})
}

// FilterTransactions returns one page of transactions matching a clause list
// @Summary Filter transactions
// @Description Body is a JSON array of filter clauses (eq on type/payment_method, gte/lte on created_at, or on search). Results are newest first.
// @Tags Transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Zero-based page" default(0)
// @Param size query int false "Page size (max 100)" default(10)
// @Param request body []models.FilterClause true "Filter clauses"
// @Success 200 {object} SuccessResponse{data=dto.TransactionPage} "One page of transactions"
// @Failure 400 {object} errors.ErrorResponse "Invalid clause - VALIDATION_003; bad page - VALIDATION_004"
// @Failure 401 {object} errors.ErrorResponse "Not logged in - AUTH_002"
// @Failure 500 {object} errors.ErrorResponse "System error - SYSTEM_001"
// @Router /transactions/filter [post]
func (h *TransactionHandler) FilterTransactions(c echo.Context) error {
	page, err := parsePageRequest(c)
	if err != nil {
		return SendError(c, errors.ValidationOutOfRange, errors.WithDetails(err.Error()))
	}

	var clauses []models.FilterClause
	if c.Request().ContentLength != 0 {
		if err := c.Bind(&clauses); err != nil {
			return SendError(c, errors.ValidationInvalidFilter, errors.WithDetails("Body must be an array of filter clauses"))
		}
	}

	result, err := h.transactionService.Filter(clauses, page)
	if err != nil {
		var clauseErr *query.ClauseError
		switch {
		case stderrors.As(err, &clauseErr):
			return SendError(c, errors.ValidationInvalidFilter, errors.WithDetails(clauseErr.Error()))
		case stderrors.Is(err, query.ErrInvalidClause), stderrors.Is(err, repositories.ErrUnsupportedClause):
			return SendError(c, errors.ValidationInvalidFilter, errors.WithDetails(err.Error()))
		case stderrors.Is(err, pagination.ErrNegativePage), stderrors.Is(err, pagination.ErrInvalidPageSize),
			stderrors.Is(err, pagination.ErrPageOutOfRange):
			return SendError(c, errors.ValidationOutOfRange, errors.WithDetails(err.Error()))
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data: dto.TransactionPage{
			Transactions: result.Items,
			Count:        result.TotalCount,
		},
	})
}
