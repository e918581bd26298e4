package handlers

import (
	stderrors "errors"
	"net/http"

	"gold-ledger/internal/dto"
	"gold-ledger/internal/errors"
	"gold-ledger/internal/models"
	"gold-ledger/internal/repositories"
	"gold-ledger/internal/services"

	"github.com/labstack/echo/v4"
)

// StoreHandler serves stores and their inventory
type StoreHandler struct {
	storeService services.StoreServiceInterface
}

// NewStoreHandler creates a new store handler
func NewStoreHandler(storeService services.StoreServiceInterface) *StoreHandler {
	return &StoreHandler{storeService: storeService}
}

// ListStores returns one page of stores ordered by name
// @Summary List stores
// @Tags Stores
// @Produce json
// @Security BearerAuth
// @Param page query int false "Zero-based page" default(0)
// @Param size query int false "Page size (max 100)" default(10)
// @Success 200 {object} SuccessResponse{data=dto.StorePage} "One page of stores"
// @Failure 400 {object} errors.ErrorResponse "Bad page - VALIDATION_004"
// @Failure 500 {object} errors.ErrorResponse "System error - SYSTEM_001"
// @Router /stores/ [get]
func (h *StoreHandler) ListStores(c echo.Context) error {
	page, err := parsePageRequest(c)
	if err != nil {
		return SendError(c, errors.ValidationOutOfRange, errors.WithDetails(err.Error()))
	}

	result, err := h.storeService.List(page)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data: dto.StorePage{
			Stores: result.Items,
			Count:  result.TotalCount,
		},
	})
}

// CreateStore opens a store with its starting gold and cash
// @Summary Create store
// @Tags Stores
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStoreRequest true "Store"
// @Success 201 {object} SuccessResponse{data=models.Store} "Store created"
// @Failure 400 {object} errors.ErrorResponse "Validation error - VALIDATION_001"
// @Failure 409 {object} errors.ErrorResponse "Store name taken - STORE_002"
// @Failure 500 {object} errors.ErrorResponse "System error - SYSTEM_001"
// @Router /stores [post]
func (h *StoreHandler) CreateStore(c echo.Context) error {
	var req dto.CreateStoreRequest

	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	store, err := h.storeService.Create(&req)
	if err != nil {
		switch {
		case stderrors.Is(err, repositories.ErrStoreAlreadyExists):
			return SendError(c, errors.StoreAlreadyExists)
		case stderrors.Is(err, services.ErrInvalidStoreBalance), stderrors.Is(err, models.ErrNegativeBalance):
			return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusCreated, SuccessResponse{
		Data:    store,
		Message: "Store created successfully",
	})
}
