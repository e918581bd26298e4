package handlers

import (
	stderrors "errors"
	"net/http"

	"gold-ledger/internal/dto"
	"gold-ledger/internal/errors"
	"gold-ledger/internal/models"
	"gold-ledger/internal/services"

	"github.com/labstack/echo/v4"
)

// CustomerHandler serves the customer directory
type CustomerHandler struct {
	customerService services.CustomerServiceInterface
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService services.CustomerServiceInterface) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// ListCustomers returns one page of customers, newest first
// @Summary List customers
// @Tags Customers
// @Produce json
// @Security BearerAuth
// @Param page query int false "Zero-based page" default(0)
// @Param size query int false "Page size (max 100)" default(10)
// @Success 200 {object} SuccessResponse{data=dto.CustomerPage} "One page of customers"
// @Failure 400 {object} errors.ErrorResponse "Bad page - VALIDATION_004"
// @Failure 500 {object} errors.ErrorResponse "System error - SYSTEM_001"
// @Router /customers/ [get]
func (h *CustomerHandler) ListCustomers(c echo.Context) error {
	page, err := parsePageRequest(c)
	if err != nil {
		return SendError(c, errors.ValidationOutOfRange, errors.WithDetails(err.Error()))
	}

	result, err := h.customerService.List(page)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data: dto.CustomerPage{
			Customers: result.Items,
			Count:     result.TotalCount,
		},
	})
}

// CreateCustomer adds a customer
// @Summary Create customer
// @Tags Customers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCustomerRequest true "Customer"
// @Success 201 {object} SuccessResponse{data=models.Customer} "Customer created"
// @Failure 400 {object} errors.ErrorResponse "Validation error - VALIDATION_001 / VALIDATION_006"
// @Failure 500 {object} errors.ErrorResponse "System error - SYSTEM_001"
// @Router /customers/ [post]
func (h *CustomerHandler) CreateCustomer(c echo.Context) error {
	var req dto.CreateCustomerRequest

	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	customer, err := h.customerService.Create(&req)
	if err != nil {
		switch {
		case stderrors.Is(err, models.ErrInvalidPhone):
			return SendError(c, errors.ValidationInvalidPhone)
		case stderrors.Is(err, models.ErrCustomerNameRequired):
			return SendError(c, errors.ValidationRequiredField, errors.WithDetails("name is required"))
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusCreated, SuccessResponse{
		Data:    customer,
		Message: "Customer created successfully",
	})
}
