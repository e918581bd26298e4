package handlers

import (
	stderrors "errors"
	"net/http"
	"strconv"

	"gold-ledger/internal/errors"
	"gold-ledger/internal/services"

	"github.com/labstack/echo/v4"
)

// DashboardHandler serves the Today/Week/Month aggregates
type DashboardHandler struct {
	dashboardService services.DashboardServiceInterface
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService services.DashboardServiceInterface) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetWindow returns the gold and money movement over the last duration days
// @Summary Dashboard window
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Param duration query int true "Lookback in days: 1, 7 or 30"
// @Success 200 {object} SuccessResponse{data=models.WindowReport} "Window totals"
// @Failure 400 {object} errors.ErrorResponse "Unsupported window - DASHBOARD_001"
// @Failure 500 {object} errors.ErrorResponse "System error - SYSTEM_001"
// @Router /dashboard/ [get]
func (h *DashboardHandler) GetWindow(c echo.Context) error {
	duration, err := strconv.Atoi(c.QueryParam("duration"))
	if err != nil {
		return SendError(c, errors.DashboardInvalidWindow, errors.WithDetails("duration must be 1, 7 or 30"))
	}

	report, err := h.dashboardService.Report(duration)
	if err != nil {
		if stderrors.Is(err, services.ErrInvalidWindow) {
			return SendError(c, errors.DashboardInvalidWindow, errors.WithDetails(err.Error()))
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Data: report})
}
