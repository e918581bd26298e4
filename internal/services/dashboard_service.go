package services

import (
	"errors"
	"fmt"
	"time"

	"gold-ledger/internal/dashboard"
	"gold-ledger/internal/models"
	"gold-ledger/internal/repositories"
)

var ErrInvalidWindow = errors.New("dashboard window must be 1, 7 or 30 days")

// DashboardService sums transaction movements over a lookback window
type DashboardService struct {
	transactionRepo repositories.TransactionRepositoryInterface
	metrics         MetricsRecorderInterface
	now             func() time.Time
}

func NewDashboardService(transactionRepo repositories.TransactionRepositoryInterface, metrics MetricsRecorderInterface) DashboardServiceInterface {
	return &DashboardService{
		transactionRepo: transactionRepo,
		metrics:         metrics,
		now:             time.Now,
	}
}

// Report aggregates the last windowDays days, counting back from now
func (s *DashboardService) Report(windowDays int) (*models.WindowReport, error) {
	window, ok := dashboard.WindowFor(windowDays)
	if !ok {
		return nil, ErrInvalidWindow
	}

	since := s.now().UTC().AddDate(0, 0, -window.Days)
	report, err := s.transactionRepo.GetWindowTotals(since)
	if err != nil {
		s.metrics.IncrementCounter("dashboard.report", map[string]string{"window": window.Label, "status": "error"})
		return nil, fmt.Errorf("failed to aggregate %s window: %w", window.Label, err)
	}

	s.metrics.IncrementCounter("dashboard.report", map[string]string{"window": window.Label, "status": "success"})
	return report, nil
}
