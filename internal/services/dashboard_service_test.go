package services

import (
	"errors"
	"testing"
	"time"

	"gold-ledger/internal/models"
	"gold-ledger/internal/repositories/repository_mocks"
	"gold-ledger/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDashboardService(t *testing.T, now time.Time) (*DashboardService, *repository_mocks.MockTransactionRepositoryInterface, *service_mocks.MockMetricsRecorderInterface) {
	ctrl := gomock.NewController(t)
	repo := repository_mocks.NewMockTransactionRepositoryInterface(ctrl)
	metrics := service_mocks.NewMockMetricsRecorderInterface(ctrl)
	svc := NewDashboardService(repo, metrics).(*DashboardService)
	svc.now = func() time.Time { return now }
	return svc, repo, metrics
}

func TestDashboardService_ReportCountsBackFromNow(t *testing.T) {
	now := time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		days  int
		since time.Time
		label string
	}{
		{1, time.Date(2024, 3, 30, 12, 0, 0, 0, time.UTC), "Today"},
		{7, time.Date(2024, 3, 24, 12, 0, 0, 0, time.UTC), "Week"},
		{30, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), "Month"},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			svc, repo, metrics := newDashboardService(t, now)
			want := &models.WindowReport{GoldTaken: decimal.NewFromInt(3)}

			repo.EXPECT().GetWindowTotals(tt.since).Return(want, nil)
			metrics.EXPECT().IncrementCounter("dashboard.report", map[string]string{"window": tt.label, "status": "success"})

			got, err := svc.Report(tt.days)

			require.NoError(t, err)
			assert.Same(t, want, got)
		})
	}
}

func TestDashboardService_RejectsOtherWindows(t *testing.T) {
	svc, _, _ := newDashboardService(t, time.Now())

	for _, days := range []int{0, -1, 2, 31, 365} {
		_, err := svc.Report(days)
		assert.ErrorIs(t, err, ErrInvalidWindow, days)
	}
}

func TestDashboardService_RepositoryFailure(t *testing.T) {
	svc, repo, metrics := newDashboardService(t, time.Now())

	repo.EXPECT().GetWindowTotals(gomock.Any()).Return(nil, errors.New("db down"))
	metrics.EXPECT().IncrementCounter("dashboard.report", map[string]string{"window": "Week", "status": "error"})

	_, err := svc.Report(7)
	assert.Error(t, err)
}
