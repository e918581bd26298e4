package console

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "gold-ledger/internal/errors"
	"gold-ledger/internal/models"
)

type sourceFunc func(ctx context.Context, windowDays int) (*models.WindowReport, error)

func (f sourceFunc) Aggregate(ctx context.Context, windowDays int) (*models.WindowReport, error) {
	return f(ctx, windowDays)
}

func TestDashboardView_KeepsPartialResult(t *testing.T) {
	source := sourceFunc(func(ctx context.Context, days int) (*models.WindowReport, error) {
		if days == 7 {
			return nil, apierrors.NetworkFailure(errors.New("timeout"))
		}
		return &models.WindowReport{GoldTaken: decimal.NewFromInt(int64(days))}, nil
	})
	view := NewDashboardView(source, NewMemorySession(), NavigatorFunc(func() {}))

	d := view.Load(context.Background())

	require.Len(t, d.GoldSeries, 2)
	assert.Equal(t, "Today", d.GoldSeries[0].Label)
	assert.Equal(t, "Month", d.GoldSeries[1].Label)
	assert.Same(t, d, view.Current())
}

func TestDashboardView_UnauthorizedEndsSession(t *testing.T) {
	session := NewMemorySession()
	session.SignIn(models.AdminProfile{Email: "admin@example.com"})
	navigated := 0

	source := sourceFunc(func(ctx context.Context, days int) (*models.WindowReport, error) {
		return nil, apierrors.FailureFromResponse(http.StatusUnauthorized, nil)
	})
	view := NewDashboardView(source, session, NavigatorFunc(func() { navigated++ }))

	view.Load(context.Background())

	assert.Equal(t, 1, navigated)
	assert.Nil(t, view.Current())
	_, ok := session.Current()
	assert.False(t, ok)
}

func TestDashboardView_UnauthorizedWindowDropsEarlierDashboard(t *testing.T) {
	session := NewMemorySession()
	session.SignIn(models.AdminProfile{Email: "admin@example.com"})
	navigated := 0
	expired := false

	source := sourceFunc(func(ctx context.Context, days int) (*models.WindowReport, error) {
		if expired && days == 7 {
			return nil, apierrors.FailureFromResponse(http.StatusUnauthorized, nil)
		}
		return &models.WindowReport{GoldTaken: decimal.NewFromInt(int64(days))}, nil
	})
	view := NewDashboardView(source, session, NavigatorFunc(func() { navigated++ }))

	first := view.Load(context.Background())
	require.Same(t, first, view.Current())

	expired = true
	d := view.Load(context.Background())

	require.Len(t, d.GoldSeries, 2)
	assert.True(t, d.Degraded())
	assert.Nil(t, view.Current())
	assert.Equal(t, 1, navigated)
	_, ok := session.Current()
	assert.False(t, ok)
}
