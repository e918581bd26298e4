package console

import (
	"context"
	"log/slog"
	"sync"

	"gold-ledger/internal/dashboard"
	apierrors "gold-ledger/internal/errors"
)

// DashboardView loads the three report windows and keeps the last result
type DashboardView struct {
	aggregator *dashboard.Aggregator
	session    Session
	nav        Navigator
	logger     *slog.Logger

	mu      sync.Mutex
	current *dashboard.Dashboard
}

func NewDashboardView(source dashboard.Source, session Session, nav Navigator, opts ...Option) *DashboardView {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}
	var metrics dashboard.Metrics
	if o.metrics != nil {
		metrics = o.metrics
	}
	return &DashboardView{
		aggregator: dashboard.NewAggregator(source, logger, metrics),
		session:    session,
		nav:        nav,
		logger:     logger,
	}
}

// Load fetches all windows. If any window was rejected as unauthorized the session ends
// and the view drops every dashboard it holds, including the windows that loaded.
// The partial result is still returned to the caller.
func (v *DashboardView) Load(ctx context.Context) *dashboard.Dashboard {
	d := v.aggregator.LoadDashboard(ctx)

	for _, window := range dashboard.Windows {
		if err, failed := d.Failures[window.Label]; failed && apierrors.IsUnauthorized(err) {
			v.logger.Warn("Session rejected, returning to login", "window", window.Label)
			v.mu.Lock()
			v.current = nil
			v.mu.Unlock()
			v.session.Clear()
			v.nav.ToLogin()
			return d
		}
	}

	v.mu.Lock()
	v.current = d
	v.mu.Unlock()
	return d
}

// Current returns the last loaded dashboard, or nil before the first load
func (v *DashboardView) Current() *dashboard.Dashboard {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current
}
