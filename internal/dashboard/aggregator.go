// Package dashboard loads the Today, Week and Month report windows in parallel
// and shapes them into the gold and amount chart series.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"gold-ledger/internal/models"
)

// Window is one lookback period of the dashboard
type Window struct {
	Label string
	Days  int
}

// Windows is the canonical window order. Series are always emitted in this order.
var Windows = [3]Window{
	{Label: "Today", Days: 1},
	{Label: "Week", Days: 7},
	{Label: "Month", Days: 30},
}

// Source aggregates transactions created within the last windowDays days
type Source interface {
	Aggregate(ctx context.Context, windowDays int) (*models.WindowReport, error)
}

// Metrics receives one observation per window fetch
type Metrics interface {
	IncrementCounter(name string, labels map[string]string)
}

// Dashboard is the result of one load. It is not modified after LoadDashboard returns.
type Dashboard struct {
	GoldSeries   []models.WindowSample
	AmountSeries []models.WindowSample
	// Failures holds the error of every window left out of the series, by label
	Failures map[string]error
}

// Degraded reports whether at least one window is missing
func (d *Dashboard) Degraded() bool {
	return len(d.Failures) > 0
}

type Aggregator struct {
	source  Source
	logger  *slog.Logger
	metrics Metrics
}

func NewAggregator(source Source, logger *slog.Logger, metrics Metrics) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{source: source, logger: logger, metrics: metrics}
}

type slot struct {
	report *models.WindowReport
	err    error
}

// LoadDashboard fetches every window concurrently. Each fetch writes only its own slot,
// so arrival order never affects series order. A failed window is logged and omitted.
func (a *Aggregator) LoadDashboard(ctx context.Context) *Dashboard {
	var slots [len(Windows)]slot

	// Window errors stay in their slot; the goroutines never fail the group.
	var g errgroup.Group
	for i, w := range Windows {
		g.Go(func() error {
			report, err := a.source.Aggregate(ctx, w.Days)
			if err == nil && report == nil {
				err = fmt.Errorf("empty report for %s", w.Label)
			}
			slots[i] = slot{report: report, err: err}
			return nil
		})
	}
	_ = g.Wait()

	d := &Dashboard{
		GoldSeries:   make([]models.WindowSample, 0, len(Windows)),
		AmountSeries: make([]models.WindowSample, 0, len(Windows)),
		Failures:     map[string]error{},
	}
	for i, s := range slots {
		label := Windows[i].Label
		if s.err != nil {
			a.logger.Error("Failed to load dashboard window", "window", label, "error", s.err)
			a.record(label, "error")
			d.Failures[label] = s.err
			continue
		}
		a.record(label, "success")
		d.GoldSeries = append(d.GoldSeries, s.report.GoldSample(label))
		d.AmountSeries = append(d.AmountSeries, s.report.AmountSample(label))
	}
	return d
}

func (a *Aggregator) record(label, status string) {
	if a.metrics == nil {
		return
	}
	a.metrics.IncrementCounter("dashboard.window", map[string]string{"window": label, "status": status})
}

// WindowFor returns the window with the given length
func WindowFor(days int) (Window, bool) {
	for _, w := range Windows {
		if w.Days == days {
			return w, true
		}
	}
	return Window{}, false
}
