package dashboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"gold-ledger/internal/models"
)

// gatedSource answers each window only when the test releases it, so arrival order is controlled
type gatedSource struct {
	mu      sync.Mutex
	gates   map[int]chan struct{}
	started chan int
	fail    map[int]error
}

func newGatedSource() *gatedSource {
	gates := map[int]chan struct{}{}
	for _, w := range Windows {
		gates[w.Days] = make(chan struct{})
	}
	return &gatedSource{gates: gates, started: make(chan int, len(Windows)), fail: map[int]error{}}
}

func (s *gatedSource) Aggregate(ctx context.Context, windowDays int) (*models.WindowReport, error) {
	s.mu.Lock()
	gate := s.gates[windowDays]
	err := s.fail[windowDays]
	s.mu.Unlock()

	s.started <- windowDays
	select {
	case <-gate:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if err != nil {
		return nil, err
	}
	return reportFor(windowDays), nil
}

func reportFor(days int) *models.WindowReport {
	d := decimal.NewFromInt(int64(days))
	return &models.WindowReport{
		GoldTaken:              d,
		GoldGiven:              d.Mul(decimal.NewFromInt(2)),
		TotalGoldTransaction:   d.Mul(decimal.NewFromInt(3)),
		AmountTaken:            d.Mul(decimal.NewFromInt(1000)),
		AmountGiven:            d.Mul(decimal.NewFromInt(2000)),
		TotalAmountTransaction: d.Mul(decimal.NewFromInt(3000)),
	}
}

type countingMetrics struct {
	mu     sync.Mutex
	counts map[string]int
}

func (m *countingMetrics) IncrementCounter(name string, labels map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[name+":"+labels["window"]+":"+labels["status"]]++
}

type AggregatorTestSuite struct {
	suite.Suite
	logger *slog.Logger
}

func TestAggregatorTestSuite(t *testing.T) {
	suite.Run(t, new(AggregatorTestSuite))
}

func (s *AggregatorTestSuite) SetupTest() {
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
}

// load runs LoadDashboard and releases the windows in the given order once all have started
func (s *AggregatorTestSuite) load(source *gatedSource, metrics Metrics, order []int) *Dashboard {
	agg := NewAggregator(source, s.logger, metrics)

	done := make(chan *Dashboard, 1)
	go func() { done <- agg.LoadDashboard(context.Background()) }()

	for range Windows {
		<-source.started
	}
	for _, days := range order {
		close(source.gates[days])
	}
	return <-done
}

func labels(series []models.WindowSample) []string {
	out := make([]string, len(series))
	for i, sample := range series {
		out[i] = sample.Label
	}
	return out
}

func (s *AggregatorTestSuite) TestLoadDashboard_OrderIndependentOfArrival() {
	orders := [][]int{
		{1, 7, 30}, {1, 30, 7}, {7, 1, 30},
		{7, 30, 1}, {30, 1, 7}, {30, 7, 1},
	}

	for _, order := range orders {
		s.Run(fmt.Sprint(order), func() {
			d := s.load(newGatedSource(), nil, order)

			s.Equal([]string{"Today", "Week", "Month"}, labels(d.GoldSeries))
			s.Equal([]string{"Today", "Week", "Month"}, labels(d.AmountSeries))
			s.False(d.Degraded())
		})
	}
}

func (s *AggregatorTestSuite) TestLoadDashboard_SplitsGoldAndAmount() {
	d := s.load(newGatedSource(), nil, []int{30, 7, 1})

	week := d.GoldSeries[1]
	s.True(decimal.NewFromInt(7).Equal(week.Taken))
	s.True(decimal.NewFromInt(14).Equal(week.Given))
	s.True(decimal.NewFromInt(21).Equal(week.Total))

	month := d.AmountSeries[2]
	s.Equal("Month", month.Label)
	s.True(decimal.NewFromInt(30000).Equal(month.Taken))
	s.True(decimal.NewFromInt(60000).Equal(month.Given))
	s.True(decimal.NewFromInt(90000).Equal(month.Total))
}

func (s *AggregatorTestSuite) TestLoadDashboard_PartialFailureOmitsWindow() {
	source := newGatedSource()
	weekErr := errors.New("upstream timeout")
	source.fail[7] = weekErr
	metrics := &countingMetrics{counts: map[string]int{}}

	d := s.load(source, metrics, []int{7, 30, 1})

	s.Equal([]string{"Today", "Month"}, labels(d.GoldSeries))
	s.Equal([]string{"Today", "Month"}, labels(d.AmountSeries))
	s.True(d.Degraded())
	s.Len(d.Failures, 1)
	s.ErrorIs(d.Failures["Week"], weekErr)
	s.Equal(1, metrics.counts["dashboard.window:Week:error"])
	s.Equal(1, metrics.counts["dashboard.window:Today:success"])
}

func (s *AggregatorTestSuite) TestLoadDashboard_AllWindowsFail() {
	source := newGatedSource()
	for _, w := range Windows {
		source.fail[w.Days] = errors.New("down")
	}

	d := s.load(source, nil, []int{1, 7, 30})

	s.Empty(d.GoldSeries)
	s.Empty(d.AmountSeries)
	s.Len(d.Failures, 3)
}

func (s *AggregatorTestSuite) TestWindowFor() {
	w, ok := WindowFor(7)
	s.True(ok)
	s.Equal("Week", w.Label)

	_, ok = WindowFor(14)
	s.False(ok)
}
