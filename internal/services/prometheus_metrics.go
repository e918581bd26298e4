package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusMetrics maps the dotted metric names used across the ledger onto prometheus collectors
type PrometheusMetrics struct {
	transactionQueries  *prometheus.CounterVec
	transactionDuration prometheus.Histogram
	transactionsCreated *prometheus.CounterVec
	dashboardReports    *prometheus.CounterVec
	tokensPurged        prometheus.Gauge
}

// NewPrometheusMetrics registers the ledger collectors with reg.
// Pass prometheus.DefaultRegisterer to expose them on /metrics.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	factory := promauto.With(reg)
	return &PrometheusMetrics{
		transactionQueries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_transaction_queries_total",
				Help: "Total number of filtered transaction queries",
			},
			[]string{"status"},
		),
		transactionDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "ledger_transaction_query_duration_seconds",
				Help:    "Filtered transaction query duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		transactionsCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_transactions_created_total",
				Help: "Total number of transactions recorded",
			},
			[]string{"type", "payment_method"},
		),
		dashboardReports: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_dashboard_reports_total",
				Help: "Dashboard window reports served, by outcome",
			},
			[]string{"window", "status"},
		),
		tokensPurged: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "ledger_blacklisted_tokens_purged",
				Help: "Expired blacklisted tokens removed by the last cleanup run",
			},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	status := tags["status"]

	switch name {
	case "transaction.query":
		m.transactionQueries.WithLabelValues(status).Inc()
	case "transaction.created":
		m.transactionsCreated.WithLabelValues(tags["type"], tags["payment_method"]).Inc()
	case "dashboard.report":
		m.dashboardReports.WithLabelValues(tags["window"], status).Inc()
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	switch name {
	case "transaction.query":
		m.transactionDuration.Observe(duration.Seconds())
	}
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	switch name {
	case "token.blacklist.purged":
		m.tokensPurged.Set(value)
	}
}
