package console

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusMetrics records list and dashboard events of one console process
type PrometheusMetrics struct {
	listQueries    *prometheus.CounterVec
	staleResponses *prometheus.CounterVec
	windows        *prometheus.CounterVec
}

func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	factory := promauto.With(reg)
	return &PrometheusMetrics{
		listQueries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_console_list_queries_total",
				Help: "List queries answered, by list and outcome",
			},
			[]string{"list", "status"},
		),
		staleResponses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_console_stale_responses_total",
				Help: "List responses dropped because a newer request superseded them",
			},
			[]string{"list"},
		),
		windows: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_console_dashboard_windows_total",
				Help: "Dashboard window fetches, by window and outcome",
			},
			[]string{"window", "status"},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, labels map[string]string) {
	switch name {
	case "console.list_query":
		m.listQueries.WithLabelValues(labels["list"], labels["status"]).Inc()
	case "console.stale_response":
		m.staleResponses.WithLabelValues(labels["list"]).Inc()
	case "dashboard.window":
		m.windows.WithLabelValues(labels["window"], labels["status"]).Inc()
	}
}
