package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds process-level Prometheus metrics for the application.
type Metrics struct {
	CasesStarted    prometheus.Counter
	RequestDuration *prometheus.HistogramVec
}

// New creates and registers all process-level Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		CasesStarted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "casefile_cases_started_total",
			Help: "Total number of cases opened in this process",
		}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "casefile_http_request_duration_seconds",
			Help:    "HTTP request latency by method, path and status",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"method", "path", "status"}),
	}
}

// IncrementCasesStarted records a new case being opened.
func (m *Metrics) IncrementCasesStarted() {
	if m != nil {
		m.CasesStarted.Inc()
	}
}

// ObserveRequest records one HTTP request's latency.
func (m *Metrics) ObserveRequest(method, path, status string, d time.Duration) {
	if m != nil {
		m.RequestDuration.WithLabelValues(method, path, status).Observe(d.Seconds())
	}
}
