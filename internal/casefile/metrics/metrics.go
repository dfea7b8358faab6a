package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the casefile engine.
type Metrics struct {
	// Full-case validation latency
	ValidateLatency prometheus.Histogram

	// Validation findings by severity ("error", "warning")
	ValidationFindings *prometheus.CounterVec

	// Import rows by section and outcome ("created", "updated", "duplicate", "error")
	ImportRows *prometheus.CounterVec

	// Rejected writes that would have duplicated an identifier
	IdentityConflicts *prometheus.CounterVec

	// Case-field inheritance runs
	InheritRuns prometheus.Counter
}

// New creates a new Metrics instance with all engine metrics registered.
func New() *Metrics {
	return &Metrics{
		ValidateLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "casefile_validate_duration_seconds",
			Help:    "Duration of full-case validation runs",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}),

		ValidationFindings: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "casefile_validation_findings_total",
			Help: "Total validation findings by severity",
		}, []string{"severity"}),

		ImportRows: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "casefile_import_rows_total",
			Help: "Total imported rows by section and outcome",
		}, []string{"section", "outcome"}),

		IdentityConflicts: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "casefile_identity_conflicts_total",
			Help: "Total rejected writes that collided with an existing identifier",
		}, []string{"collection"}),

		InheritRuns: promauto.NewCounter(prometheus.CounterOpts{
			Name: "casefile_inherit_runs_total",
			Help: "Total case-field inheritance copies",
		}),
	}
}

// ObserveValidateLatency records the duration of a full-case validation.
func (m *Metrics) ObserveValidateLatency(d time.Duration) {
	if m != nil {
		m.ValidateLatency.Observe(d.Seconds())
	}
}

// CountFindings records a validation run's error and warning counts.
func (m *Metrics) CountFindings(errors, warnings int) {
	if m != nil {
		m.ValidationFindings.WithLabelValues("error").Add(float64(errors))
		m.ValidationFindings.WithLabelValues("warning").Add(float64(warnings))
	}
}

// CountImportRow records one imported row's outcome.
func (m *Metrics) CountImportRow(section, outcome string) {
	if m != nil {
		m.ImportRows.WithLabelValues(section, outcome).Inc()
	}
}

// IncrementIdentityConflict records a rejected duplicate-id write.
func (m *Metrics) IncrementIdentityConflict(collection string) {
	if m != nil {
		m.IdentityConflicts.WithLabelValues(collection).Inc()
	}
}

// IncrementInheritRuns records an inheritance copy.
func (m *Metrics) IncrementInheritRuns() {
	if m != nil {
		m.InheritRuns.Inc()
	}
}
