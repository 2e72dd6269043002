package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the MRZ module.
// All methods are safe on a nil *Metrics.
type Metrics struct {
	// Parsed documents by format and outcome
	DocumentsParsed *prometheus.CounterVec

	// Date fields by field name and validity
	DateFields *prometheus.CounterVec

	// Check digit mismatches by field
	CheckFailures *prometheus.CounterVec

	// Input rejected before parsing, by reason
	Rejected *prometheus.CounterVec

	// Parse latency including persistence
	ParseLatency prometheus.Histogram

	// Store latency by backend and operation
	StoreLatency *prometheus.HistogramVec
}

// New creates the MRZ metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		DocumentsParsed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mrz_documents_parsed_total",
			Help: "Total MRZ documents parsed by format and outcome",
		}, []string{"format", "outcome"}), // outcome: "valid", "invalid"

		DateFields: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mrz_date_fields_total",
			Help: "Total MRZ date fields parsed by field and validity",
		}, []string{"field", "valid"}),

		CheckFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mrz_check_digit_failures_total",
			Help: "Total check digit mismatches by field",
		}, []string{"field"}),

		Rejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mrz_rejected_total",
			Help: "Total MRZ inputs rejected before field parsing",
		}, []string{"reason"}),

		ParseLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "mrz_parse_duration_seconds",
			Help:    "Duration of MRZ parsing including persistence",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}),

		StoreLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mrz_store_duration_seconds",
			Help:    "Duration of MRZ store operations by backend and operation",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.5, 1},
		}, []string{"backend", "operation"}),
	}
}

// IncrementParsed records a parsed document.
func (m *Metrics) IncrementParsed(format string, valid bool) {
	if m != nil {
		outcome := "invalid"
		if valid {
			outcome = "valid"
		}
		m.DocumentsParsed.WithLabelValues(format, outcome).Inc()
	}
}

// IncrementDateField records a parsed date field.
func (m *Metrics) IncrementDateField(field string, valid bool) {
	if m != nil {
		v := "false"
		if valid {
			v = "true"
		}
		m.DateFields.WithLabelValues(field, v).Inc()
	}
}

// IncrementCheckFailure records a check digit mismatch.
func (m *Metrics) IncrementCheckFailure(field string) {
	if m != nil {
		m.CheckFailures.WithLabelValues(field).Inc()
	}
}

// IncrementRejected records input rejected before parsing.
func (m *Metrics) IncrementRejected(reason string) {
	if m != nil {
		m.Rejected.WithLabelValues(reason).Inc()
	}
}

// ObserveParseLatency records the duration of one parse.
func (m *Metrics) ObserveParseLatency(d time.Duration) {
	if m != nil {
		m.ParseLatency.Observe(d.Seconds())
	}
}

// ObserveStoreLatency records the duration of a store operation.
func (m *Metrics) ObserveStoreLatency(backend, operation string, d time.Duration) {
	if m != nil {
		m.StoreLatency.WithLabelValues(backend, operation).Observe(d.Seconds())
	}
}
