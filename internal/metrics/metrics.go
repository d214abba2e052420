package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the various metrics used for monitoring the application.
// It includes counters for form submissions and rejected fields,
// and histograms for database queries and HTTP requests.
type Metrics struct {
	Submissions      *prometheus.CounterVec
	ValidationErrors *prometheus.CounterVec
	DBQueryDuration  *prometheus.HistogramVec
	RequestDuration  *prometheus.HistogramVec
}

// NewMetrics creates a new Metrics instance with the provided Registerer.
//
// Parameters:
//   - reg: A prometheus.Registerer used to register the metrics.
//
// Returns:
//   - A pointer to the newly created Metrics instance.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	metrics := &Metrics{
		Submissions: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "hestia_submissions_total",
			Help: "Total employee form submissions by outcome.",
		}, []string{"result"}), // result: 'created', 'invalid', 'failed'
		ValidationErrors: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "hestia_validation_errors_total",
			Help: "Total rejected form fields by field and violation kind.",
		}, []string{"field", "kind"}),
		DBQueryDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hestia_db_query_duration_seconds",
			Help:    "Duration of database queries.",
			Buckets: prometheus.DefBuckets,
		}, []string{"query_type"}), // query_type: 'insert_employee', 'list_employees'
		RequestDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hestia_http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	metrics.Submissions.WithLabelValues("created")
	metrics.Submissions.WithLabelValues("invalid")
	metrics.Submissions.WithLabelValues("failed")

	return metrics
}

// ObserveQuery records the duration of a database query of the given type.
func (m *Metrics) ObserveQuery(queryType string, seconds float64) {
	if m == nil {
		return
	}
	m.DBQueryDuration.WithLabelValues(queryType).Observe(seconds)
}
