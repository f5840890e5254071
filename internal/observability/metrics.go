// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Pipeline metrics
	WageRecordsRead    prometheus.Counter
	RecordsTagged      prometheus.Counter
	AggregatesComputed prometheus.Counter
	PanelRowsWritten   prometheus.Counter
	RowsBelowThreshold prometheus.Counter
	QuartersProcessed  prometheus.Counter
	QuarterDuration    *prometheus.HistogramVec
	PipelineRunsTotal  *prometheus.CounterVec

	// Database metrics
	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "wage_panel"
	}

	return &Metrics{
		WageRecordsRead: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "wage_records_read_total",
			Help:      "Total number of wage records read from the store",
		}),
		RecordsTagged: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "records_tagged_total",
			Help:      "Total number of wage records tagged with continuity flags",
		}),
		AggregatesComputed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "aggregates_computed_total",
			Help:      "Total number of employer-quarter aggregates computed",
		}),
		PanelRowsWritten: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "panel_rows_written_total",
			Help:      "Total number of panel rows persisted",
		}),
		RowsBelowThreshold: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "rows_below_threshold_total",
			Help:      "Total number of employer-quarter rows dropped by the minimum headcount filter",
		}),
		QuartersProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "quarters_processed_total",
			Help:      "Total number of quarters tagged and aggregated",
		}),
		QuarterDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "quarter_duration_seconds",
			Help:      "Per-quarter processing duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"phase"}),
		PipelineRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "runs_total",
			Help:      "Total number of pipeline runs by status",
		}, []string{"status"}),

		DBQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "query_duration_seconds",
			Help:      "Database query duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"database", "operation"}),
		DBQueryErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "query_errors_total",
			Help:      "Total number of database query errors",
		}, []string{"database", "operation"}),
	}
}

// DefaultMetrics is the global metrics instance used by package helpers.
var DefaultMetrics = NewMetrics("")

// Handler returns the HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordDBQuery records database query metrics.
func RecordDBQuery(database, operation string, seconds float64, err error) {
	DefaultMetrics.DBQueryDuration.WithLabelValues(database, operation).Observe(seconds)
	if err != nil {
		DefaultMetrics.DBQueryErrors.WithLabelValues(database, operation).Inc()
	}
}

// RecordPipelineRun records a completed pipeline run.
func RecordPipelineRun(status string) {
	DefaultMetrics.PipelineRunsTotal.WithLabelValues(status).Inc()
}
