package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "climate_risk"

// Metrics holds the Prometheus counters, histograms, and gauges for the service.
type Metrics struct {
	SeriesGenerated prometheus.Counter
	PointsGenerated prometheus.Counter
	RiskDerivations prometheus.Counter

	// Report worker metrics.
	ReportsQueued         prometheus.Counter
	ReportsRejected       prometheus.Counter
	ReportsGenerated      prometheus.Counter
	ReportErrors          prometheus.Counter
	ReportPipelineRunning prometheus.Gauge
	ReportBatchSize       prometheus.Histogram
	ReportBatchDuration   prometheus.Histogram

	HTTPRequestDuration *prometheus.HistogramVec // labels: route, method, code
}

func newMetrics() *Metrics {
	return &Metrics{
		SeriesGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "series_generated_total",
			Help:      "Total synthetic series generated.",
		}),
		PointsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "points_generated_total",
			Help:      "Total daily data points generated across all series.",
		}),
		RiskDerivations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "risk_derivations_total",
			Help:      "Total ad-hoc risk scores derived from submitted signals.",
		}),
		ReportsQueued: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_queued_total",
			Help:      "Total report requests accepted onto the queue.",
		}),
		ReportsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_rejected_total",
			Help:      "Total report requests rejected because the queue was full.",
		}),
		ReportsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_generated_total",
			Help:      "Total reports built and delivered to the sink.",
		}),
		ReportErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "report_errors_total",
			Help:      "Total report build or delivery failures.",
		}),
		ReportPipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "report_pipeline_running",
			Help:      "1 when the report worker is active, 0 when shut down.",
		}),
		ReportBatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "report_batch_size",
			Help:      "Number of report requests drained per worker cycle.",
			Buckets:   []float64{1, 2, 5, 10, 20, 50},
		}),
		ReportBatchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "report_batch_duration_seconds",
			Help:      "Duration of a complete report build-and-deliver cycle.",
			Buckets:   []float64{0.1, 0.5, 1, 2, 2.5, 5, 10, 30},
		}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration by route template, method, and status code.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method", "code"}),
	}
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.SeriesGenerated,
		m.PointsGenerated,
		m.RiskDerivations,
		m.ReportsQueued,
		m.ReportsRejected,
		m.ReportsGenerated,
		m.ReportErrors,
		m.ReportPipelineRunning,
		m.ReportBatchSize,
		m.ReportBatchDuration,
		m.HTTPRequestDuration,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}
