package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds the Prometheus collectors for the dashboard. A nil *Registry
// is valid and records nothing.
type Registry struct {
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	DBQueriesTotal  *prometheus.CounterVec
	DBQueryDuration *prometheus.HistogramVec

	PipelineFailuresTotal *prometheus.CounterVec
}

// New registers every collector on reg.
func New(reg prometheus.Registerer) *Registry {
	f := promauto.With(reg)
	return &Registry{
		HTTPRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "busdekho_http_requests_total",
				Help: "Total HTTP requests processed by route, method, and status code",
			},
			[]string{"route", "method", "status_code"},
		),
		HTTPRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "busdekho_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"route", "method"},
		),
		HTTPRequestsInFlight: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "busdekho_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
		),
		DBQueriesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "busdekho_db_queries_total",
				Help: "Total bus_routes queries by query name and outcome",
			},
			[]string{"query", "status"},
		),
		DBQueryDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "busdekho_db_query_duration_seconds",
				Help:    "bus_routes query latency in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			},
			[]string{"query"},
		),
		PipelineFailuresTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "busdekho_pipeline_failures_total",
				Help: "Pipeline steps that failed and were replaced by an empty result",
			},
			[]string{"step"},
		),
	}
}

// ObserveQuery records one query execution started at start.
func (m *Registry) ObserveQuery(query string, start time.Time, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.DBQueriesTotal.WithLabelValues(query, status).Inc()
	m.DBQueryDuration.WithLabelValues(query).Observe(time.Since(start).Seconds())
}

// PipelineFailure counts a step that collapsed to an empty result.
func (m *Registry) PipelineFailure(step string) {
	if m == nil {
		return
	}
	m.PipelineFailuresTotal.WithLabelValues(step).Inc()
}
