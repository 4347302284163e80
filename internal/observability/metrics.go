package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "knowledge_api"

// Retrieval outcome labels
const (
	StatusOK           = "ok"
	StatusEmpty        = "empty"
	StatusBackendError = "backend_error"
	StatusInvalid      = "invalid_request"
)

// Metrics holds the Prometheus collectors of the service.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	retrievalRequests *prometheus.CounterVec
	retrievalRecords  prometheus.Histogram
	backendLatency    *prometheus.HistogramVec
	authFailures      *prometheus.CounterVec
	httpRequests      *prometheus.CounterVec
	httpLatency       *prometheus.HistogramVec
}

// NewMetrics creates the collectors on a dedicated registry.
// Pass nil to get a fresh registry with the Go and process collectors.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	m := &Metrics{registry: registry}

	m.retrievalRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "retrieval_requests_total",
			Help:      "Total number of retrieval requests by outcome",
		},
		[]string{"status"},
	)

	m.retrievalRecords = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "retrieval_records",
			Help:      "Number of records returned per retrieval",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100},
		},
	)

	m.backendLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "backend_latency_seconds",
			Help:      "Knowledge base retrieve call latency in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"region"},
	)

	m.authFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "auth_failures_total",
			Help:      "Total number of rejected requests by authentication failure reason",
		},
		[]string{"reason"},
	)

	m.httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	m.httpLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	registry.MustRegister(
		m.retrievalRequests,
		m.retrievalRecords,
		m.backendLatency,
		m.authFailures,
		m.httpRequests,
		m.httpLatency,
	)

	return m
}

// Handler returns the HTTP handler exposing the registry
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordRetrieval records the outcome of one retrieval and how many records it returned
func (m *Metrics) RecordRetrieval(status string, records int) {
	if m == nil {
		return
	}
	m.retrievalRequests.WithLabelValues(status).Inc()
	if status == StatusOK || status == StatusEmpty {
		m.retrievalRecords.Observe(float64(records))
	}
}

// RecordBackendLatency records the duration of a knowledge base call
func (m *Metrics) RecordBackendLatency(region string, d time.Duration) {
	if m == nil {
		return
	}
	m.backendLatency.WithLabelValues(region).Observe(d.Seconds())
}

// RecordAuthFailure counts a rejected request
func (m *Metrics) RecordAuthFailure(reason string) {
	if m == nil {
		return
	}
	m.authFailures.WithLabelValues(reason).Inc()
}

// RecordHTTPRequest records one served HTTP request
func (m *Metrics) RecordHTTPRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpLatency.WithLabelValues(method, route).Observe(d.Seconds())
}
