// Package metrics provides Prometheus metrics for the period engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "periods"
)

// HTTP metrics
var (
	// HTTPRequestsTotal counts HTTP requests by method, path, and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration tracks HTTP request latency.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"method", "path"},
	)

	// HTTPRequestsInFlight tracks concurrent HTTP requests.
	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being processed",
		},
	)
)

// Engine metrics
var (
	// DomainsBuiltTotal counts constructed domains by mode (plain, comparison).
	DomainsBuiltTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "domains_built_total",
			Help:      "Total filter domains constructed",
		},
		[]string{"mode"},
	)

	// RangesPerDomain tracks how many ranges a selection fans out to.
	RangesPerDomain = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "ranges_per_domain",
			Help:      "Number of ranges unioned into one domain",
			Buckets:   []float64{0, 1, 2, 4, 8, 16, 32, 64},
		},
	)

	// EngineErrorsTotal counts failed engine operations by operation.
	EngineErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "errors_total",
			Help:      "Total failed engine operations",
		},
		[]string{"operation"},
	)
)

// Store metrics
var (
	// StoreQueriesTotal counts record store queries by operation.
	StoreQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "queries_total",
			Help:      "Total record store queries",
		},
		[]string{"operation"},
	)
)

// ObserveDomain records one constructed domain.
func ObserveDomain(comparison bool, ranges int) {
	mode := "plain"
	if comparison {
		mode = "comparison"
	}
	DomainsBuiltTotal.WithLabelValues(mode).Inc()
	RangesPerDomain.Observe(float64(ranges))
}
