// Package metrics registers the service's Prometheus instrumentation.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles the collectors on a private registry so tests can
// build isolated instances instead of sharing process-global state.
type Metrics struct {
	Registry *prometheus.Registry

	httpRequests  *prometheus.CounterVec
	httpLatency   *prometheus.HistogramVec
	cacheHits     prometheus.Counter
	cacheMisses   prometheus.Counter
	diagnosticRun prometheus.Counter
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_http_requests_total",
			Help: "HTTP requests by route and status code.",
		}, []string{"route", "status"}),
		httpLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dashboard_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"route"}),
		cacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "dashboard_dataset_cache_hits_total",
			Help: "Dataset loads served from the memoized cache.",
		}),
		cacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "dashboard_dataset_cache_misses_total",
			Help: "Dataset loads that had to wait on a generation.",
		}),
		diagnosticRun: factory.NewCounter(prometheus.CounterOpts{
			Name: "dashboard_diagnostics_runs_total",
			Help: "Simulated diagnostics runs started.",
		}),
	}
}

// ObserveHTTPRequest records one completed request.
func (m *Metrics) ObserveHTTPRequest(route string, status int, duration time.Duration) {
	m.httpRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.httpLatency.WithLabelValues(route).Observe(duration.Seconds())
}

// CacheHit implements demodata.Observer.
func (m *Metrics) CacheHit() { m.cacheHits.Inc() }

// CacheMiss implements demodata.Observer.
func (m *Metrics) CacheMiss() { m.cacheMisses.Inc() }

// IncDiagnosticsRun counts a diagnostics run start.
func (m *Metrics) IncDiagnosticsRun() { m.diagnosticRun.Inc() }
