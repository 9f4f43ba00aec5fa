package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the geohash service.
type Metrics struct {
	RequestsTotal  *prometheus.CounterVec   // labels: transport, route, code
	ResolveDur     *prometheus.HistogramVec // labels: source, outcome
	CacheLookups   *prometheus.CounterVec   // labels: backend, result=hit|miss|error
	BreakerState   prometheus.Gauge         // 0=closed, 1=open, 2=half-open
	BreakerTrips   prometheus.Counter
	GeohashesTotal prometheus.Counter

	registry *prometheus.Registry
}

// NewMetrics creates the metrics and registers them on a dedicated registry,
// together with the Go runtime and process collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "geohash_requests_total",
			Help: "Requests handled, by transport, route and result code",
		}, []string{"transport", "route", "code"}),
		ResolveDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "geohash_resolve_duration_seconds",
			Help:    "Market value lookup latency",
			Buckets: []float64{0.001, 0.005, 0.025, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"source", "outcome"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "geohash_cache_lookups_total",
			Help: "Market value cache lookups by backend and result",
		}, []string{"backend", "result"}),
		BreakerState: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "geohash_upstream_circuit_breaker_state",
			Help: "Upstream circuit breaker state (0=closed, 1=open, 2=half-open)",
		}),
		BreakerTrips: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "geohash_upstream_circuit_breaker_trips_total",
			Help: "Times the upstream circuit breaker tripped open",
		}),
		GeohashesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "geohash_derived_total",
			Help: "Geohashes successfully derived",
		}),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.RequestsTotal,
		m.ResolveDur,
		m.CacheLookups,
		m.BreakerState,
		m.BreakerTrips,
		m.GeohashesTotal,
	)

	return m
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
