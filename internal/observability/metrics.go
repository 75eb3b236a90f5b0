package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors of the sales API.
type Metrics struct {
	// Registry backs the /metrics endpoint.
	Registry *prometheus.Registry

	httpDuration  *prometheus.HistogramVec
	queryDuration *prometheus.HistogramVec
	queriesTotal  *prometheus.CounterVec
	cacheHits     *prometheus.CounterVec
	cacheMisses   *prometheus.CounterVec
}

// NewMetrics registers every collector on a private registry, so it can be
// called once per test without duplicate-registration panics.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		httpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "salesdash_http_request_duration_seconds",
				Help:    "Duration of HTTP requests by route and status.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
		queryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "salesdash_store_duration_seconds",
				Help:    "Duration of storage calls by operation.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		queriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "salesdash_sales_queries_total",
				Help: "Sales queries by outcome.",
			},
			[]string{"outcome"},
		),
		cacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "salesdash_cache_hits_total",
				Help: "Total cache hits.",
			},
			[]string{"cache"},
		),
		cacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "salesdash_cache_misses_total",
				Help: "Total cache misses.",
			},
			[]string{"cache"},
		),
	}
}

func (m *Metrics) RecordHTTP(method, route, status string, d time.Duration) {
	m.httpDuration.WithLabelValues(method, route, status).Observe(d.Seconds())
}

// RecordStoreCall records the latency of one storage operation.
func (m *Metrics) RecordStoreCall(operation string, d time.Duration) {
	m.queryDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// IncrQuery counts a sales query as "ok", "invalid" or "error".
func (m *Metrics) IncrQuery(outcome string) {
	m.queriesTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncrCacheHit(cache string) {
	m.cacheHits.WithLabelValues(cache).Inc()
}

func (m *Metrics) IncrCacheMiss(cache string) {
	m.cacheMisses.WithLabelValues(cache).Inc()
}
