package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Romanization metrics.
var (
	RomanizationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "romanize_romanizations_total",
		Help: "Romanizations by language and result",
	}, []string{"language", "result"})

	RomanizationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "romanize_duration_seconds",
		Help:    "Time spent tokenizing and rewriting one input",
		Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
	}, []string{"language"})

	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "romanize_cache_lookups_total",
		Help: "Romanization cache lookups by result",
	}, []string{"result"})

	BatchSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "romanize_batch_size",
		Help:    "Number of texts per batch request",
		Buckets: []float64{1, 2, 5, 10, 25, 50, 100},
	})
)

// Web server metrics.
var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "romanize_http_requests_total",
		Help: "Total HTTP requests by route, method, and status code",
	}, []string{"route", "method", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "romanize_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}, []string{"route", "method"})

	RateLimitHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "romanize_rate_limit_hits_total",
		Help: "Total rate limit rejections",
	})
)

// Worker metrics.
var (
	PruneCycleDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "romanize_worker_prune_duration_seconds",
		Help:    "Duration of each cache prune cycle",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
	})

	PrunedRows = promauto.NewCounter(prometheus.CounterOpts{
		Name: "romanize_worker_pruned_rows_total",
		Help: "Cache rows deleted by the worker",
	})

	CachedRows = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "romanize_cache_rows",
		Help: "Rows in the romanization cache after the last prune",
	})
)

// Database pool metrics (gauges updated periodically).
var (
	DBPoolTotalConns = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "romanize_db_pool_total_conns",
		Help: "Total number of connections in the pool",
	})

	DBPoolIdleConns = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "romanize_db_pool_idle_conns",
		Help: "Number of idle connections in the pool",
	})

	DBPoolAcquiredConns = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "romanize_db_pool_acquired_conns",
		Help: "Number of acquired connections in the pool",
	})

	DBPoolMaxConns = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "romanize_db_pool_max_conns",
		Help: "Max connections configured for the pool",
	})
)
