// Package metrics exposes the Prometheus collectors of the API server and
// the bulk importer.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reviewhub_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reviewhub_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "reviewhub_http_requests_in_flight",
			Help: "Number of HTTP requests being served",
		},
	)

	RateLimitHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reviewhub_rate_limit_hits_total",
			Help: "Requests rejected by the per-client rate limiter",
		},
	)

	RatingCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reviewhub_rating_cache_hits_total",
			Help: "Title rating lookups served from the cache",
		},
	)

	RatingCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reviewhub_rating_cache_misses_total",
			Help: "Title rating lookups computed from the database",
		},
	)

	ImportRowsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reviewhub_import_rows_total",
			Help: "Rows inserted by the bulk importer",
		},
		[]string{"file"},
	)

	ImportFileErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reviewhub_import_file_errors_total",
			Help: "Import files that failed to load",
		},
		[]string{"file"},
	)
)

// RecordHTTPRequest observes one finished request. An empty route (no
// matching handler) is recorded as "unmatched" to bound label cardinality.
func RecordHTTPRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func RecordRatingLookup(hit bool) {
	if hit {
		RatingCacheHits.Inc()
		return
	}
	RatingCacheMisses.Inc()
}

func RecordImport(file string, rows int, err error) {
	if err != nil {
		ImportFileErrors.WithLabelValues(file).Inc()
		return
	}
	ImportRowsTotal.WithLabelValues(file).Add(float64(rows))
}
