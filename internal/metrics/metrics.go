package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "laundry_http_requests_total",
			Help: "Total HTTP requests by method, path and status code",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "laundry_http_request_duration_seconds",
			Help:    "HTTP request latency by method and path",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	EntriesSavedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "laundry_entries_saved_total",
			Help: "Total wash entries saved",
		},
	)

	ExportsBuiltTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "laundry_exports_built_total",
			Help: "Total export files produced by format",
		},
		[]string{"format"},
	)
)
