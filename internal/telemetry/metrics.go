// Package telemetry holds logging setup and the Prometheus collectors used
// across the service. Collectors register against the default registry and
// are served by the /metrics route when METRICS_ENABLED is true.
//
// HTTP metrics are labelled with the gin route template (c.FullPath), never
// the raw URL, so project ids do not inflate label cardinality.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests processed, by method, route template, and status code.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of HTTP request latencies, by method and route template.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)
)

// SessionVerificationsTotal counts session cookie checks by outcome
// (ok, missing, expired, revoked, disabled, invalid, timeout, error).
// The reason never reaches the client; this is where it is visible.
var SessionVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "session_verifications_total",
		Help: "Total number of session cookie verifications, by result.",
	},
	[]string{"result"},
)

// IdentityCacheLookupsTotal counts identity cache lookups (hit, miss, error).
var IdentityCacheLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "identity_cache_lookups_total",
		Help: "Total number of identity cache lookups, by result.",
	},
	[]string{"result"},
)

// BriefUpsertsTotal counts brief saves by outcome kind (ok, bad_request,
// not_found, timeout, internal_error).
var BriefUpsertsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "brief_upserts_total",
		Help: "Total number of project brief upserts, by result.",
	},
	[]string{"result"},
)

// RateLimitedTotal counts requests rejected by the per-user write limiter.
var RateLimitedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "rate_limited_requests_total",
		Help: "Total number of requests rejected by the per-user rate limiter.",
	},
)
