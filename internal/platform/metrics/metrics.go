package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by route and status code",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Transiciones confirmadas (post-commit) de solicitudes de adopción.
	ApplicationStatusTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "application_status_transitions_total",
			Help: "Committed adoption application status transitions",
		},
		[]string{"from", "to"},
	)

	// Updates condicionales sobre listing_status que no afectaron filas.
	ListingConflicts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "animal_listing_conflicts_total",
			Help: "Conditional listing status updates rejected because the stored status changed",
		},
		[]string{"operation"},
	)

	RateLimitedRequests = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "http_rate_limited_total",
			Help: "Requests rejected by the applicant rate limiter",
		},
	)

	CacheInvalidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_invalidations_total",
			Help: "Cache tag invalidations issued after mutations",
		},
		[]string{"tag"},
	)
)
