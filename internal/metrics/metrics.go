// Shoprec - E-commerce Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values shared by recommendation and reload metrics.
const (
	OutcomeSuccess = "success"
	OutcomeEmpty   = "empty"
	OutcomeError   = "error"
)

var (
	// Recommendation Metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shoprec_recommendations_total",
			Help: "Total number of recommendation requests by strategy and outcome",
		},
		[]string{"strategy", "outcome"}, // outcome: "success", "empty", "error"
	)

	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shoprec_recommendation_duration_seconds",
			Help:    "Recommendation computation time in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"strategy"},
	)

	// Factorization Metrics
	FactorizationCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shoprec_factorization_cache_total",
			Help: "Factorization cache lookups by result",
		},
		[]string{"result"}, // "hit", "miss"
	)

	FactorizationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "shoprec_factorization_duration_seconds",
			Help:    "Truncated SVD computation time in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 15, 30, 60, 120},
		},
	)

	FactorizationErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "shoprec_factorization_errors_total",
			Help: "Total number of failed factorizations",
		},
	)

	// Snapshot Metrics
	SnapshotUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "shoprec_snapshot_users",
			Help: "Number of users (matrix rows) in the active snapshot",
		},
	)

	SnapshotProducts = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "shoprec_snapshot_products",
			Help: "Number of products (matrix columns) in the active snapshot",
		},
	)

	SnapshotInteractions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "shoprec_snapshot_interactions",
			Help: "Number of retained interactions in the active snapshot",
		},
	)

	SnapshotLastSwap = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "shoprec_snapshot_last_swap_timestamp",
			Help: "Unix timestamp of the last snapshot swap",
		},
	)

	SnapshotReloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shoprec_snapshot_reloads_total",
			Help: "Total number of snapshot reload attempts by outcome",
		},
		[]string{"outcome"},
	)

	SnapshotReloadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "shoprec_snapshot_reload_duration_seconds",
			Help:    "Time to load source data and build a snapshot",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 300},
		},
	)

	// Ingestion Metrics
	IngestRows = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shoprec_ingest_rows_total",
			Help: "Total number of rows read from source files",
		},
		[]string{"source"}, // "ratings", "products", "users"
	)

	IngestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shoprec_ingest_duration_seconds",
			Help:    "Duration of source file reads in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shoprec_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shoprec_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "shoprec_api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shoprec_api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "shoprec_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shoprec_circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "shoprec_circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shoprec_circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordRecommendation records one recommendation request.
func RecordRecommendation(strategy, outcome string, duration time.Duration) {
	RecommendationsTotal.WithLabelValues(strategy, outcome).Inc()
	RecommendationDuration.WithLabelValues(strategy).Observe(duration.Seconds())
}

// RecordFactorizationCache records a factorization cache lookup.
func RecordFactorizationCache(hit bool) {
	if hit {
		FactorizationCacheTotal.WithLabelValues("hit").Inc()
		return
	}
	FactorizationCacheTotal.WithLabelValues("miss").Inc()
}

// RecordFactorization records a factorization computation.
func RecordFactorization(duration time.Duration, err error) {
	FactorizationDuration.Observe(duration.Seconds())
	if err != nil {
		FactorizationErrors.Inc()
	}
}

// SetSnapshot updates the active snapshot gauges.
func SetSnapshot(users, products, interactions int) {
	SnapshotUsers.Set(float64(users))
	SnapshotProducts.Set(float64(products))
	SnapshotInteractions.Set(float64(interactions))
	SnapshotLastSwap.Set(float64(time.Now().Unix()))
}

// RecordSnapshotReload records a reload attempt.
func RecordSnapshotReload(duration time.Duration, err error) {
	SnapshotReloadDuration.Observe(duration.Seconds())
	if err != nil {
		SnapshotReloadsTotal.WithLabelValues(OutcomeError).Inc()
		return
	}
	SnapshotReloadsTotal.WithLabelValues(OutcomeSuccess).Inc()
}

// RecordIngest records a source file read.
func RecordIngest(source string, rows int, duration time.Duration) {
	IngestRows.WithLabelValues(source).Add(float64(rows))
	IngestDuration.WithLabelValues(source).Observe(duration.Seconds())
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
