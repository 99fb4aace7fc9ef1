// Shoprec - E-commerce Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

/*
Package metrics provides Prometheus metrics for the recommendation service.

All collectors are registered with the default registry through promauto and
exposed by the API at /metrics in Prometheus text format:

	curl http://localhost:8080/metrics

# Available Metrics

Recommendation Metrics:
  - shoprec_recommendations_total: Requests by strategy and outcome (counter)
  - shoprec_recommendation_duration_seconds: Computation time (histogram)
  - shoprec_factorization_cache_total: Cache lookups by result (counter)
  - shoprec_factorization_duration_seconds: SVD time (histogram)

Snapshot Metrics:
  - shoprec_snapshot_users, shoprec_snapshot_products, shoprec_snapshot_interactions (gauges)
  - shoprec_snapshot_reloads_total: Reload attempts by outcome (counter)

API Metrics:
  - shoprec_api_requests_total: Requests by method, endpoint, status (counter)
  - shoprec_api_request_duration_seconds: Latency (histogram)

Circuit Breaker Metrics:
  - shoprec_circuit_breaker_state: 0=closed, 1=half-open, 2=open (gauge)
  - shoprec_circuit_breaker_requests_total: Results through the breaker (counter)

# Usage

	start := time.Now()
	recs, err := engine.Recommend(ctx, req)
	metrics.RecordRecommendation("latent", metrics.OutcomeSuccess, time.Since(start))
*/
package metrics
