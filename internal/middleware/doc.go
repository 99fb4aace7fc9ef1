// Shoprec - E-commerce Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

/*
Package middleware provides HTTP middleware components for the shoprec API.

Key Components:

  - RequestID: UUID request ids in the X-Request-ID header and logging context
  - RequestLogger: one structured zerolog line per request
  - PrometheusMetrics: request counts, latency, and in-flight gauge per route

Every middleware has the signature func(http.HandlerFunc) http.HandlerFunc.
The api package adapts them to chi with a small wrapper:

	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chiMiddleware(middleware.RequestLogger))
	r.Use(chiMiddleware(middleware.PrometheusMetrics))

RequestLogger reads the ids placed by RequestID, so RequestID must come
first. Metrics are labelled by chi route pattern (for example
/api/v1/users/{userID}/recommendations) rather than the raw path, keeping
label cardinality independent of user and product ids.
*/
package middleware
