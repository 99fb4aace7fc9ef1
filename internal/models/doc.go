// Shoprec - E-commerce Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

/*
Package models defines the HTTP API data structures for shoprec.

Key Components:

  - APIResponse: standard response envelope ({success, data, error, meta})
  - APIError: machine-readable error code, message, and details
  - RecommendedProduct: a scored product annotated with catalog metadata
  - SimilarUser: a neighbor user with display name and similarity
  - StatsResponse: dataset, snapshot, and catalog statistics

Error Codes:

  - VALIDATION_ERROR: invalid query or path parameters (400)
  - INVALID_REQUEST: parameters the engine rejects, such as n beyond the cap (400)
  - NOT_FOUND: unknown user or product (404)
  - DECOMPOSITION_FAILED: the requested SVD rank cannot be computed (422)
  - RATE_LIMIT_EXCEEDED: too many requests from one client (429)
  - DATASET_UNAVAILABLE: no snapshot is loaded (503)
  - RELOAD_UNAVAILABLE: no reload service is attached (503)
  - REQUEST_TIMEOUT: the request deadline passed (504)
  - INTERNAL_ERROR: anything else (500)
*/
package models
