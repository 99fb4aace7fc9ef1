// Shoprec - E-commerce Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package models

import (
	"time"
)

// Error codes returned in APIError.Code.
const (
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeInvalidRequest     = "INVALID_REQUEST"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeDecomposition      = "DECOMPOSITION_FAILED"
	ErrCodeRateLimited        = "RATE_LIMIT_EXCEEDED"
	ErrCodeDatasetUnavailable = "DATASET_UNAVAILABLE"
	ErrCodeReloadUnavailable  = "RELOAD_UNAVAILABLE"
	ErrCodeServiceNotReady    = "SERVICE_NOT_READY"
	ErrCodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	ErrCodeRouteNotFound      = "ROUTE_NOT_FOUND"
	ErrCodeRequestTimeout     = "REQUEST_TIMEOUT"
	ErrCodeInternal           = "INTERNAL_ERROR"
)

// APIResponse is the envelope used by every HTTP endpoint.
//
// Example successful response:
//
//	{
//	  "success": true,
//	  "data": {"items": [...]},
//	  "meta": {"timestamp": "2026-01-12T12:00:00Z", "request_id": "…", "query_time_ms": 3}
//	}
//
// Example error response:
//
//	{
//	  "success": false,
//	  "error": {"code": "NOT_FOUND", "message": "Unknown user"},
//	  "meta": {"timestamp": "2026-01-12T12:00:00Z"}
//	}
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    Metadata    `json:"meta"`
}

// Metadata contains response metadata for tracing and timing.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	RequestID   string    `json:"request_id,omitempty"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
}

// APIError represents an error response with structured error details.
//
// Example:
//
//	{
//	  "code": "VALIDATION_ERROR",
//	  "message": "n must be at most 20",
//	  "details": {"errors": [{"field": "n", "tag": "lte", "message": "..."}]}
//	}
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
