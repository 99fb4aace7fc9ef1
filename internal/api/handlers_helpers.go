// Shoprec - E-commerce Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/shoprec/internal/logging"
	"github.com/tomtom215/shoprec/internal/middleware"
	"github.com/tomtom215/shoprec/internal/models"
	"github.com/tomtom215/shoprec/internal/recommend"
	"github.com/tomtom215/shoprec/internal/validation"
)

// sanitizeLogValue removes control characters from strings to prevent log injection attacks.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&result, "\\x%02x", r)
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// respondJSON sends a JSON response with proper headers
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")

	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondSuccess wraps data in a success envelope.
func respondSuccess(w http.ResponseWriter, r *http.Request, status int, data interface{}, start time.Time) {
	respondJSON(w, status, &models.APIResponse{
		Success: true,
		Data:    data,
		Meta: models.Metadata{
			Timestamp:   time.Now().UTC(),
			RequestID:   middleware.GetRequestID(r.Context()),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

// respondError sends an error response. err is logged, never sent.
func respondError(w http.ResponseWriter, r *http.Request, status int, apiErr *models.APIError, err error) {
	if err != nil {
		logger := logging.Ctx(r.Context())
		event := logger.Debug()
		if status >= http.StatusInternalServerError {
			event = logger.Error()
		}
		event.Str("code", apiErr.Code).Str("error", sanitizeLogValue(err.Error())).Msg("API Error")
	}

	respondJSON(w, status, &models.APIResponse{
		Success: false,
		Error:   apiErr,
		Meta: models.Metadata{
			Timestamp: time.Now().UTC(),
			RequestID: middleware.GetRequestID(r.Context()),
		},
	})
}

// respondEngineError maps recommendation errors to HTTP responses.
func respondEngineError(w http.ResponseWriter, r *http.Request, err error) {
	status, code, message := classifyError(err)
	respondError(w, r, status, &models.APIError{Code: code, Message: message}, err)
}

// classifyError returns the status, code and client message for err.
// Client errors carry the engine's detail; server errors a generic message.
func classifyError(err error) (status int, code, message string) {
	switch {
	case errors.Is(err, recommend.ErrUnknownUser), errors.Is(err, recommend.ErrInvalidUserIndex):
		return http.StatusNotFound, models.ErrCodeNotFound, clientMessage(err, "Unknown user")
	case errors.Is(err, recommend.ErrDecomposition):
		return http.StatusUnprocessableEntity, models.ErrCodeDecomposition, clientMessage(err, "Invalid rank for the rating matrix")
	case errors.Is(err, recommend.ErrInvalidRequest):
		return http.StatusBadRequest, models.ErrCodeInvalidRequest, clientMessage(err, "Invalid request")
	case errors.Is(err, recommend.ErrDatasetUnavailable), errors.Is(err, recommend.ErrNoUsersSurvived):
		return http.StatusServiceUnavailable, models.ErrCodeDatasetUnavailable, "Recommendation data is not loaded"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, models.ErrCodeRequestTimeout, "Request timed out"
	default:
		return http.StatusInternalServerError, models.ErrCodeInternal, "Internal server error"
	}
}

// clientMessage returns the detail of a *recommend.Error, or fallback.
func clientMessage(err error, fallback string) string {
	var re *recommend.Error
	if errors.As(err, &re) && re.Detail != "" {
		return re.Detail
	}
	return fallback
}

// validateRequest validates a struct using go-playground/validator.
// Returns nil if validation passes, or a models.APIError if validation fails.
func validateRequest(v interface{}) *models.APIError {
	validationErr := validation.ValidateStruct(v)
	if validationErr == nil {
		return nil
	}

	apiErr := validationErr.ToAPIError()
	return &models.APIError{
		Code:    apiErr.Code,
		Message: apiErr.Message,
		Details: apiErr.Details,
	}
}

// paramError describes a query parameter that is not an integer.
func paramError(key, value string) *models.APIError {
	return &models.APIError{
		Code:    models.ErrCodeValidation,
		Message: fmt.Sprintf("%s must be an integer", key),
		Details: map[string]interface{}{
			"field": key,
			"tag":   "integer",
			"value": value,
		},
	}
}

// intParam parses an optional integer query parameter. Absent or empty
// values return def.
func intParam(r *http.Request, key string, def int) (int, *models.APIError) {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return def, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, paramError(key, value)
	}
	return n, nil
}

// optionalIntParam is intParam for parameters whose absence is meaningful.
func optionalIntParam(r *http.Request, key string) (*int, *models.APIError) {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil, paramError(key, value)
	}
	return &n, nil
}
