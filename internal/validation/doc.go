// Shoprec - E-commerce Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is built on first use with
// WithRequiredStructEnabled, a tag name function, and the custom
// "identifier" rule. Errors are reported by the field's query parameter or
// koanf key so messages match what the caller actually sent.
//
// # Usage
//
//	type recommendationParams struct {
//	    UserID   string `query:"user_id" validate:"identifier"`
//	    Strategy string `query:"strategy" validate:"omitempty,oneof=neighborhood latent"`
//	    N        int    `query:"n" validate:"gte=0,lte=20"`
//	}
//
//	if verr := validation.ValidateStruct(&params); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
//	    return
//	}
//
// # Custom Rules
//
//   - identifier: non-empty, at most MaxIdentifierLength bytes, no whitespace
//     or control characters. Used for user and product ids in paths.
//
// # Thread Safety
//
// GetValidator and ValidateStruct are safe for concurrent use.
package validation
