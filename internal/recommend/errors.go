// Shoprec - E-commerce Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package recommend

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced by the recommendation core.
// Callers should match them with errors.Is.
var (
	// ErrDatasetUnavailable indicates there are no usable interactions.
	ErrDatasetUnavailable = errors.New("dataset unavailable")

	// ErrNoUsersSurvived indicates no user met the minimum activity threshold.
	ErrNoUsersSurvived = errors.New("no users survived activity threshold")

	// ErrInvalidUserIndex indicates a matrix row outside [0, rows).
	ErrInvalidUserIndex = errors.New("invalid user index")

	// ErrDecomposition indicates an invalid SVD rank for the matrix dimensions.
	ErrDecomposition = errors.New("decomposition error")

	// ErrUnknownUser indicates a user identifier with no row in the snapshot.
	ErrUnknownUser = errors.New("unknown user")

	// ErrInvalidRequest indicates out-of-range request parameters.
	ErrInvalidRequest = errors.New("invalid request")
)

// Error adds the failing operation and a detail message to a sentinel error.
type Error struct {
	Op     string
	Detail string
	Err    error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %v: %s", e.Op, e.Err, e.Detail)
}

// Unwrap returns the underlying sentinel.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError builds an *Error with a formatted detail message.
func NewError(op string, err error, format string, args ...any) error {
	return &Error{Op: op, Err: err, Detail: fmt.Sprintf(format, args...)}
}
