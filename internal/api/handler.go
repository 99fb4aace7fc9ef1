// Shoprec - E-commerce Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package api

import (
	"context"
	"time"

	"github.com/tomtom215/shoprec/internal/catalog"
	"github.com/tomtom215/shoprec/internal/recommend/engine"
)

// RecommendationEngine is the part of *engine.Engine the handlers use.
type RecommendationEngine interface {
	Recommend(ctx context.Context, req engine.Request) (*engine.Response, error)
	SimilarUsers(ctx context.Context, userID string, limit int) ([]engine.SimilarUser, error)
	Statistics() (*engine.Statistics, error)
	Status() engine.Status
	Ready() bool
}

// Reloader queues a dataset reload. TriggerReload reports whether a new
// reload was queued; false means one is already pending.
type Reloader interface {
	TriggerReload() bool
}

// StateReporter reports a circuit breaker state.
type StateReporter interface {
	State() string
}

// HandlerDeps are the collaborators of Handler. Engine and Store are
// required; the rest may be nil.
type HandlerDeps struct {
	Engine   RecommendationEngine
	Store    *catalog.Store
	Reloader Reloader
	Breaker  StateReporter
	Version  string
}

// Handler serves the shoprec HTTP API.
type Handler struct {
	engine    RecommendationEngine
	store     *catalog.Store
	reloader  Reloader
	breaker   StateReporter
	version   string
	startTime time.Time
}

// NewHandler creates a handler. A nil Store is replaced by an empty one.
//
//nolint:gocritic // hugeParam: deps is a one-off constructor argument
func NewHandler(deps HandlerDeps) *Handler {
	store := deps.Store
	if store == nil {
		store = catalog.NewStore()
	}
	version := deps.Version
	if version == "" {
		version = "dev"
	}
	return &Handler{
		engine:    deps.Engine,
		store:     store,
		reloader:  deps.Reloader,
		breaker:   deps.Breaker,
		version:   version,
		startTime: time.Now(),
	}
}
