// Shoprec - E-commerce Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package engine

import (
	"context"
	"errors"
	"time"

	"github.com/tomtom215/shoprec/internal/metrics"
	"github.com/tomtom215/shoprec/internal/recommend"
	"github.com/tomtom215/shoprec/internal/recommend/algorithms"
)

// Request selects a strategy and its parameters.
type Request struct {
	// Strategy is one of algorithms.StrategyPopularity,
	// algorithms.StrategyNeighborhood, or algorithms.StrategyLatent.
	// Empty selects neighborhood.
	Strategy string `json:"strategy"`

	// UserID is required for the neighborhood and latent strategies.
	UserID string `json:"user_id,omitempty"`

	// N is the number of products to return. Zero selects the configured default.
	N int `json:"n"`

	// K is the SVD rank for the latent strategy. Zero selects the configured default.
	K int `json:"k,omitempty"`

	// MinInteractions overrides the popularity count threshold when set.
	MinInteractions *int `json:"min_interactions,omitempty"`
}

// Response is the result of Recommend.
type Response struct {
	Strategy string             `json:"strategy"`
	UserID   string             `json:"user_id,omitempty"`
	Items    []recommend.Scored `json:"items"`
	Metadata ResponseMetadata   `json:"metadata"`
}

// ResponseMetadata describes how a response was produced.
type ResponseMetadata struct {
	Fingerprint string    `json:"snapshot_fingerprint"`
	Rank        int       `json:"rank,omitempty"`
	CacheHit    bool      `json:"cache_hit"`
	LatencyMS   int64     `json:"latency_ms"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Recommend dispatches req to the selected strategy.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	e.requestCount.Add(1)

	req = e.prepareRequest(req)
	logger := e.logger.With().
		Str("strategy", req.Strategy).
		Str("user_id", req.UserID).
		Int("n", req.N).
		Logger()

	// Capture the snapshot fingerprint before the strategy runs.
	fingerprint := ""
	if snap := e.Snapshot(); snap != nil {
		fingerprint = snap.Fingerprint
	}

	resp := &Response{Strategy: req.Strategy, UserID: req.UserID}

	var err error
	switch req.Strategy {
	case algorithms.StrategyPopularity:
		minInteractions := e.config.MinInteractionsForRanking
		if req.MinInteractions != nil {
			minInteractions = *req.MinInteractions
		}
		resp.Items, err = e.TopProducts(req.N, minInteractions)
	case algorithms.StrategyNeighborhood:
		resp.Items, err = e.RecommendNeighborhood(ctx, req.UserID, req.N)
	case algorithms.StrategyLatent:
		resp.Metadata.Rank = req.K
		resp.Items, resp.Metadata.CacheHit, err = e.recommendLatent(ctx, req.UserID, req.N, req.K)
	default:
		err = recommend.NewError("recommend", recommend.ErrInvalidRequest, "unknown strategy %q", req.Strategy)
	}

	duration := time.Since(start)
	if err != nil {
		e.errorCount.Add(1)
		metrics.RecordRecommendation(metricStrategy(req.Strategy), metrics.OutcomeError, duration)
		if isClientError(err) {
			logger.Debug().Err(err).Msg("recommendation rejected")
		} else {
			logger.Error().Err(err).Msg("recommendation failed")
		}
		return nil, err
	}

	outcome := metrics.OutcomeSuccess
	if len(resp.Items) == 0 {
		outcome = metrics.OutcomeEmpty
	}
	metrics.RecordRecommendation(req.Strategy, outcome, duration)

	resp.Metadata.Fingerprint = fingerprint
	resp.Metadata.LatencyMS = duration.Milliseconds()
	resp.Metadata.GeneratedAt = time.Now().UTC()

	logger.Debug().
		Int("returned", len(resp.Items)).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("recommendation complete")

	return resp, nil
}

// prepareRequest applies defaults.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) prepareRequest(req Request) Request {
	if req.Strategy == "" {
		req.Strategy = algorithms.StrategyNeighborhood
	}
	if req.N == 0 {
		req.N = e.config.Limits.DefaultRecommendations
	}
	if req.Strategy == algorithms.StrategyLatent {
		req.K = e.resolveRank(req.K)
	}
	return req
}

// metricStrategy keeps the strategy label bounded for unknown values.
func metricStrategy(strategy string) string {
	switch strategy {
	case algorithms.StrategyPopularity, algorithms.StrategyNeighborhood, algorithms.StrategyLatent:
		return strategy
	default:
		return "unknown"
	}
}

// isClientError reports whether err was caused by the request rather than
// the engine.
func isClientError(err error) bool {
	return errors.Is(err, recommend.ErrInvalidRequest) ||
		errors.Is(err, recommend.ErrUnknownUser) ||
		errors.Is(err, recommend.ErrInvalidUserIndex) ||
		errors.Is(err, recommend.ErrDecomposition)
}
