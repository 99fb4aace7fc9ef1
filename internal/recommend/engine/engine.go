// Shoprec - E-commerce Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package engine

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/shoprec/internal/cache"
	"github.com/tomtom215/shoprec/internal/metrics"
	"github.com/tomtom215/shoprec/internal/recommend"
	"github.com/tomtom215/shoprec/internal/recommend/algorithms"
)

// Engine serves recommendations from the current snapshot. Snapshots are
// swapped atomically by Load, so in-flight requests keep the snapshot they
// started with. It is safe for concurrent use.
type Engine struct {
	config *recommend.Config
	logger zerolog.Logger

	knn *algorithms.UserBasedCF

	current atomic.Pointer[state]

	// Factorizations keyed by "<fingerprint>:<k>".
	factorizations *cache.LRUCache[*algorithms.Factorization]
	inflight       singleflight.Group
	factorize      func(*recommend.RatingMatrix, int) (*algorithms.Factorization, error)

	requestCount atomic.Int64
	errorCount   atomic.Int64
}

// state pairs a snapshot with the statistics of the raw data it came from.
type state struct {
	snap    *recommend.Snapshot
	dataset recommend.DatasetStatistics
}

// New creates an engine with no snapshot. Requests fail with
// recommend.ErrDatasetUnavailable until the first successful Load.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(cfg *recommend.Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = recommend.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	cfg = cfg.Clone()

	return &Engine{
		config: cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
		knn: algorithms.NewUserBasedCF(algorithms.KNNConfig{
			NumWorkers: cfg.Neighborhood.Workers,
			ChunkSize:  cfg.Neighborhood.ChunkSize,
		}),
		factorizations: cache.NewLRUCache[*algorithms.Factorization](cfg.Cache.Entries, cfg.Cache.TTL),
		factorize:      algorithms.Factorize,
	}, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *recommend.Config {
	return e.config.Clone()
}

// Load builds a snapshot from interactions and makes it current. On failure
// the previous snapshot stays in place. Cached factorizations are dropped
// only when the new snapshot's content differs from the old one.
func (e *Engine) Load(ctx context.Context, interactions []recommend.Interaction) (*recommend.Snapshot, error) {
	start := time.Now()

	snap, err := recommend.BuildSnapshot(interactions, e.config.MinInteractionsForUser)
	if err != nil {
		e.logger.Warn().Err(err).
			Int("interactions", len(interactions)).
			Int("min_interactions_for_user", e.config.MinInteractionsForUser).
			Msg("snapshot build failed, keeping previous snapshot")
		return nil, err
	}
	if algorithms.ContextCancelled(ctx) {
		return nil, ctx.Err()
	}

	next := &state{
		snap:    snap,
		dataset: recommend.ComputeDatasetStatistics(interactions, recommend.DefaultTopUsers),
	}
	prev := e.current.Swap(next)

	purged := 0
	if prev != nil && prev.snap.Fingerprint != snap.Fingerprint {
		purged = e.factorizations.Purge()
	}

	metrics.SetSnapshot(snap.Matrix.Rows(), snap.Matrix.Cols(), snap.Interactions)

	e.logger.Info().
		Int("users", snap.Matrix.Rows()).
		Int("products", snap.Matrix.Cols()).
		Int("interactions", snap.Interactions).
		Str("fingerprint", shortFingerprint(snap.Fingerprint)).
		Int("factorizations_purged", purged).
		Dur("duration", time.Since(start)).
		Msg("snapshot loaded")

	return snap, nil
}

// Snapshot returns the current snapshot, or nil before the first Load.
func (e *Engine) Snapshot() *recommend.Snapshot {
	if st := e.current.Load(); st != nil {
		return st.snap
	}
	return nil
}

// Ready reports whether a snapshot is loaded.
func (e *Engine) Ready() bool {
	return e.current.Load() != nil
}

func (e *Engine) loaded(op string) (*state, error) {
	st := e.current.Load()
	if st == nil {
		return nil, recommend.NewError(op, recommend.ErrDatasetUnavailable, "no snapshot loaded")
	}
	return st, nil
}

// Factorization returns the rank-k factorization of the current snapshot.
// k <= 0 selects the configured default rank.
func (e *Engine) Factorization(k int) (*algorithms.Factorization, error) {
	st, err := e.loaded("factorization")
	if err != nil {
		return nil, err
	}
	f, _, err := e.factorization(st.snap, e.resolveRank(k))
	return f, err
}

// factorizationResult is what one singleflight call produced and whether
// it came from the cache.
type factorizationResult struct {
	f   *algorithms.Factorization
	hit bool
}

func factorizationKey(fingerprint string, k int) string {
	return fmt.Sprintf("%s:%d", fingerprint, k)
}

// factorization returns the memoized rank-k factorization of snap, computing
// it at most once per key across concurrent callers. Failures are returned
// to every waiting caller and never cached. Callers that waited on another
// caller's computation count as misses.
func (e *Engine) factorization(snap *recommend.Snapshot, k int) (*algorithms.Factorization, bool, error) {
	if k > e.config.Limits.MaxRank {
		return nil, false, recommend.NewError("factorization", recommend.ErrInvalidRequest,
			"rank %d exceeds max_rank %d", k, e.config.Limits.MaxRank)
	}

	key := factorizationKey(snap.Fingerprint, k)
	v, err, _ := e.inflight.Do(key, func() (any, error) {
		if f, ok := e.factorizations.Get(key); ok {
			return factorizationResult{f: f, hit: true}, nil
		}

		start := time.Now()
		f, err := e.factorize(snap.Matrix, k)
		metrics.RecordFactorization(time.Since(start), err)
		if err != nil {
			return nil, err
		}

		e.factorizations.Add(key, f)
		// Load swaps before it purges, so a snapshot replaced while this
		// ran is visible here and its entry must not outlive it.
		if cur := e.current.Load(); cur == nil || cur.snap.Fingerprint != snap.Fingerprint {
			e.factorizations.Remove(key)
		}

		e.logger.Debug().
			Int("rank", k).
			Int("rows", f.Rows()).
			Int("cols", f.Cols()).
			Dur("duration", time.Since(start)).
			Msg("factorization computed")
		return factorizationResult{f: f}, nil
	})
	if err != nil {
		metrics.RecordFactorizationCache(false)
		return nil, false, err
	}

	res := v.(factorizationResult)
	metrics.RecordFactorizationCache(res.hit)
	return res.f, res.hit, nil
}

// TopProducts returns up to n products whose rating count exceeds
// minInteractions, by average rating.
func (e *Engine) TopProducts(n, minInteractions int) ([]recommend.Scored, error) {
	const op = "top products"

	if err := e.checkN(op, n); err != nil {
		return nil, err
	}
	st, err := e.loaded(op)
	if err != nil {
		return nil, err
	}
	return algorithms.TopNScored(st.snap.Stats, n, minInteractions), nil
}

// SimilarUser is a neighbor of a user with its cosine similarity.
type SimilarUser struct {
	UserID     string  `json:"user_id"`
	Similarity float64 `json:"similarity"`
}

// SimilarUsers returns up to limit users most similar to userID.
// limit <= 0 selects the configured default.
func (e *Engine) SimilarUsers(ctx context.Context, userID string, limit int) ([]SimilarUser, error) {
	const op = "similar users"

	if limit <= 0 {
		limit = e.config.Limits.SimilarUsers
	}
	st, err := e.loaded(op)
	if err != nil {
		return nil, err
	}
	row, err := userRow(op, st.snap, userID)
	if err != nil {
		return nil, err
	}

	neighbors, err := e.knn.SimilarUsers(ctx, st.snap.Matrix, row)
	if err != nil {
		return nil, err
	}
	if len(neighbors) > limit {
		neighbors = neighbors[:limit]
	}

	out := make([]SimilarUser, len(neighbors))
	for i, nb := range neighbors {
		out[i] = SimilarUser{UserID: st.snap.Users.ID(nb.Row), Similarity: nb.Similarity}
	}
	return out, nil
}

// RecommendNeighborhood recommends up to n products for userID from the
// products rated by similar users.
func (e *Engine) RecommendNeighborhood(ctx context.Context, userID string, n int) ([]recommend.Scored, error) {
	const op = "neighborhood recommend"

	if err := e.checkN(op, n); err != nil {
		return nil, err
	}
	st, err := e.loaded(op)
	if err != nil {
		return nil, err
	}
	row, err := userRow(op, st.snap, userID)
	if err != nil {
		return nil, err
	}
	return e.knn.RecommendScored(ctx, st.snap.Matrix, st.snap.Products, row, n)
}

// RecommendLatent recommends up to n unrated products for userID ranked by
// a rank-k reconstruction of the rating matrix. k <= 0 selects the
// configured default rank.
func (e *Engine) RecommendLatent(ctx context.Context, userID string, n, k int) ([]recommend.Scored, error) {
	items, _, err := e.recommendLatent(ctx, userID, n, e.resolveRank(k))
	return items, err
}

func (e *Engine) recommendLatent(ctx context.Context, userID string, n, k int) ([]recommend.Scored, bool, error) {
	const op = "latent recommend"

	if err := e.checkN(op, n); err != nil {
		return nil, false, err
	}
	st, err := e.loaded(op)
	if err != nil {
		return nil, false, err
	}
	row, err := userRow(op, st.snap, userID)
	if err != nil {
		return nil, false, err
	}

	f, hit, err := e.factorization(st.snap, k)
	if err != nil {
		return nil, false, err
	}
	if algorithms.ContextCancelled(ctx) {
		return nil, hit, ctx.Err()
	}

	items, err := algorithms.RecommendLatent(f, st.snap.Matrix, st.snap.Products, row, n)
	return items, hit, err
}

func (e *Engine) checkN(op string, n int) error {
	if n < 1 || n > e.config.Limits.MaxRecommendations {
		return recommend.NewError(op, recommend.ErrInvalidRequest,
			"n must be between 1 and %d, got %d", e.config.Limits.MaxRecommendations, n)
	}
	return nil
}

func (e *Engine) resolveRank(k int) int {
	if k <= 0 {
		return e.config.SVD.Rank
	}
	return k
}

func userRow(op string, snap *recommend.Snapshot, userID string) (int, error) {
	row, ok := snap.Users.Position(userID)
	if !ok {
		return 0, recommend.NewError(op, recommend.ErrUnknownUser, "user %q has no row in the current snapshot", userID)
	}
	return row, nil
}

func shortFingerprint(fp string) string {
	if len(fp) > 12 {
		return fp[:12]
	}
	return fp
}
