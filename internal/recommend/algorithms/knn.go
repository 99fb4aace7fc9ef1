// Shoprec - E-commerce Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package algorithms

import (
	"context"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/shoprec/internal/recommend"
)

// KNNConfig contains configuration for user-based collaborative filtering.
type KNNConfig struct {
	// NumWorkers is the number of goroutines scoring row chunks.
	// Values <= 1 compute sequentially.
	NumWorkers int

	// ChunkSize is the number of rows scored per task.
	ChunkSize int
}

// DefaultKNNConfig returns default KNN configuration.
func DefaultKNNConfig() KNNConfig {
	return KNNConfig{
		NumWorkers: 4,
		ChunkSize:  512,
	}
}

// UserBasedCF implements user-based collaborative filtering over a rating
// matrix. Similarity is cosine over full zero-filled rating rows:
//
//	sim(u, v) = (u . v) / (|u| * |v|), or 0 when either norm is 0
//
// UserBasedCF holds no model state, so a single value may serve any number
// of concurrent queries against any snapshot.
type UserBasedCF struct {
	config KNNConfig
}

// NewUserBasedCF creates a new user-based CF recommender.
func NewUserBasedCF(cfg KNNConfig) *UserBasedCF {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = 512
	}
	return &UserBasedCF{config: cfg}
}

// SimilarUsers returns every other row ordered by descending cosine
// similarity to targetRow, with ties broken by ascending row. The target row
// never appears in the result.
func (u *UserBasedCF) SimilarUsers(ctx context.Context, m *recommend.RatingMatrix, targetRow int) ([]Neighbor, error) {
	if err := checkRow("similar users", m, targetRow); err != nil {
		return nil, err
	}

	sims, err := u.similarities(ctx, m, targetRow)
	if err != nil {
		return nil, err
	}

	neighbors := make([]Neighbor, 0, m.Rows()-1)
	for r, s := range sims {
		if r == targetRow {
			continue
		}
		neighbors = append(neighbors, Neighbor{Row: r, Similarity: s})
	}

	sortNeighbors(neighbors)
	return neighbors, nil
}

// Recommend walks the neighbors of targetRow in similarity order and
// collects products each neighbor rated that are not yet observed. The
// observed set starts with the target's own rated products and grows with
// every product a visited neighbor rated, so no product is suggested twice
// and none the target already rated. Within one neighbor, new products are
// taken in ascending product id. The walk stops at k products.
func (u *UserBasedCF) Recommend(ctx context.Context, m *recommend.RatingMatrix, products *recommend.Index, targetRow, k int) ([]string, error) {
	scored, err := u.RecommendScored(ctx, m, products, targetRow, k)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(scored))
	for i := range scored {
		ids[i] = scored[i].ProductID
	}
	return ids, nil
}

// RecommendScored is Recommend with each product scored by the similarity
// of the neighbor that contributed it. Scores are non-increasing along the
// result.
func (u *UserBasedCF) RecommendScored(ctx context.Context, m *recommend.RatingMatrix, products *recommend.Index, targetRow, k int) ([]recommend.Scored, error) {
	neighbors, err := u.SimilarUsers(ctx, m, targetRow)
	if err != nil {
		return nil, err
	}

	out := make([]recommend.Scored, 0, max(k, 0))
	if k <= 0 {
		return out, nil
	}

	observed := make([]bool, m.Cols())
	for _, c := range m.Rated(targetRow) {
		observed[c] = true
	}

	fresh := make([]string, 0, 16)
	for _, nb := range neighbors {
		if ContextCancelled(ctx) {
			return nil, ctx.Err()
		}

		fresh = fresh[:0]
		for _, c := range m.Rated(nb.Row) {
			if observed[c] {
				continue
			}
			observed[c] = true
			fresh = append(fresh, products.ID(c))
		}
		sort.Strings(fresh)

		for _, id := range fresh {
			out = append(out, recommend.Scored{ProductID: id, Score: nb.Similarity})
			if len(out) == k {
				return out, nil
			}
		}
	}

	return out, nil
}

// similarities computes the cosine similarity of targetRow against every
// row in one batch pass. Each worker writes a disjoint range of the result,
// so ordering is independent of scheduling.
func (u *UserBasedCF) similarities(ctx context.Context, m *recommend.RatingMatrix, targetRow int) ([]float64, error) {
	rows := m.Rows()
	sims := make([]float64, rows)

	target := m.Row(targetRow)
	targetNorm := m.Norm(targetRow)

	// Dot products only need the target's non-zero columns.
	nz := make([]int, 0, len(m.Rated(targetRow)))
	for c, v := range target {
		if v != 0 {
			nz = append(nz, c)
		}
	}

	score := func(start, end int) {
		for r := start; r < end; r++ {
			sims[r] = cosineSparse(target, nz, targetNorm, m.Row(r), m.Norm(r))
		}
	}

	if u.config.NumWorkers <= 1 || rows <= u.config.ChunkSize {
		score(0, rows)
		if ContextCancelled(ctx) {
			return nil, ctx.Err()
		}
		return sims, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(u.config.NumWorkers)

	for start := 0; start < rows; start += u.config.ChunkSize {
		end := min(start+u.config.ChunkSize, rows)
		g.Go(func() error {
			if ContextCancelled(gctx) {
				return gctx.Err()
			}
			score(start, end)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sims, nil
}

// cosineSparse computes cosine similarity between a and b, iterating only
// over nz, the non-zero positions of a.
func cosineSparse(a []float64, nz []int, normA float64, b []float64, normB float64) float64 {
	if normA == 0 || normB == 0 {
		return 0
	}
	var dot float64
	for _, c := range nz {
		dot += a[c] * b[c]
	}
	return dot / (normA * normB)
}

// CosineSimilarity computes cosine similarity between two equal-length
// vectors, returning 0 when either norm is 0.
func CosineSimilarity(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
