// Shoprec - E-commerce Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package algorithms

import (
	"context"
	"sort"

	"github.com/tomtom215/shoprec/internal/recommend"
)

// Strategy names used for logging, metrics, and request routing.
const (
	StrategyPopularity   = "popularity"
	StrategyNeighborhood = "neighborhood"
	StrategyLatent       = "latent"
)

// Neighbor is a matrix row with its cosine similarity to a target row.
type Neighbor struct {
	Row        int     `json:"row"`
	Similarity float64 `json:"similarity"`
}

// sortScored orders by descending score, then ascending product id.
func sortScored(items []recommend.Scored) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		return items[i].ProductID < items[j].ProductID
	})
}

// sortNeighbors orders by descending similarity, then ascending row.
func sortNeighbors(neighbors []Neighbor) {
	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].Similarity != neighbors[j].Similarity {
			return neighbors[i].Similarity > neighbors[j].Similarity
		}
		return neighbors[i].Row < neighbors[j].Row
	})
}

// checkRow returns ErrInvalidUserIndex when row is outside the matrix.
func checkRow(op string, m *recommend.RatingMatrix, row int) error {
	if m == nil || !m.ValidRow(row) {
		rows := 0
		if m != nil {
			rows = m.Rows()
		}
		return recommend.NewError(op, recommend.ErrInvalidUserIndex, "row %d outside [0, %d)", row, rows)
	}
	return nil
}

// ContextCancelled checks if the context has been cancelled.
func ContextCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}
