// Shoprec - E-commerce Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package engine

import (
	"time"

	"github.com/tomtom215/shoprec/internal/cache"
	"github.com/tomtom215/shoprec/internal/recommend"
	"github.com/tomtom215/shoprec/internal/recommend/algorithms"
)

// topProductsInStatistics is the number of best-rated products reported.
const topProductsInStatistics = 10

// Statistics describes the raw dataset and the current snapshot.
type Statistics struct {
	Dataset  recommend.DatasetStatistics `json:"dataset"`
	Snapshot SnapshotStatistics          `json:"snapshot"`
	Cache    cache.Stats                 `json:"factorization_cache"`

	// Factorizations lists the cached factorizations of the current
	// snapshot in ascending rank order.
	Factorizations []FactorizationStatistics `json:"factorizations"`
}

// FactorizationStatistics describes one cached factorization.
type FactorizationStatistics struct {
	Rank                int       `json:"rank"`
	SingularValues      []float64 `json:"singular_values"`
	ReconstructionError float64   `json:"reconstruction_error"`
}

// SnapshotStatistics describes the filtered rating matrix.
type SnapshotStatistics struct {
	Fingerprint            string             `json:"fingerprint"`
	MinInteractionsForUser int                `json:"min_interactions_for_user"`
	ActiveUsers            int                `json:"active_users"`
	Products               int                `json:"products"`
	Interactions           int                `json:"interactions"`
	RatedCells             int                `json:"rated_cells"`
	Density                float64            `json:"density"`
	TopProducts            []recommend.Scored `json:"top_products"`
	BuiltAt                time.Time          `json:"built_at"`
}

// Statistics returns dataset and snapshot statistics.
func (e *Engine) Statistics() (*Statistics, error) {
	st, err := e.loaded("statistics")
	if err != nil {
		return nil, err
	}
	snap := st.snap

	rows, cols := snap.Matrix.Rows(), snap.Matrix.Cols()
	rated := snap.Matrix.NonZero()
	density := 0.0
	if rows > 0 && cols > 0 {
		density = float64(rated) / float64(rows*cols)
	}

	return &Statistics{
		Dataset: st.dataset,
		Snapshot: SnapshotStatistics{
			Fingerprint:            snap.Fingerprint,
			MinInteractionsForUser: snap.MinInteractionsForUser,
			ActiveUsers:            rows,
			Products:               cols,
			Interactions:           snap.Interactions,
			RatedCells:             rated,
			Density:                density,
			// Every product in the snapshot has at least one rating.
			TopProducts: algorithms.TopNScored(snap.Stats, topProductsInStatistics, 0),
			BuiltAt:     snap.BuiltAt,
		},
		Cache:          e.factorizations.Stats(),
		Factorizations: e.cachedFactorizations(snap),
	}, nil
}

// cachedFactorizations reports the factorizations of snap still in the
// cache without touching their recency.
func (e *Engine) cachedFactorizations(snap *recommend.Snapshot) []FactorizationStatistics {
	rows, cols := snap.Matrix.Rows(), snap.Matrix.Cols()
	out := []FactorizationStatistics{}
	for k := 1; k <= e.config.Limits.MaxRank && algorithms.ValidRank(rows, cols, k); k++ {
		f, ok := e.factorizations.Peek(factorizationKey(snap.Fingerprint, k))
		if !ok {
			continue
		}
		out = append(out, FactorizationStatistics{
			Rank:                k,
			SingularValues:      append([]float64(nil), f.Sigma...),
			ReconstructionError: algorithms.ReconstructionError(f, snap.Matrix),
		})
	}
	return out
}

// Status is a lightweight view of engine health.
type Status struct {
	Ready        bool      `json:"ready"`
	Fingerprint  string    `json:"fingerprint,omitempty"`
	Users        int       `json:"users"`
	Products     int       `json:"products"`
	BuiltAt      time.Time `json:"built_at,omitempty"`
	Requests     int64     `json:"requests"`
	Errors       int64     `json:"errors"`
	CachedModels int       `json:"cached_factorizations"`
}

// Status returns the engine status.
func (e *Engine) Status() Status {
	s := Status{
		Requests:     e.requestCount.Load(),
		Errors:       e.errorCount.Load(),
		CachedModels: e.factorizations.Len(),
	}
	if snap := e.Snapshot(); snap != nil {
		s.Ready = true
		s.Fingerprint = snap.Fingerprint
		s.Users = snap.Matrix.Rows()
		s.Products = snap.Matrix.Cols()
		s.BuiltAt = snap.BuiltAt
	}
	return s
}
