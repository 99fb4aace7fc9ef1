// Shoprec - E-commerce Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package algorithms

import (
	"github.com/tomtom215/shoprec/internal/recommend"
)

// TopN returns up to n product ids whose rating count exceeds minInteractions,
// ordered by descending average rating with ties broken by ascending id.
// An empty result is valid and never an error.
func TopN(stats map[string]recommend.ProductStats, n, minInteractions int) []string {
	scored := TopNScored(stats, n, minInteractions)
	ids := make([]string, len(scored))
	for i := range scored {
		ids[i] = scored[i].ProductID
	}
	return ids
}

// TopNScored is TopN with the average rating attached as the score.
func TopNScored(stats map[string]recommend.ProductStats, n, minInteractions int) []recommend.Scored {
	if n <= 0 {
		return []recommend.Scored{}
	}

	candidates := make([]recommend.Scored, 0, len(stats))
	for id, s := range stats {
		if s.RatingCount > minInteractions {
			candidates = append(candidates, recommend.Scored{ProductID: id, Score: s.AvgRating})
		}
	}

	sortScored(candidates)

	if len(candidates) > n {
		candidates = candidates[:n]
	}
	return candidates
}
