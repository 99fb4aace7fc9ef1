// Shoprec - E-commerce Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package recommend

import (
	"math"
	"sort"
)

// DefaultTopUsers is the number of most active users reported in statistics.
const DefaultTopUsers = 10

// RatingBucket counts interactions with one rating value.
type RatingBucket struct {
	Rating float64 `json:"rating"`
	Count  int     `json:"count"`
}

// UserActivity is a user with their raw interaction count.
type UserActivity struct {
	UserID       string `json:"user_id"`
	Interactions int    `json:"interactions"`
}

// Summary is a descriptive summary of rating values.
type Summary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Q25    float64 `json:"q25"`
	Median float64 `json:"median"`
	Q75    float64 `json:"q75"`
	Max    float64 `json:"max"`
}

// DatasetStatistics describes the raw, unfiltered interaction set.
type DatasetStatistics struct {
	TotalRatings       int            `json:"total_ratings"`
	DistinctUsers      int            `json:"distinct_users"`
	DistinctProducts   int            `json:"distinct_products"`
	RatingDistribution []RatingBucket `json:"rating_distribution"`
	Summary            Summary        `json:"summary"`
	TopUsers           []UserActivity `json:"top_users"`
}

// ComputeDatasetStatistics summarizes interactions. topUsers limits the
// number of most active users returned; ties are broken by user id.
func ComputeDatasetStatistics(interactions []Interaction, topUsers int) DatasetStatistics {
	stats := DatasetStatistics{
		TotalRatings:       len(interactions),
		RatingDistribution: []RatingBucket{},
		TopUsers:           []UserActivity{},
	}
	if len(interactions) == 0 {
		return stats
	}

	userCounts := make(map[string]int)
	products := make(map[string]struct{})
	buckets := make(map[float64]int)
	values := make([]float64, len(interactions))

	for i := range interactions {
		in := &interactions[i]
		userCounts[in.UserID]++
		products[in.ProductID] = struct{}{}
		buckets[in.Rating]++
		values[i] = in.Rating
	}

	stats.DistinctUsers = len(userCounts)
	stats.DistinctProducts = len(products)

	for rating, count := range buckets {
		stats.RatingDistribution = append(stats.RatingDistribution, RatingBucket{Rating: rating, Count: count})
	}
	sort.Slice(stats.RatingDistribution, func(i, j int) bool {
		return stats.RatingDistribution[i].Rating < stats.RatingDistribution[j].Rating
	})

	stats.Summary = Describe(values)

	activity := make([]UserActivity, 0, len(userCounts))
	for id, n := range userCounts {
		activity = append(activity, UserActivity{UserID: id, Interactions: n})
	}
	sort.Slice(activity, func(i, j int) bool {
		if activity[i].Interactions != activity[j].Interactions {
			return activity[i].Interactions > activity[j].Interactions
		}
		return activity[i].UserID < activity[j].UserID
	})
	if topUsers >= 0 && len(activity) > topUsers {
		activity = activity[:topUsers]
	}
	stats.TopUsers = activity

	return stats
}

// Describe computes count, mean, sample standard deviation, min, max, and
// quartiles using linear interpolation between closest ranks.
func Describe(values []float64) Summary {
	n := len(values)
	if n == 0 {
		return Summary{}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}
	mean := sum / float64(n)

	var std float64
	if n > 1 {
		var sq float64
		for _, v := range sorted {
			d := v - mean
			sq += d * d
		}
		std = math.Sqrt(sq / float64(n-1))
	}

	return Summary{
		Count:  n,
		Mean:   mean,
		Std:    std,
		Min:    sorted[0],
		Q25:    quantile(sorted, 0.25),
		Median: quantile(sorted, 0.5),
		Q75:    quantile(sorted, 0.75),
		Max:    sorted[n-1],
	}
}

// quantile expects sorted input.
func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}
