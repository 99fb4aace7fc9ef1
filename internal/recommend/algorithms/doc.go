// Shoprec - E-commerce Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

// Package algorithms implements the three ranking strategies of the
// recommendation engine over an immutable rating matrix snapshot.
//
// # Strategies
//
//   - Popularity: TopN ranks products by average rating among those with more
//     than a minimum number of ratings.
//   - Neighborhood: UserBasedCF finds users with similar rating vectors by
//     cosine similarity and collects the products they rated.
//   - Latent factor: Factorize computes a truncated SVD and RecommendLatent
//     ranks unrated products by their reconstructed score.
//
// Scores are strategy specific and must not be compared across strategies.
//
// # Determinism
//
// Every ordering has an explicit tie-break: equal scores order by ascending
// product id, equal similarities by ascending row. Batch similarity may run in
// parallel without changing results.
//
// # Usage
//
//	cf := algorithms.NewUserBasedCF(algorithms.DefaultKNNConfig())
//	neighbors, err := cf.SimilarUsers(ctx, snap.Matrix, row)
//
//	f, err := algorithms.Factorize(snap.Matrix, 50)
//	recs, err := algorithms.RecommendLatent(f, snap.Matrix, snap.Products, row, 10)
package algorithms
