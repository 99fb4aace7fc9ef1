// Shoprec - E-commerce Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package recommend

import (
	"fmt"
	"runtime"
	"time"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// MinInteractionsForUser is the minimum raw interaction count a user needs
	// to get a row in the rating matrix.
	// Default: 50.
	MinInteractionsForUser int `json:"min_interactions_for_user"`

	// MinInteractionsForRanking is the default rating count a product must
	// exceed to be ranked by popularity. Callers may override it per request.
	// Default: 50.
	MinInteractionsForRanking int `json:"min_interactions_for_ranking"`

	// SVD contains parameters for latent factor ranking.
	SVD SVDConfig `json:"svd"`

	// Neighborhood contains parameters for user-based collaborative filtering.
	Neighborhood NeighborhoodConfig `json:"neighborhood"`

	// Limits contains request limits.
	Limits LimitsConfig `json:"limits"`

	// Cache contains factorization cache parameters.
	Cache CacheConfig `json:"cache"`
}

// SVDConfig contains truncated SVD parameters.
type SVDConfig struct {
	// Rank is the default number of singular components to keep.
	// Default: 50.
	Rank int `json:"rank"`
}

// NeighborhoodConfig contains similarity search parameters.
type NeighborhoodConfig struct {
	// Workers is the number of goroutines used for batch similarity.
	// Values <= 1 compute sequentially.
	// Default: runtime.NumCPU().
	Workers int `json:"workers"`

	// ChunkSize is the number of rows each worker scores per task.
	// Default: 512.
	ChunkSize int `json:"chunk_size"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// MaxRecommendations is the upper bound on n for any strategy.
	// Default: 20.
	MaxRecommendations int `json:"max_recommendations"`

	// DefaultRecommendations is used when a request leaves n unset.
	// Default: 5.
	DefaultRecommendations int `json:"default_recommendations"`

	// SimilarUsers is the default number of neighbors reported.
	// Default: 10.
	SimilarUsers int `json:"similar_users"`

	// MaxRank is the largest SVD rank a request may ask for.
	// Default: 200.
	MaxRank int `json:"max_rank"`
}

// CacheConfig contains factorization memoization parameters.
type CacheConfig struct {
	// Entries is the number of (snapshot, k) factorizations kept.
	// Default: 8.
	Entries int `json:"entries"`

	// TTL is the lifetime of a cached factorization.
	// Default: 24h.
	TTL time.Duration `json:"ttl"`
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() *Config {
	return &Config{
		MinInteractionsForUser:    DefaultMinInteractionsForUser,
		MinInteractionsForRanking: 50,
		SVD: SVDConfig{
			Rank: 50,
		},
		Neighborhood: NeighborhoodConfig{
			Workers:   runtime.NumCPU(),
			ChunkSize: 512,
		},
		Limits: LimitsConfig{
			MaxRecommendations:     20,
			DefaultRecommendations: 5,
			SimilarUsers:           10,
			MaxRank:                200,
		},
		Cache: CacheConfig{
			Entries: 8,
			TTL:     24 * time.Hour,
		},
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.MinInteractionsForUser < 1 {
		return fmt.Errorf("min_interactions_for_user must be positive, got %d", c.MinInteractionsForUser)
	}
	if c.MinInteractionsForRanking < 0 {
		return fmt.Errorf("min_interactions_for_ranking must be non-negative, got %d", c.MinInteractionsForRanking)
	}

	if c.SVD.Rank < 1 {
		return fmt.Errorf("svd.rank must be positive, got %d", c.SVD.Rank)
	}

	if c.Neighborhood.Workers < 0 {
		return fmt.Errorf("neighborhood.workers must be non-negative, got %d", c.Neighborhood.Workers)
	}
	if c.Neighborhood.ChunkSize < 1 {
		return fmt.Errorf("neighborhood.chunk_size must be positive, got %d", c.Neighborhood.ChunkSize)
	}

	if c.Limits.MaxRecommendations < 1 {
		return fmt.Errorf("limits.max_recommendations must be positive, got %d", c.Limits.MaxRecommendations)
	}
	if c.Limits.DefaultRecommendations < 1 {
		return fmt.Errorf("limits.default_recommendations must be positive, got %d", c.Limits.DefaultRecommendations)
	}
	if c.Limits.DefaultRecommendations > c.Limits.MaxRecommendations {
		return fmt.Errorf("limits.default_recommendations must be <= limits.max_recommendations, got %d > %d",
			c.Limits.DefaultRecommendations, c.Limits.MaxRecommendations)
	}
	if c.Limits.SimilarUsers < 1 {
		return fmt.Errorf("limits.similar_users must be positive, got %d", c.Limits.SimilarUsers)
	}
	if c.Limits.MaxRank < c.SVD.Rank {
		return fmt.Errorf("limits.max_rank must be >= svd.rank, got %d < %d", c.Limits.MaxRank, c.SVD.Rank)
	}

	if c.Cache.Entries < 1 {
		return fmt.Errorf("cache.entries must be positive, got %d", c.Cache.Entries)
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive, got %v", c.Cache.TTL)
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
