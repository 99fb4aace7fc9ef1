// Shoprec - E-commerce Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package config

import (
	"time"

	"github.com/tomtom215/shoprec/internal/recommend"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML file, and environment variables.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Data      DataConfig      `koanf:"data"`
	Recommend RecommendConfig `koanf:"recommend"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `koanf:"host" validate:"omitempty,hostname|ip"`
	Port int    `koanf:"port" validate:"min=1,max=65535"`

	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"gt=0"`
	IdleTimeout     time.Duration `koanf:"idle_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`

	// RequestTimeout bounds handler execution. Latent requests on a cold
	// cache run a truncated SVD, so this should exceed the expected decomposition time.
	// Default: 60s
	RequestTimeout time.Duration `koanf:"request_timeout" validate:"gt=0"`

	// CORSOrigins lists allowed origins. "*" allows any origin.
	// Default: ["*"]
	CORSOrigins []string `koanf:"cors_origins"`

	// RateLimitRequests is the number of requests allowed per client IP per
	// RateLimitWindow. 0 disables rate limiting.
	// Default: 100
	RateLimitRequests int           `koanf:"rate_limit_requests" validate:"gte=0"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window" validate:"gt=0"`

	// Environment mode: development, staging, production.
	// Default: development
	Environment string `koanf:"environment" validate:"oneof=development staging production"`
}

// DataConfig holds dataset locations and DuckDB settings.
type DataConfig struct {
	// RatingsPath is the headerless ratings CSV (user_id,prod_id,rating,timestamp).
	// Default: data/ratings_Electronics.csv
	RatingsPath string `koanf:"ratings_path" validate:"required"`

	// ProductsPath is the optional ';'-separated product catalog CSV.
	// Default: "" (no catalog metadata)
	ProductsPath string `koanf:"products_path"`

	// UsersPath is the optional user directory CSV (user_id,name).
	// Default: "" (ids are shown as names)
	UsersPath string `koanf:"users_path"`

	// DuckDBPath is the DuckDB database used for CSV parsing.
	// Default: ":memory:"
	DuckDBPath string `koanf:"duckdb_path" validate:"required"`

	// Threads is the DuckDB worker thread count. 0 lets DuckDB decide.
	// Default: 0
	Threads int `koanf:"threads" validate:"gte=0"`

	// MaxMemory caps DuckDB memory, e.g. "2GB".
	// Default: 2GB
	MaxMemory string `koanf:"max_memory" validate:"required"`

	// ReloadInterval re-reads the dataset periodically. 0 loads once at startup.
	// Default: 0
	ReloadInterval time.Duration `koanf:"reload_interval" validate:"gte=0"`

	// LoadTimeout bounds a single dataset load.
	// Default: 10m
	LoadTimeout time.Duration `koanf:"load_timeout" validate:"gt=0"`
}

// RecommendConfig holds recommendation engine settings. Cross-field rules
// are checked by recommend.Config.Validate through EngineConfig.
type RecommendConfig struct {
	// MinInteractionsForUser is the activity threshold for matrix rows.
	// Default: 50
	MinInteractionsForUser int `koanf:"min_interactions_for_user" validate:"min=1"`

	// MinInteractionsForRanking is the default rating count a product must
	// exceed to be ranked by popularity.
	// Default: 50
	MinInteractionsForRanking int `koanf:"min_interactions_for_ranking" validate:"gte=0"`

	// SVDRank is the default number of latent factors.
	// Default: 50
	SVDRank int `koanf:"svd_rank" validate:"min=1"`

	// SVDMaxRank is the largest rank a request may ask for.
	// Default: 200
	SVDMaxRank int `koanf:"svd_max_rank" validate:"gtefield=SVDRank"`

	// MaxRecommendations caps n on every strategy.
	// Default: 20
	MaxRecommendations int `koanf:"max_recommendations" validate:"min=1"`

	// DefaultRecommendations is used when a request omits n.
	// Default: 5
	DefaultRecommendations int `koanf:"default_recommendations" validate:"min=1"`

	// SimilarUsersLimit is the default number of neighbors reported.
	// Default: 10
	SimilarUsersLimit int `koanf:"similar_users_limit" validate:"min=1"`

	// NeighborhoodWorkers parallelizes similarity search. 0 uses runtime.NumCPU().
	// Default: 0
	NeighborhoodWorkers int `koanf:"neighborhood_workers" validate:"gte=0"`

	// NeighborhoodChunkSize is the number of rows scored per worker task.
	// Default: 512
	NeighborhoodChunkSize int `koanf:"neighborhood_chunk_size" validate:"min=1"`

	// FactorizationCacheSize is the number of (snapshot, k) factorizations kept.
	// Default: 8
	FactorizationCacheSize int `koanf:"factorization_cache_size" validate:"min=1"`

	// FactorizationCacheTTL is the lifetime of a cached factorization.
	// Default: 24h
	FactorizationCacheTTL time.Duration `koanf:"factorization_cache_ttl" validate:"gt=0"`
}

// EngineConfig converts the flat settings into an engine configuration.
func (r *RecommendConfig) EngineConfig() *recommend.Config {
	cfg := recommend.DefaultConfig()

	cfg.MinInteractionsForUser = r.MinInteractionsForUser
	cfg.MinInteractionsForRanking = r.MinInteractionsForRanking
	cfg.SVD.Rank = r.SVDRank
	cfg.Limits.MaxRank = r.SVDMaxRank
	cfg.Limits.MaxRecommendations = r.MaxRecommendations
	cfg.Limits.DefaultRecommendations = r.DefaultRecommendations
	cfg.Limits.SimilarUsers = r.SimilarUsersLimit
	if r.NeighborhoodWorkers > 0 {
		cfg.Neighborhood.Workers = r.NeighborhoodWorkers
	}
	cfg.Neighborhood.ChunkSize = r.NeighborhoodChunkSize
	cfg.Cache.Entries = r.FactorizationCacheSize
	cfg.Cache.TTL = r.FactorizationCacheTTL

	return cfg
}

// LoggingConfig holds logging configuration for zerolog.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level" validate:"oneof=trace debug info warn error"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format" validate:"oneof=json console"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Load reads configuration using a layered approach:
//  1. Built-in defaults
//  2. Config file (config.yaml if exists, or path specified in CONFIG_PATH env var)
//  3. Environment variables
//
// See LoadWithKoanf() for the underlying implementation.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
