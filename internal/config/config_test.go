// Shoprec - E-commerce Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package config

import (
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestRecommendConfig_EngineConfig(t *testing.T) {
	r := defaultConfig().Recommend
	r.MinInteractionsForUser = 3
	r.SVDRank = 7
	r.SVDMaxRank = 9
	r.NeighborhoodChunkSize = 64
	r.FactorizationCacheSize = 2
	r.FactorizationCacheTTL = time.Hour

	cfg := r.EngineConfig()

	if cfg.MinInteractionsForUser != 3 || cfg.SVD.Rank != 7 || cfg.Limits.MaxRank != 9 {
		t.Errorf("EngineConfig() = %+v", cfg)
	}
	if cfg.Neighborhood.Workers != runtime.NumCPU() {
		t.Errorf("Workers = %d, want NumCPU for 0", cfg.Neighborhood.Workers)
	}
	if cfg.Neighborhood.ChunkSize != 64 {
		t.Errorf("ChunkSize = %d, want 64", cfg.Neighborhood.ChunkSize)
	}
	if cfg.Cache.Entries != 2 || cfg.Cache.TTL != time.Hour {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}

	r.NeighborhoodWorkers = 3
	if got := r.EngineConfig().Neighborhood.Workers; got != 3 {
		t.Errorf("Workers = %d, want 3", got)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid defaults", func(c *Config) {}, ""},
		{"missing ratings path", func(c *Config) { c.Data.RatingsPath = "" }, "ratings_path is required"},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "port must be at least 1"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "format must be one of: json console"},
		{"zero request timeout", func(c *Config) { c.Server.RequestTimeout = 0 }, "request_timeout must be greater than 0"},
		{"empty cors entry", func(c *Config) { c.Server.CORSOrigins = []string{"https://a", " "} }, "CORS_ORIGINS must not contain empty entries"},
		{"wildcard in production", func(c *Config) { c.Server.Environment = "production" }, "must not contain * in production"},
		{"duckdb options in path", func(c *Config) { c.Data.DuckDBPath = "db.duckdb?threads=1" }, "DUCKDB_PATH"},
		{"max rank below rank", func(c *Config) { c.Recommend.SVDMaxRank = 10 }, "svd_max_rank must be greater than or equal to SVDRank"},
		{"default above max", func(c *Config) { c.Recommend.DefaultRecommendations = 21 }, "recommend: limits.default_recommendations"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %q, want it to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestConfig_IsProduction(t *testing.T) {
	cfg := defaultConfig()
	if cfg.IsProduction() {
		t.Error("IsProduction() = true for development")
	}
	cfg.Server.Environment = "production"
	if !cfg.IsProduction() {
		t.Error("IsProduction() = false for production")
	}
}
