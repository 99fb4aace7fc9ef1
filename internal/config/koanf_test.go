// Shoprec - E-commerce Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// isolateEnv points CONFIG_PATH at a missing file and clears every mapped
// variable so host settings cannot leak into a test.
func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	for key := range envMappings {
		name := strings.ToUpper(key)
		if _, ok := os.LookupEnv(name); ok {
			t.Setenv(name, "")
			os.Unsetenv(name)
		}
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to create config file: %v", err)
	}
	return path
}

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 3857 {
		t.Errorf("Server.Port = %d, want 3857", cfg.Server.Port)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want 0.0.0.0", cfg.Server.Host)
	}
	if len(cfg.Server.CORSOrigins) != 1 || cfg.Server.CORSOrigins[0] != "*" {
		t.Errorf("Server.CORSOrigins = %v, want [*]", cfg.Server.CORSOrigins)
	}
	if cfg.Server.RateLimitRequests != 100 || cfg.Server.RateLimitWindow != time.Minute {
		t.Errorf("rate limit = %d/%v, want 100/1m", cfg.Server.RateLimitRequests, cfg.Server.RateLimitWindow)
	}

	if cfg.Data.DuckDBPath != ":memory:" {
		t.Errorf("Data.DuckDBPath = %q, want :memory:", cfg.Data.DuckDBPath)
	}
	if cfg.Data.ReloadInterval != 0 {
		t.Errorf("Data.ReloadInterval = %v, want 0", cfg.Data.ReloadInterval)
	}

	r := cfg.Recommend
	if r.MinInteractionsForUser != 50 || r.MinInteractionsForRanking != 50 {
		t.Errorf("min interactions = %d/%d, want 50/50", r.MinInteractionsForUser, r.MinInteractionsForRanking)
	}
	if r.SVDRank != 50 {
		t.Errorf("Recommend.SVDRank = %d, want 50", r.SVDRank)
	}
	if r.MaxRecommendations != 20 || r.DefaultRecommendations != 5 {
		t.Errorf("recommendations = %d/%d, want 20/5", r.MaxRecommendations, r.DefaultRecommendations)
	}
	if r.SimilarUsersLimit != 10 {
		t.Errorf("Recommend.SimilarUsersLimit = %d, want 10", r.SimilarUsersLimit)
	}

	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v, want info/json", cfg.Logging)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaultConfig().Validate() = %v", err)
	}
}

// TestEnvTransformFunc verifies environment variable name transformations
func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"HTTP_PORT", "server.port"},
		{"HTTP_HOST", "server.host"},
		{"CORS_ORIGINS", "server.cors_origins"},
		{"RATE_LIMIT_WINDOW", "server.rate_limit_window"},
		{"RATINGS_PATH", "data.ratings_path"},
		{"DUCKDB_MAX_MEMORY", "data.max_memory"},
		{"RELOAD_INTERVAL", "data.reload_interval"},
		{"MIN_INTERACTIONS_FOR_USER", "recommend.min_interactions_for_user"},
		{"SVD_RANK", "recommend.svd_rank"},
		{"FACTORIZATION_CACHE_TTL", "recommend.factorization_cache_ttl"},
		{"LOG_LEVEL", "logging.level"},
		{"log_format", "logging.format"},

		// Unmapped
		{"PATH", ""},
		{"HOME", ""},
		{"SHOPREC_UNKNOWN", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := envTransformFunc(tt.input); got != tt.expected {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

// TestFindConfigFile tests config file discovery
func TestFindConfigFile(t *testing.T) {
	t.Run("CONFIG_PATH wins", func(t *testing.T) {
		path := writeConfigFile(t, "server:\n  port: 1\n")
		t.Setenv(ConfigPathEnvVar, path)

		if got := findConfigFile(); got != path {
			t.Errorf("findConfigFile() = %q, want %q", got, path)
		}
	})

	t.Run("missing CONFIG_PATH falls back", func(t *testing.T) {
		t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "nope.yaml"))

		orig := DefaultConfigPaths
		t.Cleanup(func() { DefaultConfigPaths = orig })

		fallback := writeConfigFile(t, "")
		DefaultConfigPaths = []string{filepath.Join(t.TempDir(), "absent.yaml"), fallback}

		if got := findConfigFile(); got != fallback {
			t.Errorf("findConfigFile() = %q, want %q", got, fallback)
		}
	})

	t.Run("nothing found", func(t *testing.T) {
		t.Setenv(ConfigPathEnvVar, "")

		orig := DefaultConfigPaths
		t.Cleanup(func() { DefaultConfigPaths = orig })
		DefaultConfigPaths = []string{filepath.Join(t.TempDir(), "absent.yaml")}

		if got := findConfigFile(); got != "" {
			t.Errorf("findConfigFile() = %q, want empty", got)
		}
	})
}

// TestLoadWithKoanfEnvVars tests loading configuration from environment variables
func TestLoadWithKoanfEnvVars(t *testing.T) {
	isolateEnv(t)
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("RATINGS_PATH", "/data/ratings.csv")
	t.Setenv("MIN_INTERACTIONS_FOR_USER", "20")
	t.Setenv("SVD_RANK", "15")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("RELOAD_INTERVAL", "30m")
	t.Setenv("LOG_CALLER", "true")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Data.RatingsPath != "/data/ratings.csv" {
		t.Errorf("Data.RatingsPath = %q", cfg.Data.RatingsPath)
	}
	if cfg.Recommend.MinInteractionsForUser != 20 {
		t.Errorf("MinInteractionsForUser = %d, want 20", cfg.Recommend.MinInteractionsForUser)
	}
	if cfg.Recommend.SVDRank != 15 {
		t.Errorf("SVDRank = %d, want 15", cfg.Recommend.SVDRank)
	}
	if len(cfg.Server.CORSOrigins) != 2 || cfg.Server.CORSOrigins[1] != "https://b.example" {
		t.Errorf("CORSOrigins = %v, want two trimmed origins", cfg.Server.CORSOrigins)
	}
	if cfg.Data.ReloadInterval != 30*time.Minute {
		t.Errorf("ReloadInterval = %v, want 30m", cfg.Data.ReloadInterval)
	}
	if !cfg.Logging.Caller {
		t.Error("Logging.Caller = false, want true")
	}
}

// TestLoadWithKoanfConfigFile tests loading configuration from a YAML file
func TestLoadWithKoanfConfigFile(t *testing.T) {
	isolateEnv(t)

	path := writeConfigFile(t, `
server:
  port: 8888
  host: "127.0.0.1"
  cors_origins:
    - "https://shop.example"

data:
  ratings_path: "/srv/ratings.csv"
  products_path: "/srv/productos.csv"

recommend:
  svd_rank: 30
  factorization_cache_ttl: 2h

logging:
  level: "warn"
`)
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 8888 || cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Server = %s:%d, want 127.0.0.1:8888", cfg.Server.Host, cfg.Server.Port)
	}
	if len(cfg.Server.CORSOrigins) != 1 || cfg.Server.CORSOrigins[0] != "https://shop.example" {
		t.Errorf("CORSOrigins = %v", cfg.Server.CORSOrigins)
	}
	if cfg.Data.ProductsPath != "/srv/productos.csv" {
		t.Errorf("ProductsPath = %q", cfg.Data.ProductsPath)
	}
	if cfg.Recommend.SVDRank != 30 || cfg.Recommend.FactorizationCacheTTL != 2*time.Hour {
		t.Errorf("Recommend = %+v", cfg.Recommend)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", cfg.Logging.Level)
	}

	// Defaults still apply for unset values
	if cfg.Data.DuckDBPath != ":memory:" {
		t.Errorf("DuckDBPath = %q, want :memory: (default)", cfg.Data.DuckDBPath)
	}
	if cfg.Recommend.MaxRecommendations != 20 {
		t.Errorf("MaxRecommendations = %d, want 20 (default)", cfg.Recommend.MaxRecommendations)
	}
}

// TestLoadWithKoanfEnvOverridesFile tests that env vars override config file
func TestLoadWithKoanfEnvOverridesFile(t *testing.T) {
	isolateEnv(t)

	path := writeConfigFile(t, `
server:
  port: 8888
data:
  ratings_path: "/srv/ratings.csv"
logging:
  level: "warn"
`)
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("HTTP_PORT", "9999")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("DUCKDB_PATH", "/var/lib/shoprec/ingest.duckdb")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Data.RatingsPath != "/srv/ratings.csv" {
		t.Errorf("RatingsPath = %q, want /srv/ratings.csv (from file)", cfg.Data.RatingsPath)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("Server.Port = %d, want 9999 (env override)", cfg.Server.Port)
	}
	if cfg.Logging.Level != "error" {
		t.Errorf("Logging.Level = %q, want error (env override)", cfg.Logging.Level)
	}
	if cfg.Data.DuckDBPath != "/var/lib/shoprec/ingest.duckdb" {
		t.Errorf("DuckDBPath = %q (env override)", cfg.Data.DuckDBPath)
	}
}

// TestLoadWithKoanfValidation tests that invalid layered values are rejected
func TestLoadWithKoanfValidation(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		wantErr bool
	}{
		{"defaults", map[string]string{}, false},
		{"port out of range", map[string]string{"HTTP_PORT": "70000"}, true},
		{"unknown log level", map[string]string{"LOG_LEVEL": "verbose"}, true},
		{"unknown environment", map[string]string{"ENVIRONMENT": "qa"}, true},
		{"zero svd rank", map[string]string{"SVD_RANK": "0"}, true},
		{"max rank below rank", map[string]string{"SVD_RANK": "60", "SVD_MAX_RANK": "40"}, true},
		{"default above max", map[string]string{"DEFAULT_RECOMMENDATIONS": "25"}, true},
		{"production wildcard cors", map[string]string{"ENVIRONMENT": "production"}, true},
		{"production explicit cors", map[string]string{"ENVIRONMENT": "production", "CORS_ORIGINS": "https://shop.example"}, false},
		{"negative reload interval", map[string]string{"RELOAD_INTERVAL": "-1m"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateEnv(t)
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			_, err := LoadWithKoanf()
			if tt.wantErr && err == nil {
				t.Error("LoadWithKoanf() expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("LoadWithKoanf() unexpected error = %v", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	isolateEnv(t)
	t.Setenv("HTTP_PORT", "4000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 4000 {
		t.Errorf("Server.Port = %d, want 4000", cfg.Server.Port)
	}
}

func TestGetKoanfInstance(t *testing.T) {
	k1 := GetKoanfInstance()
	k2 := GetKoanfInstance()
	if k1 == nil || k1 == k2 {
		t.Error("GetKoanfInstance() should return distinct non-nil instances")
	}
}
