// Shoprec - E-commerce Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

/*
Package config loads and validates shoprec configuration.

# Configuration Sources

Configuration is layered with koanf v2, later layers overriding earlier ones:

 1. Built-in defaults (defaultConfig)
 2. Optional YAML file: CONFIG_PATH, else config.yaml / config.yml in the
    working directory, else /etc/shoprec/config.yaml
 3. Environment variables listed below

# Environment Variables

HTTP Server (ServerConfig):
  - HTTP_HOST: Bind address (default: 0.0.0.0)
  - HTTP_PORT: Listen port (default: 3857)
  - HTTP_READ_TIMEOUT, HTTP_WRITE_TIMEOUT, HTTP_IDLE_TIMEOUT, HTTP_SHUTDOWN_TIMEOUT
  - REQUEST_TIMEOUT: Handler timeout (default: 60s)
  - CORS_ORIGINS: Comma-separated allowed origins (default: *)
  - RATE_LIMIT_REQUESTS: Requests per IP per window, 0 disables (default: 100)
  - RATE_LIMIT_WINDOW: Rate limit window (default: 1m)
  - ENVIRONMENT: development, staging, production (default: development)

Dataset (DataConfig):
  - RATINGS_PATH: Headerless ratings CSV (default: data/ratings_Electronics.csv)
  - PRODUCTS_PATH: Optional ';'-separated catalog CSV
  - USERS_PATH: Optional user directory CSV
  - DUCKDB_PATH: DuckDB database used for parsing (default: :memory:)
  - DUCKDB_THREADS, DUCKDB_MAX_MEMORY (default: 0, 2GB)
  - RELOAD_INTERVAL: Periodic reload, 0 loads once (default: 0)
  - LOAD_TIMEOUT: Per-load timeout (default: 10m)

Recommendation Engine (RecommendConfig):
  - MIN_INTERACTIONS_FOR_USER (default: 50)
  - MIN_INTERACTIONS_FOR_RANKING (default: 50)
  - SVD_RANK, SVD_MAX_RANK (default: 50, 200)
  - MAX_RECOMMENDATIONS, DEFAULT_RECOMMENDATIONS (default: 20, 5)
  - SIMILAR_USERS_LIMIT (default: 10)
  - NEIGHBORHOOD_WORKERS, NEIGHBORHOOD_CHUNK_SIZE (default: NumCPU, 512)
  - FACTORIZATION_CACHE_SIZE, FACTORIZATION_CACHE_TTL (default: 8, 24h)

Logging (LoggingConfig):
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json, console (default: json)
  - LOG_CALLER: Include caller file:line (default: false)

# Validation

Validate applies go-playground/validator struct tags through the
validation package, then cross-field rules: CORS wildcards are refused in
production and the recommend section must form a valid recommend.Config.

# Usage

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	engine, err := engine.New(cfg.Recommend.EngineConfig(), logger)
*/
package config
