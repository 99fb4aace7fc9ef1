// Shoprec - E-commerce Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/rs/zerolog"

	"github.com/tomtom215/shoprec/internal/config"
	"github.com/tomtom215/shoprec/internal/logging"
)

// memoryPath selects an in-memory DuckDB database.
const memoryPath = ":memory:"

// DB wraps the DuckDB connection used to parse dataset files.
type DB struct {
	conn    *sql.DB
	cfg     *config.DataConfig
	breaker *CircuitBreaker
	logger  zerolog.Logger
}

// Open opens DuckDB as configured. The parent directory of a file-backed
// database is created if needed.
func Open(cfg *config.DataConfig) (*DB, error) {
	numThreads := cfg.Threads
	if numThreads <= 0 {
		numThreads = runtime.NumCPU()
	}

	path := cfg.DuckDBPath
	if path == "" {
		path = memoryPath
	}
	if path != memoryPath {
		if dir := filepath.Dir(path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
			}
		}
	}

	// Extensions are never fetched; read_csv is built in.
	connStr := fmt.Sprintf("%s?threads=%d&max_memory=%s&autoinstall_known_extensions=false&autoload_known_extensions=false",
		path, numThreads, cfg.MaxMemory)

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	logger := logging.WithComponent("ingest")
	logger.Debug().Str("path", path).Int("threads", numThreads).Msg("DuckDB opened")

	return &DB{
		conn:    conn,
		cfg:     cfg,
		breaker: NewCircuitBreaker("ingest", logger),
		logger:  logger,
	}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db == nil || db.conn == nil {
		return nil
	}
	return db.conn.Close()
}

// Ping verifies the connection is usable.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// Conn returns the underlying SQL connection.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Breaker returns the circuit breaker guarding dataset loads.
func (db *DB) Breaker() *CircuitBreaker {
	return db.breaker
}
