// Shoprec - E-commerce Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

// Package database reads the shoprec dataset files through DuckDB.
//
// # Overview
//
// DuckDB is used as an embedded CSV engine. Nothing is persisted: every load
// parses the configured files with read_csv and hands plain Go values to the
// recommendation engine and the catalog.
//
// # Files
//
//   - database.go: connection lifecycle
//   - ingest.go: ratings, catalog and user directory readers
//   - dataset.go: full snapshot load guarded by the circuit breaker
//   - circuit_breaker.go: gobreaker wrapper with Prometheus metrics
//   - errors.go: resource close helpers
//
// # Input Formats
//
// Ratings are headerless, comma-separated rows of user id, product id,
// rating and timestamp. Rows that fail to parse, lack an id, or carry a
// rating of zero or less are dropped. File order is preserved.
//
// The product catalog is ';'-separated with a header row, in Spanish
// (prod_id;nombre_producto;marca;precio;imagen_url;cantidad_resenas) or
// English (product_id;name;brand;price;image_url;review_count). Prices are
// whole cents.
//
// The user directory is comma-separated with user_id and nombre_usuario (or
// name) columns.
//
// # Circuit Breaker
//
// Snapshot loads run through a sony/gobreaker breaker. Three consecutive
// failed loads open the circuit for two minutes; while open, loads fail fast
// with gobreaker.ErrOpenState and the previous snapshot keeps serving.
// Breaker state is exported as shoprec_circuit_breaker_* metrics.
//
// # Usage
//
//	db, err := database.Open(&cfg.Data)
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	ds, err := db.LoadDataset(ctx)
//	if err != nil {
//	    return err
//	}
//	snap, err := eng.Load(ctx, ds.Interactions)
package database
