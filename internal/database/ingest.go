// Shoprec - E-commerce Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/shoprec/internal/catalog"
	"github.com/tomtom215/shoprec/internal/metrics"
	"github.com/tomtom215/shoprec/internal/recommend"
)

// Ingest sources, used as metric labels.
const (
	SourceRatings  = "ratings"
	SourceProducts = "products"
	SourceUsers    = "users"
)

// ratingsQuery reads the headerless ratings file in file order. Rows that
// fail to parse, lack an id, or have a non-positive rating are dropped.
const ratingsQuery = `
	SELECT user_id, prod_id, rating
	FROM read_csv(?,
		header = false,
		delim = ',',
		quote = '"',
		columns = {'user_id': 'VARCHAR', 'prod_id': 'VARCHAR', 'rating': 'DOUBLE', 'ts': 'VARCHAR'},
		ignore_errors = true,
		null_padding = true)
	WHERE user_id IS NOT NULL AND user_id <> ''
	  AND prod_id IS NOT NULL AND prod_id <> ''
	  AND rating IS NOT NULL AND rating > 0`

// catalogQuery reads the ';'-separated product file as text. Columns are
// matched by header name.
const catalogQuery = `
	SELECT *
	FROM read_csv(?,
		header = true,
		delim = ';',
		all_varchar = true,
		ignore_errors = true)`

// usersQuery reads the comma-separated user directory as text.
const usersQuery = `
	SELECT *
	FROM read_csv(?,
		header = true,
		delim = ',',
		all_varchar = true,
		ignore_errors = true)`

// Accepted header names per catalog field, Spanish first.
var (
	productIDColumns    = []string{"prod_id", "product_id"}
	productNameColumns  = []string{"nombre_producto", "name"}
	productBrandColumns = []string{"marca", "brand"}
	productPriceColumns = []string{"precio", "price"}
	productImageColumns = []string{"imagen_url", "image_url"}
	productReviewsCols  = []string{"cantidad_resenas", "review_count"}
	userIDColumns       = []string{"user_id"}
	userNameColumns     = []string{"nombre_usuario", "name"}
)

// LoadInteractions reads the ratings CSV at path. A missing file wraps
// recommend.ErrDatasetUnavailable.
func (db *DB) LoadInteractions(ctx context.Context, path string) ([]recommend.Interaction, error) {
	if err := checkFile(path); err != nil {
		return nil, recommend.NewError("load interactions", recommend.ErrDatasetUnavailable, "%v", err)
	}

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, ratingsQuery, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ratings %s: %w", path, err)
	}
	defer closeWithLog(rows, db.logger, "rows")

	var interactions []recommend.Interaction
	for rows.Next() {
		var in recommend.Interaction
		if err := rows.Scan(&in.UserID, &in.ProductID, &in.Rating); err != nil {
			return nil, fmt.Errorf("failed to scan rating: %w", err)
		}
		interactions = append(interactions, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ratings: %w", err)
	}

	if len(interactions) == 0 {
		return nil, recommend.NewError("load interactions", recommend.ErrDatasetUnavailable, "no valid ratings in %s", path)
	}

	db.recordIngest(SourceRatings, len(interactions), start)
	return interactions, nil
}

// LoadCatalog reads the product CSV at path. Headers may be Spanish
// (prod_id;nombre_producto;marca;precio;imagen_url;cantidad_resenas) or
// English (product_id;name;brand;price;image_url;review_count). Prices are
// in cents. Rows without an id are skipped; unparsable numbers become 0.
func (db *DB) LoadCatalog(ctx context.Context, path string) ([]catalog.Product, error) {
	if err := checkFile(path); err != nil {
		return nil, err
	}

	start := time.Now()
	table, err := db.readRecords(ctx, catalogQuery, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}

	cols, err := resolveColumns(table.header, map[string][]string{
		"id":      productIDColumns,
		"name":    productNameColumns,
		"brand":   productBrandColumns,
		"price":   productPriceColumns,
		"image":   productImageColumns,
		"reviews": productReviewsCols,
	}, "id")
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}

	products := make([]catalog.Product, 0, len(table.rows))
	for _, row := range table.rows {
		id := cols.get(row, "id")
		if id == "" {
			continue
		}
		products = append(products, catalog.Product{
			ID:          id,
			Name:        cols.get(row, "name"),
			Brand:       cols.get(row, "brand"),
			PriceMinor:  parseMinor(cols.get(row, "price")),
			ImageURL:    cols.get(row, "image"),
			ReviewCount: parseCount(cols.get(row, "reviews")),
		})
	}

	db.recordIngest(SourceProducts, len(products), start)
	return products, nil
}

// LoadUsers reads the user directory CSV at path (user_id plus
// nombre_usuario or name).
func (db *DB) LoadUsers(ctx context.Context, path string) ([]catalog.User, error) {
	if err := checkFile(path); err != nil {
		return nil, err
	}

	start := time.Now()
	table, err := db.readRecords(ctx, usersQuery, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read users %s: %w", path, err)
	}

	cols, err := resolveColumns(table.header, map[string][]string{
		"id":   userIDColumns,
		"name": userNameColumns,
	}, "id", "name")
	if err != nil {
		return nil, fmt.Errorf("users %s: %w", path, err)
	}

	users := make([]catalog.User, 0, len(table.rows))
	for _, row := range table.rows {
		if id := cols.get(row, "id"); id != "" {
			users = append(users, catalog.User{ID: id, Name: cols.get(row, "name")})
		}
	}

	db.recordIngest(SourceUsers, len(users), start)
	return users, nil
}

// textTable is a text result set with its header.
type textTable struct {
	header []string
	rows   [][]string
}

// readRecords runs an all-varchar query and collects every row. NULL cells
// become empty strings.
func (db *DB) readRecords(ctx context.Context, query, path string) (*textTable, error) {
	rows, err := db.conn.QueryContext(ctx, query, path)
	if err != nil {
		return nil, err
	}
	defer closeWithLog(rows, db.logger, "rows")

	header, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	out := &textTable{header: header}
	values := make([]sql.NullString, len(header))
	dest := make([]any, len(header))
	for i := range values {
		dest[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		row := make([]string, len(values))
		for i, v := range values {
			row[i] = strings.TrimSpace(v.String)
		}
		out.rows = append(out.rows, row)
	}
	return out, rows.Err()
}

// columnIndex maps logical field names to header positions.
type columnIndex map[string]int

func (c columnIndex) get(row []string, field string) string {
	if i, ok := c[field]; ok && i < len(row) {
		return row[i]
	}
	return ""
}

// resolveColumns finds each field's position among header names, ignoring
// case and surrounding whitespace. Fields listed in required must be present.
func resolveColumns(header []string, aliases map[string][]string, required ...string) (columnIndex, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		positions[strings.ToLower(strings.TrimSpace(name))] = i
	}

	idx := make(columnIndex, len(aliases))
	for field, names := range aliases {
		for _, name := range names {
			if i, ok := positions[name]; ok {
				idx[field] = i
				break
			}
		}
	}

	for _, field := range required {
		if _, ok := idx[field]; !ok {
			return nil, fmt.Errorf("missing column %s (accepted: %s)", field, strings.Join(aliases[field], ", "))
		}
	}
	return idx, nil
}

// parseMinor parses a price in cents. Decimal input such as "4500.0" is
// rounded down to whole cents.
func parseMinor(s string) int64 {
	if s == "" {
		return 0
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil && v >= 0 {
		return int64(v)
	}
	return 0
}

func parseCount(s string) int {
	if v, err := strconv.Atoi(s); err == nil && v >= 0 {
		return v
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil && v >= 0 {
		return int(v)
	}
	return 0
}

// checkFile reports a missing or unreadable regular file.
func checkFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("file not found: %s", path)
		}
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}

func (db *DB) recordIngest(source string, rows int, start time.Time) {
	d := time.Since(start)
	metrics.RecordIngest(source, rows, d)
	db.logger.Info().Str("source", source).Int("rows", rows).Dur("duration", d).Msg("Dataset file loaded")
}
