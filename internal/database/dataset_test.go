// Shoprec - E-commerce Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/tomtom215/shoprec/internal/config"
	"github.com/tomtom215/shoprec/internal/recommend"
)

func TestLoadDataset(t *testing.T) {
	ratings := writeFile(t, "ratings.csv", "u1,p1,5,1\nu2,p1,3,2\nu2,p2,4,3\n")
	products := writeFile(t, "products.csv", "prod_id;nombre_producto;marca;precio;imagen_url;cantidad_resenas\np1;Cable;Volt;999;;4\n")
	users := writeFile(t, "users.csv", "user_id,nombre_usuario\nu1,Ana\n")

	db := setupTestDB(t, &config.DataConfig{
		RatingsPath:  ratings,
		ProductsPath: products,
		UsersPath:    users,
	})

	ds, err := db.LoadDataset(context.Background())
	if err != nil {
		t.Fatalf("LoadDataset() error = %v", err)
	}
	if len(ds.Interactions) != 3 {
		t.Errorf("Interactions = %d, want 3", len(ds.Interactions))
	}
	if len(ds.Products) != 1 || ds.Products[0].PriceMinor != 999 {
		t.Errorf("Products = %+v, want one product priced 999", ds.Products)
	}
	if len(ds.Users) != 1 || ds.Users[0].Name != "Ana" {
		t.Errorf("Users = %+v, want Ana", ds.Users)
	}
	if ds.LoadedAt.IsZero() {
		t.Error("LoadedAt not set")
	}
}

func TestLoadDataset_OptionalSourcesFailSoft(t *testing.T) {
	ratings := writeFile(t, "ratings.csv", "u1,p1,5,1\n")
	dir := t.TempDir()

	db := setupTestDB(t, &config.DataConfig{
		RatingsPath:  ratings,
		ProductsPath: filepath.Join(dir, "missing-products.csv"),
		UsersPath:    filepath.Join(dir, "missing-users.csv"),
	})

	ds, err := db.LoadDataset(context.Background())
	if err != nil {
		t.Fatalf("LoadDataset() error = %v", err)
	}
	if len(ds.Interactions) != 1 {
		t.Errorf("Interactions = %d, want 1", len(ds.Interactions))
	}
	if ds.Products != nil || ds.Users != nil {
		t.Errorf("expected empty catalog and directory, got %+v / %+v", ds.Products, ds.Users)
	}
}

func TestLoadDataset_MissingRatings(t *testing.T) {
	db := setupTestDB(t, &config.DataConfig{
		RatingsPath: filepath.Join(t.TempDir(), "missing.csv"),
	})

	_, err := db.LoadDataset(context.Background())
	if !errors.Is(err, recommend.ErrDatasetUnavailable) {
		t.Errorf("LoadDataset() error = %v, want ErrDatasetUnavailable", err)
	}
}
