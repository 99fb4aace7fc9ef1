// Shoprec - E-commerce Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package database

import (
	"context"
	"time"

	"github.com/tomtom215/shoprec/internal/catalog"
	"github.com/tomtom215/shoprec/internal/recommend"
)

// Dataset is one consistent read of every configured source file.
type Dataset struct {
	Interactions []recommend.Interaction
	Products     []catalog.Product
	Users        []catalog.User
	LoadedAt     time.Time
}

// LoadDataset reads the ratings file and, when configured, the product
// catalog and user directory. Only the ratings file is mandatory: a failed
// catalog or directory read is logged and that part of the dataset is left
// empty. The whole load runs under the ingest circuit breaker and is bounded
// by DataConfig.LoadTimeout.
func (db *DB) LoadDataset(ctx context.Context) (*Dataset, error) {
	if db.cfg.LoadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, db.cfg.LoadTimeout)
		defer cancel()
	}

	return castResult[Dataset](db.breaker.execute(func() (any, error) {
		return db.loadDataset(ctx)
	}))
}

func (db *DB) loadDataset(ctx context.Context) (*Dataset, error) {
	interactions, err := db.LoadInteractions(ctx, db.cfg.RatingsPath)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{Interactions: interactions}

	if db.cfg.ProductsPath != "" {
		products, err := db.LoadCatalog(ctx, db.cfg.ProductsPath)
		if err != nil {
			db.logger.Warn().Err(err).Str("path", db.cfg.ProductsPath).Msg("Product catalog unavailable, serving ids only")
		} else {
			ds.Products = products
		}
	}

	if db.cfg.UsersPath != "" {
		users, err := db.LoadUsers(ctx, db.cfg.UsersPath)
		if err != nil {
			db.logger.Warn().Err(err).Str("path", db.cfg.UsersPath).Msg("User directory unavailable, serving ids only")
		} else {
			ds.Users = users
		}
	}

	ds.LoadedAt = time.Now()
	return ds, nil
}
