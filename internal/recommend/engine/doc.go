// Shoprec - E-commerce Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

// Package engine is the recommendation service facade.
//
// An Engine holds the current snapshot behind an atomic pointer. Load builds
// a replacement and swaps it in; a failed build leaves the old snapshot
// serving. Latent factor requests share rank-k factorizations through an LRU
// cache keyed by snapshot fingerprint and rank, and concurrent misses for one
// key compute it once.
//
//	eng, err := engine.New(cfg, logger)
//	if _, err := eng.Load(ctx, interactions); err != nil {
//	    return err
//	}
//	resp, err := eng.Recommend(ctx, engine.Request{
//	    Strategy: algorithms.StrategyLatent,
//	    UserID:   "A3NHUQ33CFH3VM",
//	    N:        5,
//	})
package engine
