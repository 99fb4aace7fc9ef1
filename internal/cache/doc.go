// Shoprec - E-commerce Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

/*
Package cache provides a generic, thread-safe LRU cache with TTL expiry.

The recommendation engine keeps truncated SVD factorizations here, keyed by
snapshot fingerprint and rank, so repeated latent requests skip the
decomposition:

	factorizations := cache.NewLRUCache[*algorithms.Factorization](16, time.Hour)
	if f, ok := factorizations.Get(key); ok {
	    return f
	}

Expired entries are dropped lazily on Get and by CleanupExpired. Purge
empties the cache and is called when a new snapshot changes the dataset.
Stats reports hits, misses and evictions for /api/v1/stats.
*/
package cache
