// Shoprec - E-commerce Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

// Package recommend holds the data model of the recommendation engine:
// rating interactions, the user x product rating matrix built from them,
// stable row and column indices, per-product statistics, and the error
// taxonomy shared by every strategy.
//
// # Snapshots
//
// BuildSnapshot turns raw interactions into an immutable Snapshot. Users with
// fewer than the configured number of interactions (default 50) are dropped;
// rows follow the order in which retained users first appear and columns are
// product ids in ascending order. A cell holds the rating, or 0 for no
// interaction. Product statistics cover only the retained users.
//
// A Snapshot is never modified after construction. New data always yields a
// new Snapshot, so readers can share one without locking.
//
// # Errors
//
// Failures wrap one of the sentinel errors (ErrDatasetUnavailable,
// ErrNoUsersSurvived, ErrInvalidUserIndex, ErrDecomposition, ErrUnknownUser,
// ErrInvalidRequest) and should be matched with errors.Is. An empty result is
// not an error.
//
// # Usage
//
//	snap, err := recommend.BuildSnapshot(interactions, 50)
//	if errors.Is(err, recommend.ErrNoUsersSurvived) {
//	    // threshold too strict for this dataset
//	}
package recommend
