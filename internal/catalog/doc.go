// Shoprec - E-commerce Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

// Package catalog holds product display metadata and user display names.
//
// The recommendation core works on opaque ids only. The API uses a Catalog
// to attach names, brands, prices, and images to recommended ids, and a
// Directory to show user names. Both are immutable once built and replaced
// wholesale on reload.
package catalog
