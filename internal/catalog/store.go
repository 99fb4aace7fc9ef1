// Shoprec - E-commerce Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package catalog

import (
	"strings"
	"sync/atomic"
	"time"
)

// Store holds the catalog and user directory currently served. Both are
// replaced together so readers never see a catalog from one load with a
// directory from another.
type Store struct {
	current atomic.Pointer[storeState]
}

type storeState struct {
	catalog   *Catalog
	directory *Directory
	loadedAt  time.Time
}

// NewStore returns a store serving an empty catalog and directory.
func NewStore() *Store {
	s := &Store{}
	s.current.Store(&storeState{catalog: New(nil), directory: NewDirectory(nil)})
	return s
}

// Swap replaces the catalog and directory. Nil arguments become empty.
func (s *Store) Swap(c *Catalog, d *Directory) {
	if c == nil {
		c = New(nil)
	}
	if d == nil {
		d = NewDirectory(nil)
	}
	s.current.Store(&storeState{catalog: c, directory: d, loadedAt: time.Now()})
}

// Catalog returns the current catalog.
func (s *Store) Catalog() *Catalog {
	return s.current.Load().catalog
}

// Directory returns the current user directory.
func (s *Store) Directory() *Directory {
	return s.current.Load().directory
}

// LoadedAt returns when the current pair was swapped in, zero if never.
func (s *Store) LoadedAt() time.Time {
	return s.current.Load().loadedAt
}

// Legacy storefront sort labels.
var sortLabels = map[string]string{
	"relevancia": SortRelevance,
	"↓ precio":   SortPriceAsc,
	"↑ precio":   SortPriceDesc,
	"popular":    SortPopular,
}

// NormalizeSort maps a sort order or storefront label to a sort order.
// ok is false for unknown input.
func NormalizeSort(s string) (order string, ok bool) {
	if ValidSort(s) {
		if s == "" {
			return SortRelevance, true
		}
		return s, true
	}
	order, ok = sortLabels[strings.ToLower(strings.TrimSpace(s))]
	return order, ok
}
