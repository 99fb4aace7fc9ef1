// Shoprec - E-commerce Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package recommend

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
	"sync"
)

// Interaction represents one recorded rating of a product by a user.
type Interaction struct {
	// UserID is the original user identifier from the ratings source.
	UserID string `json:"user_id"`

	// ProductID is the original product identifier from the ratings source.
	ProductID string `json:"product_id"`

	// Rating is the explicit rating value. The rating domain is strictly
	// positive, so 0 is free to mean "no interaction" inside the matrix.
	Rating float64 `json:"rating"`
}

// Scored is a ranked product with a strategy-specific score.
// Scores from different strategies are not comparable.
type Scored struct {
	ProductID string  `json:"product_id"`
	Score     float64 `json:"score"`
}

// ProductStats holds per-product aggregates over the filtered interaction set.
type ProductStats struct {
	AvgRating   float64 `json:"avg_rating"`
	RatingCount int     `json:"rating_count"`
}

// InteractionStore is an append-only collection of interactions.
// Snapshots are built from a copy of its contents, so later appends never
// affect a snapshot that already exists.
type InteractionStore struct {
	mu           sync.RWMutex
	interactions []Interaction
}

// NewInteractionStore creates an empty store with the given initial capacity.
func NewInteractionStore(capacity int) *InteractionStore {
	if capacity < 0 {
		capacity = 0
	}
	return &InteractionStore{
		interactions: make([]Interaction, 0, capacity),
	}
}

// Add appends a single interaction.
func (s *InteractionStore) Add(i Interaction) {
	s.mu.Lock()
	s.interactions = append(s.interactions, i)
	s.mu.Unlock()
}

// AddAll appends interactions in order.
func (s *InteractionStore) AddAll(items []Interaction) {
	s.mu.Lock()
	s.interactions = append(s.interactions, items...)
	s.mu.Unlock()
}

// Len returns the number of stored interactions.
func (s *InteractionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.interactions)
}

// Interactions returns a copy of the stored interactions in insertion order.
func (s *InteractionStore) Interactions() []Interaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Interaction, len(s.interactions))
	copy(out, s.interactions)
	return out
}

// Fingerprint returns the content fingerprint of the current contents.
func (s *InteractionStore) Fingerprint() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Fingerprint(s.interactions, 0)
}

// Fingerprint computes a SHA-256 content hash over an interaction sequence
// and the user activity threshold it is built with. Two snapshots with the same
// fingerprint have identical matrices, indices, and statistics.
func Fingerprint(interactions []Interaction, minInteractionsForUser int) string {
	h := sha256.New()
	var buf [8]byte

	binary.LittleEndian.PutUint64(buf[:], uint64(int64(minInteractionsForUser)))
	h.Write(buf[:])

	for i := range interactions {
		h.Write([]byte(interactions[i].UserID))
		h.Write([]byte{0})
		h.Write([]byte(interactions[i].ProductID))
		h.Write([]byte{0})
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(interactions[i].Rating))
		h.Write(buf[:])
	}

	return hex.EncodeToString(h.Sum(nil))
}
