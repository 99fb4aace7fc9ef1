// Shoprec - E-commerce Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package recommend

import (
	"math"
	"sort"
	"time"
)

// DefaultMinInteractionsForUser is the default user activity threshold.
const DefaultMinInteractionsForUser = 50

// Index is a bijection between dense zero-based positions and identifiers.
type Index struct {
	ids       []string
	positions map[string]int
}

func newIndex(ids []string) *Index {
	positions := make(map[string]int, len(ids))
	for i, id := range ids {
		positions[id] = i
	}
	return &Index{ids: ids, positions: positions}
}

// Len returns the number of identifiers.
func (x *Index) Len() int {
	return len(x.ids)
}

// ID returns the identifier at pos. It panics if pos is out of range.
func (x *Index) ID(pos int) string {
	return x.ids[pos]
}

// Position returns the position of id.
func (x *Index) Position(id string) (int, bool) {
	pos, ok := x.positions[id]
	return pos, ok
}

// IDs returns a copy of all identifiers in position order.
func (x *Index) IDs() []string {
	out := make([]string, len(x.ids))
	copy(out, x.ids)
	return out
}

// RatingMatrix is an immutable user x product rating grid stored row-major.
// A cell value of 0 means the user has not rated the product.
type RatingMatrix struct {
	rows  int
	cols  int
	data  []float64
	norms []float64
	rated [][]int
}

// NewRatingMatrix builds a matrix from row slices of equal length.
// The input is copied.
func NewRatingMatrix(values [][]float64) *RatingMatrix {
	rows := len(values)
	cols := 0
	if rows > 0 {
		cols = len(values[0])
	}
	data := make([]float64, rows*cols)
	for r, row := range values {
		copy(data[r*cols:(r+1)*cols], row)
	}
	return newRatingMatrix(rows, cols, data)
}

func newRatingMatrix(rows, cols int, data []float64) *RatingMatrix {
	m := &RatingMatrix{
		rows:  rows,
		cols:  cols,
		data:  data,
		norms: make([]float64, rows),
		rated: make([][]int, rows),
	}
	for r := 0; r < rows; r++ {
		var sum float64
		row := data[r*cols : (r+1)*cols]
		for c, v := range row {
			sum += v * v
			if v > 0 {
				m.rated[r] = append(m.rated[r], c)
			}
		}
		m.norms[r] = math.Sqrt(sum)
	}
	return m
}

// Rows returns the number of users.
func (m *RatingMatrix) Rows() int {
	return m.rows
}

// Cols returns the number of products.
func (m *RatingMatrix) Cols() int {
	return m.cols
}

// At returns the rating at (r, c).
func (m *RatingMatrix) At(r, c int) float64 {
	return m.data[r*m.cols+c]
}

// Row returns row r. The returned slice aliases matrix storage and must not
// be modified.
func (m *RatingMatrix) Row(r int) []float64 {
	return m.data[r*m.cols : (r+1)*m.cols : (r+1)*m.cols]
}

// Norm returns the Euclidean norm of row r.
func (m *RatingMatrix) Norm(r int) float64 {
	return m.norms[r]
}

// Rated returns the ascending column positions with a positive rating in row r.
// The returned slice must not be modified.
func (m *RatingMatrix) Rated(r int) []int {
	return m.rated[r]
}

// ValidRow reports whether r is a row of the matrix.
func (m *RatingMatrix) ValidRow(r int) bool {
	return r >= 0 && r < m.rows
}

// NonZero returns the number of rated cells.
func (m *RatingMatrix) NonZero() int {
	n := 0
	for _, r := range m.rated {
		n += len(r)
	}
	return n
}

// Snapshot is the immutable product of one matrix build: the rating matrix,
// its row and column indices, and per-product statistics. A rebuild always
// produces a new Snapshot.
type Snapshot struct {
	Matrix   *RatingMatrix
	Users    *Index
	Products *Index
	Stats    map[string]ProductStats

	// Fingerprint identifies the interaction content the snapshot was built from.
	Fingerprint string

	// MinInteractionsForUser is the activity threshold used for the build.
	MinInteractionsForUser int

	// Interactions is the number of raw interactions retained after filtering.
	Interactions int

	BuiltAt time.Time
}

// Builder builds snapshots with a fixed user activity threshold.
type Builder struct {
	MinInteractionsForUser int
}

// NewBuilder returns a Builder using the default threshold when t <= 0.
func NewBuilder(t int) *Builder {
	if t <= 0 {
		t = DefaultMinInteractionsForUser
	}
	return &Builder{MinInteractionsForUser: t}
}

// Build builds a snapshot from interactions.
func (b *Builder) Build(interactions []Interaction) (*Snapshot, error) {
	return BuildSnapshot(interactions, b.MinInteractionsForUser)
}

// BuildSnapshot filters users with fewer than minInteractions raw interactions,
// pivots the remaining interactions into a rating matrix, and computes
// product statistics over the retained interactions.
//
// Rows follow the order in which retained users first appear. Columns are the
// products rated by retained users in ascending identifier order. When a user
// rates a product more than once the last rating is stored in the matrix,
// while statistics count every retained interaction.
func BuildSnapshot(interactions []Interaction, minInteractions int) (*Snapshot, error) {
	const op = "build snapshot"

	if len(interactions) == 0 {
		return nil, NewError(op, ErrDatasetUnavailable, "no interactions")
	}

	counts := make(map[string]int)
	for i := range interactions {
		counts[interactions[i].UserID]++
	}

	var (
		userIDs    []string
		retained   int
		seenUsers  = make(map[string]bool)
		productSet = make(map[string]struct{})
		sums       = make(map[string]float64)
		ratingN    = make(map[string]int)
	)

	for i := range interactions {
		in := &interactions[i]
		if counts[in.UserID] < minInteractions {
			continue
		}
		retained++
		if !seenUsers[in.UserID] {
			seenUsers[in.UserID] = true
			userIDs = append(userIDs, in.UserID)
		}
		productSet[in.ProductID] = struct{}{}
		sums[in.ProductID] += in.Rating
		ratingN[in.ProductID]++
	}

	if len(userIDs) == 0 {
		return nil, NewError(op, ErrNoUsersSurvived, "threshold %d, %d distinct users", minInteractions, len(counts))
	}

	productIDs := make([]string, 0, len(productSet))
	for id := range productSet {
		productIDs = append(productIDs, id)
	}
	sort.Strings(productIDs)

	users := newIndex(userIDs)
	products := newIndex(productIDs)

	rows, cols := users.Len(), products.Len()
	data := make([]float64, rows*cols)
	for i := range interactions {
		in := &interactions[i]
		r, ok := users.Position(in.UserID)
		if !ok {
			continue
		}
		c, _ := products.Position(in.ProductID)
		data[r*cols+c] = in.Rating
	}

	stats := make(map[string]ProductStats, cols)
	for _, id := range productIDs {
		n := ratingN[id]
		stats[id] = ProductStats{
			AvgRating:   sums[id] / float64(n),
			RatingCount: n,
		}
	}

	return &Snapshot{
		Matrix:                 newRatingMatrix(rows, cols, data),
		Users:                  users,
		Products:               products,
		Stats:                  stats,
		Fingerprint:            Fingerprint(interactions, minInteractions),
		MinInteractionsForUser: minInteractions,
		Interactions:           retained,
		BuiltAt:                time.Now(),
	}, nil
}
