// Shoprec - E-commerce Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package recommend

import (
	"errors"
	"fmt"
	"math"
	"testing"
)

// repeatUser returns n interactions of user over products p0..p(n-1).
func repeatUser(user string, n int, rating float64) []Interaction {
	out := make([]Interaction, n)
	for i := 0; i < n; i++ {
		out[i] = Interaction{UserID: user, ProductID: fmt.Sprintf("p%03d", i), Rating: rating}
	}
	return out
}

func TestBuildSnapshot_Errors(t *testing.T) {
	tests := []struct {
		name         string
		interactions []Interaction
		threshold    int
		wantErr      error
	}{
		{
			name:         "empty interactions",
			interactions: nil,
			threshold:    1,
			wantErr:      ErrDatasetUnavailable,
		},
		{
			name:         "no user reaches threshold",
			interactions: repeatUser("u1", 3, 4),
			threshold:    4,
			wantErr:      ErrNoUsersSurvived,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap, err := BuildSnapshot(tt.interactions, tt.threshold)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("BuildSnapshot() error = %v, want %v", err, tt.wantErr)
			}
			if snap != nil {
				t.Error("BuildSnapshot() returned snapshot on error")
			}
		})
	}
}

func TestBuildSnapshot_EmptyAndThresholdErrorsDiffer(t *testing.T) {
	_, emptyErr := BuildSnapshot(nil, 50)
	_, thresholdErr := BuildSnapshot(repeatUser("u1", 2, 5), 50)

	if errors.Is(emptyErr, ErrNoUsersSurvived) {
		t.Error("empty dataset reported as threshold failure")
	}
	if errors.Is(thresholdErr, ErrDatasetUnavailable) {
		t.Error("threshold failure reported as empty dataset")
	}
}

func TestBuildSnapshot_ThresholdFiltering(t *testing.T) {
	var interactions []Interaction
	interactions = append(interactions, repeatUser("heavy", 5, 4)...)
	interactions = append(interactions, repeatUser("light", 2, 3)...)
	interactions = append(interactions, repeatUser("exact", 3, 5)...)

	counts := map[string]int{"heavy": 5, "light": 2, "exact": 3}

	for threshold := 1; threshold <= 6; threshold++ {
		t.Run(fmt.Sprintf("t=%d", threshold), func(t *testing.T) {
			snap, err := BuildSnapshot(interactions, threshold)
			if threshold > 5 {
				if !errors.Is(err, ErrNoUsersSurvived) {
					t.Fatalf("BuildSnapshot() error = %v, want ErrNoUsersSurvived", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("BuildSnapshot() error = %v", err)
			}

			for r := 0; r < snap.Matrix.Rows(); r++ {
				id := snap.Users.ID(r)
				if counts[id] < threshold {
					t.Errorf("row %d user %q has %d interactions, below threshold %d", r, id, counts[id], threshold)
				}
			}
			for id, n := range counts {
				_, ok := snap.Users.Position(id)
				if n >= threshold && !ok {
					t.Errorf("user %q with %d interactions missing at threshold %d", id, n, threshold)
				}
			}
		})
	}
}

func TestBuildSnapshot_RowOrderAndColumns(t *testing.T) {
	interactions := []Interaction{
		{UserID: "zed", ProductID: "p3", Rating: 5},
		{UserID: "amy", ProductID: "p1", Rating: 4},
		{UserID: "zed", ProductID: "p1", Rating: 2},
		{UserID: "bob", ProductID: "p9", Rating: 1},
		{UserID: "amy", ProductID: "p2", Rating: 3},
	}

	snap, err := BuildSnapshot(interactions, 2)
	if err != nil {
		t.Fatalf("BuildSnapshot() error = %v", err)
	}

	wantUsers := []string{"zed", "amy"}
	if got := snap.Users.IDs(); fmt.Sprint(got) != fmt.Sprint(wantUsers) {
		t.Errorf("users = %v, want %v", got, wantUsers)
	}

	// bob is filtered out, so p9 is not a column.
	wantProducts := []string{"p1", "p2", "p3"}
	if got := snap.Products.IDs(); fmt.Sprint(got) != fmt.Sprint(wantProducts) {
		t.Errorf("products = %v, want %v", got, wantProducts)
	}

	want := [][]float64{
		{2, 0, 5},
		{4, 3, 0},
	}
	for r := range want {
		for c := range want[r] {
			if got := snap.Matrix.At(r, c); got != want[r][c] {
				t.Errorf("At(%d, %d) = %v, want %v", r, c, got, want[r][c])
			}
		}
	}

	if snap.Interactions != 4 {
		t.Errorf("Interactions = %d, want 4", snap.Interactions)
	}
}

func TestBuildSnapshot_ProductStatsUseFilteredSet(t *testing.T) {
	interactions := []Interaction{
		{UserID: "a", ProductID: "x", Rating: 5},
		{UserID: "a", ProductID: "y", Rating: 3},
		{UserID: "b", ProductID: "x", Rating: 3},
		{UserID: "b", ProductID: "y", Rating: 1},
		{UserID: "c", ProductID: "x", Rating: 1},
	}

	snap, err := BuildSnapshot(interactions, 2)
	if err != nil {
		t.Fatalf("BuildSnapshot() error = %v", err)
	}

	if len(snap.Stats) != snap.Products.Len() {
		t.Fatalf("len(Stats) = %d, want %d", len(snap.Stats), snap.Products.Len())
	}
	for _, id := range snap.Products.IDs() {
		if _, ok := snap.Stats[id]; !ok {
			t.Errorf("Stats missing column product %q", id)
		}
	}

	x := snap.Stats["x"]
	if x.RatingCount != 2 || x.AvgRating != 4 {
		t.Errorf("Stats[x] = %+v, want {AvgRating:4 RatingCount:2}", x)
	}
	y := snap.Stats["y"]
	if y.RatingCount != 2 || y.AvgRating != 2 {
		t.Errorf("Stats[y] = %+v, want {AvgRating:2 RatingCount:2}", y)
	}
}

func TestBuildSnapshot_DuplicatePairLastWins(t *testing.T) {
	interactions := []Interaction{
		{UserID: "a", ProductID: "x", Rating: 1},
		{UserID: "a", ProductID: "x", Rating: 4},
	}

	snap, err := BuildSnapshot(interactions, 1)
	if err != nil {
		t.Fatalf("BuildSnapshot() error = %v", err)
	}
	if got := snap.Matrix.At(0, 0); got != 4 {
		t.Errorf("At(0, 0) = %v, want 4 (last rating wins)", got)
	}
	if got := snap.Stats["x"]; got.RatingCount != 2 || got.AvgRating != 2.5 {
		t.Errorf("Stats[x] = %+v, want {AvgRating:2.5 RatingCount:2}", got)
	}
}

func TestRatingMatrix_Accessors(t *testing.T) {
	m := NewRatingMatrix([][]float64{
		{3, 0, 4},
		{0, 0, 0},
	})

	if m.Rows() != 2 || m.Cols() != 3 {
		t.Fatalf("dims = %dx%d, want 2x3", m.Rows(), m.Cols())
	}
	if got := m.Norm(0); math.Abs(got-5) > 1e-12 {
		t.Errorf("Norm(0) = %v, want 5", got)
	}
	if got := m.Norm(1); got != 0 {
		t.Errorf("Norm(1) = %v, want 0", got)
	}
	if got := m.Rated(0); fmt.Sprint(got) != "[0 2]" {
		t.Errorf("Rated(0) = %v, want [0 2]", got)
	}
	if got := m.Rated(1); len(got) != 0 {
		t.Errorf("Rated(1) = %v, want empty", got)
	}
	if m.NonZero() != 2 {
		t.Errorf("NonZero() = %d, want 2", m.NonZero())
	}
	if m.ValidRow(-1) || m.ValidRow(2) || !m.ValidRow(1) {
		t.Error("ValidRow() bounds incorrect")
	}
}

func TestSnapshot_FingerprintDependsOnThreshold(t *testing.T) {
	interactions := repeatUser("u", 4, 5)

	a, err := BuildSnapshot(interactions, 1)
	if err != nil {
		t.Fatalf("BuildSnapshot() error = %v", err)
	}
	b, err := BuildSnapshot(interactions, 2)
	if err != nil {
		t.Fatalf("BuildSnapshot() error = %v", err)
	}
	c, err := BuildSnapshot(interactions, 1)
	if err != nil {
		t.Fatalf("BuildSnapshot() error = %v", err)
	}

	if a.Fingerprint == b.Fingerprint {
		t.Error("fingerprint identical for different thresholds")
	}
	if a.Fingerprint != c.Fingerprint {
		t.Error("fingerprint differs for identical input")
	}
}

func TestNewBuilder_DefaultThreshold(t *testing.T) {
	if b := NewBuilder(0); b.MinInteractionsForUser != DefaultMinInteractionsForUser {
		t.Errorf("NewBuilder(0).MinInteractionsForUser = %d, want %d", b.MinInteractionsForUser, DefaultMinInteractionsForUser)
	}

	b := NewBuilder(2)
	snap, err := b.Build(repeatUser("u", 2, 3))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if snap.MinInteractionsForUser != 2 {
		t.Errorf("MinInteractionsForUser = %d, want 2", snap.MinInteractionsForUser)
	}
}
