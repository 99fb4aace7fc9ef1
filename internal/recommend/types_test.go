// Shoprec - E-commerce Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package recommend

import (
	"errors"
	"strings"
	"sync"
	"testing"
)

func TestInteractionStore_AddAndCopy(t *testing.T) {
	store := NewInteractionStore(4)
	store.Add(Interaction{UserID: "u1", ProductID: "p1", Rating: 5})
	store.AddAll([]Interaction{
		{UserID: "u2", ProductID: "p1", Rating: 3},
		{UserID: "u1", ProductID: "p2", Rating: 4},
	})

	if store.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", store.Len())
	}

	got := store.Interactions()
	if got[1].UserID != "u2" || got[2].ProductID != "p2" {
		t.Errorf("Interactions() order = %+v", got)
	}

	got[0].Rating = 1
	if store.Interactions()[0].Rating != 5 {
		t.Error("Interactions() returned storage alias, want copy")
	}
}

func TestInteractionStore_SnapshotUnaffectedByAppend(t *testing.T) {
	store := NewInteractionStore(0)
	store.AddAll(repeatUser("u1", 2, 4))

	snap, err := BuildSnapshot(store.Interactions(), 1)
	if err != nil {
		t.Fatalf("BuildSnapshot() error = %v", err)
	}
	cols := snap.Matrix.Cols()

	store.Add(Interaction{UserID: "u1", ProductID: "new", Rating: 5})
	store.Add(Interaction{UserID: "u9", ProductID: "new", Rating: 5})

	if snap.Matrix.Cols() != cols || snap.Users.Len() != 1 {
		t.Error("existing snapshot changed after store append")
	}
}

func TestInteractionStore_ConcurrentAdd(t *testing.T) {
	store := NewInteractionStore(0)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				store.Add(Interaction{UserID: "u", ProductID: "p", Rating: 1})
			}
		}()
	}
	wg.Wait()

	if store.Len() != 1000 {
		t.Errorf("Len() = %d, want 1000", store.Len())
	}
}

func TestFingerprint(t *testing.T) {
	a := []Interaction{{UserID: "u1", ProductID: "p1", Rating: 5}}
	b := []Interaction{{UserID: "u1", ProductID: "p1", Rating: 4}}
	// Field boundaries are delimited, so shifting bytes between ids differs.
	c := []Interaction{{UserID: "u", ProductID: "1p1", Rating: 5}}

	tests := []struct {
		name  string
		left  []Interaction
		right []Interaction
		equal bool
	}{
		{"same content", a, a, true},
		{"different rating", a, b, false},
		{"shifted identifiers", a, c, false},
		{"empty vs non-empty", nil, a, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fingerprint(tt.left, 0) == Fingerprint(tt.right, 0)
			if got != tt.equal {
				t.Errorf("fingerprints equal = %v, want %v", got, tt.equal)
			}
		})
	}

	store := NewInteractionStore(1)
	store.AddAll(a)
	if store.Fingerprint() != Fingerprint(a, 0) {
		t.Error("store fingerprint differs from Fingerprint() over same content")
	}
}

func TestError_WrapsSentinel(t *testing.T) {
	err := NewError("factorize", ErrDecomposition, "k=%d rows=%d", 5, 4)

	if !errors.Is(err, ErrDecomposition) {
		t.Error("errors.Is(err, ErrDecomposition) = false")
	}
	if errors.Is(err, ErrInvalidUserIndex) {
		t.Error("errors.Is(err, ErrInvalidUserIndex) = true")
	}

	msg := err.Error()
	for _, part := range []string{"factorize", "decomposition error", "k=5 rows=4"} {
		if !strings.Contains(msg, part) {
			t.Errorf("Error() = %q, missing %q", msg, part)
		}
	}

	var typed *Error
	if !errors.As(err, &typed) || typed.Op != "factorize" {
		t.Errorf("errors.As() op = %v", typed)
	}
}
