// Shoprec - E-commerce Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

// fakeClock lets tests move time forward without sleeping.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func newTestCache[V any](capacity int, ttl time.Duration) (*LRUCache[V], *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewLRUCache[V](capacity, ttl)
	c.now = clock.Now
	return c, clock
}

func TestLRUCache_BasicOperations(t *testing.T) {
	cache := NewLRUCache[int](3, time.Minute)

	cache.Add("a", 1)
	cache.Add("b", 2)
	cache.Add("c", 3)

	for key, want := range map[string]int{"a": 1, "b": 2, "c": 3} {
		got, found := cache.Get(key)
		if !found {
			t.Errorf("Expected to find key %q", key)
		}
		if got != want {
			t.Errorf("Get(%q) = %d, want %d", key, got, want)
		}
	}

	if cache.Len() != 3 {
		t.Errorf("Expected len 3, got %d", cache.Len())
	}
}

func TestLRUCache_Eviction(t *testing.T) {
	cache := NewLRUCache[string](3, time.Minute)

	cache.Add("a", "A")
	cache.Add("b", "B")
	cache.Add("c", "C")

	// Access 'a' to make it most recently used
	cache.Get("a")

	// 'b' is now least recently used
	cache.Add("d", "D")

	if _, found := cache.Get("b"); found {
		t.Error("Expected 'b' to be evicted")
	}
	for _, key := range []string{"a", "c", "d"} {
		if _, found := cache.Get(key); !found {
			t.Errorf("Expected %q to be present", key)
		}
	}
	if got := cache.Stats().Evictions; got != 1 {
		t.Errorf("Evictions = %d, want 1", got)
	}
}

func TestLRUCache_UpdateExisting(t *testing.T) {
	cache := NewLRUCache[int](2, time.Minute)

	cache.Add("a", 1)
	cache.Add("a", 2)

	if cache.Len() != 1 {
		t.Errorf("Len() = %d, want 1", cache.Len())
	}
	if got, _ := cache.Get("a"); got != 2 {
		t.Errorf("Get(a) = %d, want 2", got)
	}
}

func TestLRUCache_TTLExpiration(t *testing.T) {
	cache, clock := newTestCache[int](10, time.Minute)

	cache.Add("a", 1)
	if _, found := cache.Get("a"); !found {
		t.Error("Expected to find key 'a' immediately")
	}

	clock.Advance(2 * time.Minute)

	if cache.Contains("a") {
		t.Error("Contains() = true for expired key")
	}
	if _, found := cache.Get("a"); found {
		t.Error("Expected key 'a' to be expired")
	}
	if cache.Len() != 0 {
		t.Errorf("Len() = %d after expired Get, want 0", cache.Len())
	}
}

func TestLRUCache_Remove(t *testing.T) {
	cache := NewLRUCache[int](10, time.Minute)

	cache.Add("a", 1)
	cache.Add("b", 2)

	if !cache.Remove("a") {
		t.Error("Expected Remove to return true for existing key")
	}
	if cache.Remove("a") {
		t.Error("Expected Remove to return false for non-existing key")
	}
	if _, found := cache.Get("b"); !found {
		t.Error("Expected key 'b' to still be present")
	}
}

func TestLRUCache_Purge(t *testing.T) {
	cache := NewLRUCache[int](10, time.Minute)

	cache.Add("a", 1)
	cache.Add("b", 2)
	cache.Add("c", 3)

	if n := cache.Purge(); n != 3 {
		t.Errorf("Purge() = %d, want 3", n)
	}
	if cache.Len() != 0 {
		t.Errorf("Expected empty cache after Purge, got len %d", cache.Len())
	}

	// The list must still work after a purge.
	cache.Add("d", 4)
	if got, found := cache.Get("d"); !found || got != 4 {
		t.Errorf("Get(d) after Purge = %d, %v", got, found)
	}
}

func TestLRUCache_CleanupExpired(t *testing.T) {
	cache, clock := newTestCache[int](10, time.Minute)

	cache.Add("a", 1)
	cache.Add("b", 2)
	cache.Add("c", 3)

	clock.Advance(2 * time.Minute)
	cache.Add("d", 4)

	if removed := cache.CleanupExpired(); removed != 3 {
		t.Errorf("Expected 3 expired items removed, got %d", removed)
	}
	if cache.Len() != 1 {
		t.Errorf("Expected 1 item remaining, got %d", cache.Len())
	}
}

func TestLRUCache_Stats(t *testing.T) {
	cache := NewLRUCache[int](10, time.Minute)

	cache.Add("a", 1)
	cache.Get("a")        // hit
	cache.Get("a")        // hit
	cache.Get("nonexist") // miss

	stats := cache.Stats()
	if stats.Hits != 2 {
		t.Errorf("Expected 2 hits, got %d", stats.Hits)
	}
	if stats.Misses != 1 {
		t.Errorf("Expected 1 miss, got %d", stats.Misses)
	}
	if stats.Size != 1 || stats.Capacity != 10 {
		t.Errorf("Size/Capacity = %d/%d, want 1/10", stats.Size, stats.Capacity)
	}
}

func TestLRUCache_Peek(t *testing.T) {
	cache, clock := newTestCache[int](2, time.Minute)

	cache.Add("a", 1)
	cache.Add("b", 2)

	if got, ok := cache.Peek("a"); !ok || got != 1 {
		t.Errorf("Peek(a) = %d, %v, want 1, true", got, ok)
	}
	if _, ok := cache.Peek("missing"); ok {
		t.Error("Peek(missing) found an entry")
	}

	// Peek must not refresh "a", so adding "c" evicts it.
	cache.Add("c", 3)
	if cache.Contains("a") || !cache.Contains("b") {
		t.Error("expected a to be evicted after Peek, b to remain")
	}

	stats := cache.Stats()
	if stats.Hits != 0 || stats.Misses != 0 {
		t.Errorf("Peek changed stats: hits=%d misses=%d", stats.Hits, stats.Misses)
	}

	clock.Advance(2 * time.Minute)
	if _, ok := cache.Peek("b"); ok {
		t.Error("Peek returned an expired entry")
	}
}

func TestLRUCache_Defaults(t *testing.T) {
	cache := NewLRUCache[int](0, 0)
	if cache.capacity <= 0 || cache.ttl <= 0 {
		t.Errorf("capacity/ttl = %d/%v, want positive defaults", cache.capacity, cache.ttl)
	}
}

func TestLRUCache_Concurrent(t *testing.T) {
	cache := NewLRUCache[int](100, time.Minute)

	var wg sync.WaitGroup
	for g := 0; g < 50; g++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("k%d", (id*i)%150)
				cache.Add(key, i)
				cache.Get(key)
				if i%10 == 0 {
					cache.Remove(key)
				}
			}
		}(g)
	}
	wg.Wait()

	if cache.Len() > 100 {
		t.Errorf("Len() = %d, exceeds capacity 100", cache.Len())
	}
}
