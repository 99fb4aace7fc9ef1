// Shoprec - E-commerce Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package database

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/shoprec/internal/metrics"
)

var errLoad = errors.New("load failed")

func failingLoad() (any, error) { return nil, errLoad }

func TestCircuitBreaker_TripsOnConsecutiveFailures(t *testing.T) {
	cb := newCircuitBreaker("test-trip", zerolog.Nop(), 2, time.Hour)

	for i := 0; i < 2; i++ {
		if _, err := cb.execute(failingLoad); !errors.Is(err, errLoad) {
			t.Fatalf("execute() #%d error = %v, want errLoad", i, err)
		}
	}

	if got := cb.State(); got != "open" {
		t.Fatalf("State() = %q, want open", got)
	}

	called := false
	_, err := cb.execute(func() (any, error) {
		called = true
		return nil, nil
	})
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("execute() on open breaker error = %v, want ErrOpenState", err)
	}
	if called {
		t.Error("open breaker ran the load")
	}

	if got := testutil.ToFloat64(metrics.CircuitBreakerState.WithLabelValues("test-trip")); got != 2 {
		t.Errorf("state gauge = %v, want 2", got)
	}
	if got := testutil.ToFloat64(metrics.CircuitBreakerRequests.WithLabelValues("test-trip", "rejected")); got != 1 {
		t.Errorf("rejected counter = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.CircuitBreakerTransitions.WithLabelValues("test-trip", "closed", "open")); got != 1 {
		t.Errorf("closed->open transitions = %v, want 1", got)
	}
}

func TestCircuitBreaker_SuccessResetsFailures(t *testing.T) {
	cb := newCircuitBreaker("test-reset", zerolog.Nop(), 2, time.Hour)

	if _, err := cb.execute(failingLoad); err == nil {
		t.Fatal("expected failure")
	}
	if got := testutil.ToFloat64(metrics.CircuitBreakerConsecutiveFailures.WithLabelValues("test-reset")); got != 1 {
		t.Errorf("consecutive failures gauge = %v, want 1", got)
	}

	if _, err := cb.execute(func() (any, error) { return "ok", nil }); err != nil {
		t.Fatalf("execute() error = %v", err)
	}
	if got := testutil.ToFloat64(metrics.CircuitBreakerConsecutiveFailures.WithLabelValues("test-reset")); got != 0 {
		t.Errorf("consecutive failures gauge = %v, want 0", got)
	}

	if _, err := cb.execute(failingLoad); err == nil {
		t.Fatal("expected failure")
	}
	if got := cb.State(); got != "closed" {
		t.Errorf("State() = %q, want closed after non-consecutive failures", got)
	}
}

func TestCircuitBreaker_HalfOpenRecovers(t *testing.T) {
	cb := newCircuitBreaker("test-recover", zerolog.Nop(), 1, 10*time.Millisecond)

	if _, err := cb.execute(failingLoad); err == nil {
		t.Fatal("expected failure")
	}
	if got := cb.State(); got != "open" {
		t.Fatalf("State() = %q, want open", got)
	}

	time.Sleep(20 * time.Millisecond)
	if got := cb.State(); got != "half-open" {
		t.Fatalf("State() after timeout = %q, want half-open", got)
	}

	if _, err := cb.execute(func() (any, error) { return "ok", nil }); err != nil {
		t.Fatalf("trial execute() error = %v", err)
	}
	if got := cb.State(); got != "closed" {
		t.Errorf("State() after trial = %q, want closed", got)
	}
}

func TestCastResult(t *testing.T) {
	ds := &Dataset{}

	got, err := castResult[Dataset](ds, nil)
	if err != nil || got != ds {
		t.Errorf("castResult() = %v, %v; want dataset, nil", got, err)
	}

	if _, err := castResult[Dataset]("wrong", nil); err == nil {
		t.Error("castResult() expected error for wrong type")
	}

	if _, err := castResult[Dataset](nil, errLoad); !errors.Is(err, errLoad) {
		t.Errorf("castResult() error = %v, want errLoad", err)
	}
}

func TestStateToString(t *testing.T) {
	tests := []struct {
		state gobreaker.State
		str   string
		num   float64
	}{
		{gobreaker.StateClosed, "closed", 0},
		{gobreaker.StateHalfOpen, "half-open", 1},
		{gobreaker.StateOpen, "open", 2},
		{gobreaker.State(99), "unknown", -1},
	}

	for _, tt := range tests {
		t.Run(tt.str, func(t *testing.T) {
			if got := stateToString(tt.state); got != tt.str {
				t.Errorf("stateToString() = %q, want %q", got, tt.str)
			}
			if got := stateToFloat(tt.state); got != tt.num {
				t.Errorf("stateToFloat() = %v, want %v", got, tt.num)
			}
		})
	}
}
