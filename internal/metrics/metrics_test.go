// Shoprec - E-commerce Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	io_prometheus_client "github.com/prometheus/client_model/go"
)

// getGaugeValue extracts the value from a Prometheus gauge
func getGaugeValue(gauge prometheus.Gauge) float64 {
	var m io_prometheus_client.Metric
	if err := gauge.Write(&m); err != nil {
		return 0
	}
	return m.GetGauge().GetValue()
}

func TestRecordRecommendation(t *testing.T) {
	tests := []struct {
		name     string
		strategy string
		outcome  string
	}{
		{"popularity success", "popularity", OutcomeSuccess},
		{"neighborhood empty", "neighborhood", OutcomeEmpty},
		{"latent error", "latent", OutcomeError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := RecommendationsTotal.WithLabelValues(tt.strategy, tt.outcome)
			before := testutil.ToFloat64(counter)

			RecordRecommendation(tt.strategy, tt.outcome, 3*time.Millisecond)

			if got := testutil.ToFloat64(counter); got != before+1 {
				t.Errorf("counter = %v, want %v", got, before+1)
			}
		})
	}
}

func TestRecordFactorizationCache(t *testing.T) {
	hits := FactorizationCacheTotal.WithLabelValues("hit")
	misses := FactorizationCacheTotal.WithLabelValues("miss")
	beforeHits, beforeMisses := testutil.ToFloat64(hits), testutil.ToFloat64(misses)

	RecordFactorizationCache(true)
	RecordFactorizationCache(false)
	RecordFactorizationCache(false)

	if got := testutil.ToFloat64(hits) - beforeHits; got != 1 {
		t.Errorf("hits delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(misses) - beforeMisses; got != 2 {
		t.Errorf("misses delta = %v, want 2", got)
	}
}

func TestRecordFactorization_Errors(t *testing.T) {
	before := testutil.ToFloat64(FactorizationErrors)

	RecordFactorization(10*time.Millisecond, nil)
	RecordFactorization(10*time.Millisecond, errors.New("rank too large"))

	if got := testutil.ToFloat64(FactorizationErrors) - before; got != 1 {
		t.Errorf("errors delta = %v, want 1", got)
	}
}

func TestSetSnapshot(t *testing.T) {
	SetSnapshot(120, 4500, 98000)

	if got := getGaugeValue(SnapshotUsers); got != 120 {
		t.Errorf("SnapshotUsers = %v, want 120", got)
	}
	if got := getGaugeValue(SnapshotProducts); got != 4500 {
		t.Errorf("SnapshotProducts = %v, want 4500", got)
	}
	if got := getGaugeValue(SnapshotInteractions); got != 98000 {
		t.Errorf("SnapshotInteractions = %v, want 98000", got)
	}
	if got := getGaugeValue(SnapshotLastSwap); got <= 0 {
		t.Errorf("SnapshotLastSwap = %v, want > 0", got)
	}
}

func TestRecordSnapshotReload(t *testing.T) {
	success := SnapshotReloadsTotal.WithLabelValues(OutcomeSuccess)
	failure := SnapshotReloadsTotal.WithLabelValues(OutcomeError)
	beforeSuccess, beforeFailure := testutil.ToFloat64(success), testutil.ToFloat64(failure)

	RecordSnapshotReload(time.Second, nil)
	RecordSnapshotReload(time.Second, errors.New("ratings file missing"))

	if got := testutil.ToFloat64(success) - beforeSuccess; got != 1 {
		t.Errorf("success delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(failure) - beforeFailure; got != 1 {
		t.Errorf("failure delta = %v, want 1", got)
	}
}

func TestRecordIngest(t *testing.T) {
	counter := IngestRows.WithLabelValues("ratings")
	before := testutil.ToFloat64(counter)

	RecordIngest("ratings", 250, 40*time.Millisecond)

	if got := testutil.ToFloat64(counter) - before; got != 250 {
		t.Errorf("rows delta = %v, want 250", got)
	}
}

func TestRecordAPIRequest(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		endpoint   string
		statusCode string
		duration   time.Duration
	}{
		{
			name:       "successful GET request",
			method:     "GET",
			endpoint:   "/api/v1/products/top",
			statusCode: "200",
			duration:   25 * time.Millisecond,
		},
		{
			name:       "unknown user",
			method:     "GET",
			endpoint:   "/api/v1/users/{userID}/recommendations",
			statusCode: "404",
			duration:   2 * time.Millisecond,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := APIRequestsTotal.WithLabelValues(tt.method, tt.endpoint, tt.statusCode)
			before := testutil.ToFloat64(counter)

			RecordAPIRequest(tt.method, tt.endpoint, tt.statusCode, tt.duration)

			if got := testutil.ToFloat64(counter); got != before+1 {
				t.Errorf("counter = %v, want %v", got, before+1)
			}
		})
	}
}

func TestTrackActiveRequest_Concurrent(t *testing.T) {
	before := getGaugeValue(APIActiveRequests)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			TrackActiveRequest(true)
			TrackActiveRequest(false)
		}()
	}
	wg.Wait()

	if got := getGaugeValue(APIActiveRequests); got != before {
		t.Errorf("APIActiveRequests = %v, want %v", got, before)
	}
}
