// Shoprec - E-commerce Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/shoprec/internal/metrics"
)

// chiAdapter mirrors the api package adapter for HandlerFunc middleware.
func chiAdapter(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

func TestPrometheusMetrics_RoutePatternLabel(t *testing.T) {
	r := chi.NewRouter()
	r.Use(chiAdapter(PrometheusMetrics))
	r.Get("/metrics-test/items/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	r.Post("/metrics-test/write", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	for _, path := range []string{"/metrics-test/items/1", "/metrics-test/items/2"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusTeapot {
			t.Fatalf("status = %d, want 418", rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/metrics-test/write", nil))

	got := testutil.ToFloat64(metrics.APIRequestsTotal.WithLabelValues(http.MethodGet, "/metrics-test/items/{id}", "418"))
	if got != 2 {
		t.Errorf("requests for route pattern = %v, want 2", got)
	}
	got = testutil.ToFloat64(metrics.APIRequestsTotal.WithLabelValues(http.MethodPost, "/metrics-test/write", "200"))
	if got != 1 {
		t.Errorf("implicit 200 requests = %v, want 1", got)
	}
}

func TestPrometheusMetrics_FirstStatusWins(t *testing.T) {
	handler := PrometheusMetrics(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		w.WriteHeader(http.StatusInternalServerError)
	})

	before := testutil.ToFloat64(metrics.APIRequestsTotal.WithLabelValues(http.MethodDelete, unmatchedRoute, "202"))
	handler(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/no-router", nil))
	after := testutil.ToFloat64(metrics.APIRequestsTotal.WithLabelValues(http.MethodDelete, unmatchedRoute, "202"))

	if after-before != 1 {
		t.Errorf("202 requests delta = %v, want 1", after-before)
	}
}

func TestMetricsResponseWriter_Unwrap(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := &metricsResponseWriter{ResponseWriter: rec, statusCode: http.StatusOK}
	if rw.Unwrap() != rec {
		t.Error("Unwrap() did not return the wrapped writer")
	}
}
