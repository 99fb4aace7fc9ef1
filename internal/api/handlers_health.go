// Shoprec - E-commerce Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/shoprec/internal/models"
)

// mostReviewedInStats is the number of most reviewed products in /stats.
const mostReviewedInStats = 10

// Health handles GET /api/v1/health
// Always 200 while the process serves; status is "loading" until the first
// snapshot is in place.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	status := h.engine.Status()
	resp := &models.HealthResponse{
		Status:    "ok",
		Version:   h.version,
		Uptime:    time.Since(h.startTime).Seconds(),
		Engine:    status,
		Timestamp: time.Now().UTC(),
	}
	if !status.Ready {
		resp.Status = "loading"
	}
	if h.breaker != nil {
		resp.Breaker = h.breaker.State()
	}

	respondSuccess(w, r, http.StatusOK, resp, start)
}

// Ready handles GET /api/v1/ready
// 200 once a snapshot is loaded, 503 before.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if !h.engine.Ready() {
		respondError(w, r, http.StatusServiceUnavailable, &models.APIError{
			Code:    models.ErrCodeServiceNotReady,
			Message: "Recommendation data is still loading",
		}, nil)
		return
	}

	respondSuccess(w, r, http.StatusOK, map[string]bool{"ready": true}, start)
}

// Stats handles GET /api/v1/stats
// Returns dataset, snapshot, and catalog statistics.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	stats, err := h.engine.Statistics()
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	cat := h.store.Catalog()
	catalogStats := models.CatalogStats{
		Products:     cat.Len(),
		NamedUsers:   h.store.Directory().Len(),
		Prices:       cat.PriceSummary(),
		MostReviewed: cat.MostReviewed(mostReviewedInStats),
	}
	if loadedAt := h.store.LoadedAt(); !loadedAt.IsZero() {
		catalogStats.LoadedAt = &loadedAt
	}

	respondSuccess(w, r, http.StatusOK, &models.StatsResponse{
		Recommendation: stats,
		Catalog:        catalogStats,
	}, start)
}
