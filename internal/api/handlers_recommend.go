// Shoprec - E-commerce Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/shoprec/internal/models"
	"github.com/tomtom215/shoprec/internal/recommend"
	"github.com/tomtom215/shoprec/internal/recommend/algorithms"
	"github.com/tomtom215/shoprec/internal/recommend/engine"
)

// TopProducts handles GET /api/v1/products/top
// Returns the best-rated products with more than min_interactions ratings.
func (h *Handler) TopProducts(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var p topProductsParams
	var apiErr *models.APIError
	if p.N, apiErr = intParam(r, "n", 0); apiErr != nil {
		respondError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}
	if p.MinInteractions, apiErr = optionalIntParam(r, "min_interactions"); apiErr != nil {
		respondError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}
	if apiErr := validateRequest(&p); apiErr != nil {
		respondError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	resp, err := h.engine.Recommend(r.Context(), engine.Request{
		Strategy:        algorithms.StrategyPopularity,
		N:               p.N,
		MinInteractions: p.MinInteractions,
	})
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	respondSuccess(w, r, http.StatusOK, h.recommendationsResponse(resp), start)
}

// UserRecommendations handles GET /api/v1/users/{userID}/recommendations
// Returns personalized recommendations using the neighborhood (default)
// or latent strategy.
func (h *Handler) UserRecommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	p := recommendationsParams{
		UserID:   chi.URLParam(r, "userID"),
		Strategy: r.URL.Query().Get("strategy"),
	}
	var apiErr *models.APIError
	if p.N, apiErr = intParam(r, "n", 0); apiErr != nil {
		respondError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}
	if p.K, apiErr = intParam(r, "k", 0); apiErr != nil {
		respondError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}
	if apiErr := validateRequest(&p); apiErr != nil {
		respondError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	resp, err := h.engine.Recommend(r.Context(), engine.Request{
		Strategy: p.Strategy,
		UserID:   p.UserID,
		N:        p.N,
		K:        p.K,
	})
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	out := h.recommendationsResponse(resp)
	out.UserName = h.store.Directory().DisplayName(p.UserID)
	respondSuccess(w, r, http.StatusOK, out, start)
}

// SimilarUsers handles GET /api/v1/users/{userID}/similar
// Returns the users most similar to userID by cosine similarity.
func (h *Handler) SimilarUsers(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	p := similarUsersParams{UserID: chi.URLParam(r, "userID")}
	var apiErr *models.APIError
	if p.Limit, apiErr = intParam(r, "limit", 0); apiErr != nil {
		respondError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}
	if apiErr := validateRequest(&p); apiErr != nil {
		respondError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	neighbors, err := h.engine.SimilarUsers(r.Context(), p.UserID, p.Limit)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	dir := h.store.Directory()
	users := make([]models.SimilarUser, len(neighbors))
	for i, nb := range neighbors {
		users[i] = models.SimilarUser{
			UserID:     nb.UserID,
			Name:       dir.DisplayName(nb.UserID),
			Similarity: nb.Similarity,
		}
	}

	respondSuccess(w, r, http.StatusOK, &models.SimilarUsersResponse{
		UserID:   p.UserID,
		UserName: dir.DisplayName(p.UserID),
		Count:    len(users),
		Users:    users,
	}, start)
}

// recommendationsResponse annotates engine results with catalog metadata.
func (h *Handler) recommendationsResponse(resp *engine.Response) *models.RecommendationsResponse {
	return &models.RecommendationsResponse{
		Strategy:    resp.Strategy,
		UserID:      resp.UserID,
		Rank:        resp.Metadata.Rank,
		CacheHit:    resp.Metadata.CacheHit,
		Fingerprint: resp.Metadata.Fingerprint,
		Count:       len(resp.Items),
		Items:       h.annotate(resp.Items),
	}
}

// annotate joins scored products with the current catalog. The result is
// never nil.
func (h *Handler) annotate(items []recommend.Scored) []models.RecommendedProduct {
	ids := make([]string, len(items))
	for i := range items {
		ids[i] = items[i].ProductID
	}
	known := h.store.Catalog().Annotate(ids)

	out := make([]models.RecommendedProduct, len(items))
	for i, item := range items {
		rp := models.RecommendedProduct{ProductID: item.ProductID, Score: item.Score}
		if p, ok := known[item.ProductID]; ok {
			rp.Name = p.Name
			rp.Brand = p.Brand
			rp.Price = p.Price
			rp.PriceMinor = p.PriceMinor
			rp.ImageURL = p.ImageURL
			rp.ReviewCount = p.ReviewCount
		}
		out[i] = rp
	}
	return out
}
