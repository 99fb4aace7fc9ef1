// Shoprec - E-commerce Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/shoprec/internal/catalog"
	"github.com/tomtom215/shoprec/internal/models"
)

// CatalogSearch handles GET /api/v1/catalog/search
// Returns products whose name or brand contains q. sort accepts relevance,
// price_asc, price_desc, popular, or the storefront labels.
func (h *Handler) CatalogSearch(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	p := searchParams{Query: r.URL.Query().Get("q")}
	var apiErr *models.APIError
	if p.Limit, apiErr = intParam(r, "limit", defaultSearchLimit); apiErr != nil {
		respondError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}
	if p.Offset, apiErr = intParam(r, "offset", 0); apiErr != nil {
		respondError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}
	if apiErr := validateRequest(&p); apiErr != nil {
		respondError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	rawSort := r.URL.Query().Get("sort")
	order, ok := catalog.NormalizeSort(rawSort)
	if !ok {
		respondError(w, r, http.StatusBadRequest, &models.APIError{
			Code:    models.ErrCodeValidation,
			Message: "sort must be one of [relevance price_asc price_desc popular]",
			Details: map[string]interface{}{"field": "sort", "tag": "oneof", "value": rawSort},
		}, nil)
		return
	}

	matches := h.store.Catalog().Search(p.Query, order)
	total := len(matches)

	page := matches[min(p.Offset, total):]
	if len(page) > p.Limit {
		page = page[:p.Limit]
	}

	respondSuccess(w, r, http.StatusOK, &models.CatalogSearchResponse{
		Query:    p.Query,
		Sort:     order,
		Total:    total,
		Count:    len(page),
		Products: page,
	}, start)
}

// CatalogProduct handles GET /api/v1/catalog/products/{productID}
func (h *Handler) CatalogProduct(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	p := productParams{ProductID: chi.URLParam(r, "productID")}
	if apiErr := validateRequest(&p); apiErr != nil {
		respondError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	product, ok := h.store.Catalog().Get(p.ProductID)
	if !ok {
		respondError(w, r, http.StatusNotFound, &models.APIError{
			Code:    models.ErrCodeNotFound,
			Message: "Unknown product",
			Details: map[string]interface{}{"product_id": p.ProductID},
		}, nil)
		return
	}

	respondSuccess(w, r, http.StatusOK, product, start)
}
