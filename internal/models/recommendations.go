// Shoprec - E-commerce Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package models

import (
	"time"

	"github.com/tomtom215/shoprec/internal/catalog"
	"github.com/tomtom215/shoprec/internal/recommend"
	"github.com/tomtom215/shoprec/internal/recommend/engine"
)

// RecommendedProduct is a scored product. Catalog fields are empty when the
// product is not in the catalog.
type RecommendedProduct struct {
	ProductID   string  `json:"product_id"`
	Score       float64 `json:"score"`
	Name        string  `json:"name,omitempty"`
	Brand       string  `json:"brand,omitempty"`
	Price       string  `json:"price,omitempty"`
	PriceMinor  int64   `json:"price_minor,omitempty"`
	ImageURL    string  `json:"image_url,omitempty"`
	ReviewCount int     `json:"review_count,omitempty"`
}

// RecommendationsResponse is returned by the recommendation endpoints.
type RecommendationsResponse struct {
	Strategy    string               `json:"strategy"`
	UserID      string               `json:"user_id,omitempty"`
	UserName    string               `json:"user_name,omitempty"`
	Rank        int                  `json:"rank,omitempty"`
	CacheHit    bool                 `json:"cache_hit"`
	Fingerprint string               `json:"snapshot_fingerprint"`
	Count       int                  `json:"count"`
	Items       []RecommendedProduct `json:"items"`
}

// SimilarUser is a neighbor with its display name.
type SimilarUser struct {
	UserID     string  `json:"user_id"`
	Name       string  `json:"name"`
	Similarity float64 `json:"similarity"`
}

// SimilarUsersResponse is returned by the similar users endpoint.
type SimilarUsersResponse struct {
	UserID   string        `json:"user_id"`
	UserName string        `json:"user_name"`
	Count    int           `json:"count"`
	Users    []SimilarUser `json:"users"`
}

// CatalogSearchResponse is returned by the catalog search endpoint.
type CatalogSearchResponse struct {
	Query    string            `json:"query"`
	Sort     string            `json:"sort"`
	Total    int               `json:"total"`
	Count    int               `json:"count"`
	Products []catalog.Product `json:"products"`
}

// CatalogStats describes the catalog and user directory being served.
type CatalogStats struct {
	Products     int               `json:"products"`
	NamedUsers   int               `json:"named_users"`
	Prices       recommend.Summary `json:"prices"`
	MostReviewed []catalog.Product `json:"most_reviewed"`
	LoadedAt     *time.Time        `json:"loaded_at,omitempty"`
}

// StatsResponse combines engine and catalog statistics.
type StatsResponse struct {
	Recommendation *engine.Statistics `json:"recommendation"`
	Catalog        CatalogStats       `json:"catalog"`
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status    string        `json:"status"`
	Version   string        `json:"version"`
	Uptime    float64       `json:"uptime_seconds"`
	Engine    engine.Status `json:"engine"`
	Breaker   string        `json:"ingest_breaker,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// ReloadResponse is returned when a reload is requested.
type ReloadResponse struct {
	Queued  bool   `json:"queued"`
	Message string `json:"message"`
}
