// Shoprec - E-commerce Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/shoprec/internal/middleware"
	"github.com/tomtom215/shoprec/internal/models"
)

// Router wires handlers and middleware into a chi router.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router. A nil config selects the defaults.
func NewRouter(handler *Handler, cfg *ChiMiddlewareConfig) *Router {
	return &Router{
		handler:       handler,
		chiMiddleware: NewChiMiddleware(cfg),
	}
}

// chiMiddleware adapts http.HandlerFunc middleware to Chi's func(http.Handler) http.Handler.
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// Setup configures all HTTP routes.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(chiMiddleware(middleware.RequestID))     // X-Request-ID and logging context
	r.Use(chimiddleware.RealIP)                    // Extract real IP from X-Forwarded-For
	r.Use(chiMiddleware(middleware.RequestLogger)) // One structured line per request
	r.Use(chimiddleware.Recoverer)                 // Recover from panics
	r.Use(router.chiMiddleware.CORS())             // CORS must be global to handle OPTIONS preflight

	r.NotFound(routeNotFound)
	r.MethodNotAllowed(methodNotAllowed)

	// Prometheus scrape endpoint, outside the rate limiter
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(chiMiddleware(middleware.PrometheusMetrics))

		// ========================
		// Health Endpoints
		// ========================
		// Not rate limited so health checks never see 429
		r.Get("/health", router.handler.Health)
		r.Get("/ready", router.handler.Ready)

		// ========================
		// API Endpoints
		// ========================
		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimit())
			if timeout := router.chiMiddleware.config.RequestTimeout; timeout > 0 {
				r.Use(chimiddleware.Timeout(timeout))
			}

			r.Get("/stats", router.handler.Stats)
			r.Get("/products/top", router.handler.TopProducts)

			r.Route("/users/{userID}", func(r chi.Router) {
				r.Get("/similar", router.handler.SimilarUsers)
				r.Get("/recommendations", router.handler.UserRecommendations)
			})

			r.Route("/catalog", func(r chi.Router) {
				r.Get("/search", router.handler.CatalogSearch)
				r.Get("/products/{productID}", router.handler.CatalogProduct)
			})

			r.Post("/admin/reload", router.handler.Reload)
		})
	})

	return r
}

func routeNotFound(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusNotFound, &models.APIError{
		Code:    models.ErrCodeRouteNotFound,
		Message: "Route not found",
	}, nil)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusMethodNotAllowed, &models.APIError{
		Code:    models.ErrCodeMethodNotAllowed,
		Message: "Method not allowed",
	}, nil)
}
