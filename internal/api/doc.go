// Shoprec - E-commerce Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

/*
Package api provides the shoprec HTTP API on the chi router.

Routes:

	GET  /metrics                                  Prometheus scrape endpoint
	GET  /api/v1/health                            liveness and engine status
	GET  /api/v1/ready                             200 once a snapshot is loaded
	GET  /api/v1/stats                             dataset, snapshot and catalog statistics
	GET  /api/v1/products/top                      ?n=&min_interactions=
	GET  /api/v1/users/{userID}/similar            ?limit=
	GET  /api/v1/users/{userID}/recommendations    ?strategy=neighborhood|latent&n=&k=
	GET  /api/v1/catalog/search                    ?q=&sort=&limit=&offset=
	GET  /api/v1/catalog/products/{productID}
	POST /api/v1/admin/reload                      queue a dataset reload

Middleware:

Every request gets a request id, real client IP, a structured access log
line, panic recovery and CORS. Everything under /api/v1 is instrumented
with Prometheus metrics. Apart from health and ready, /api/v1 routes are
rate limited per client IP (go-chi/httprate) and bounded by the request
timeout.

Responses:

All endpoints answer with the models.APIResponse envelope encoded by
goccy/go-json. Recommendation errors map to status codes as follows:

	recommend.ErrUnknownUser, ErrInvalidUserIndex  404 NOT_FOUND
	recommend.ErrDecomposition                     422 DECOMPOSITION_FAILED
	recommend.ErrInvalidRequest                    400 INVALID_REQUEST
	recommend.ErrDatasetUnavailable, ErrNoUsers... 503 DATASET_UNAVAILABLE

Query parameter problems are reported as 400 VALIDATION_ERROR before the
engine is called.

Usage:

	handler := api.NewHandler(api.HandlerDeps{
	    Engine:   eng,
	    Store:    store,
	    Reloader: reloadService,
	    Breaker:  db.Breaker(),
	})
	router := api.NewRouter(handler, api.ChiMiddlewareConfigFromServer(&cfg.Server))
	srv := &http.Server{Addr: addr, Handler: router.Setup()}
*/
package api
