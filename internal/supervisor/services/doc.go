// Shoprec - E-commerce Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

/*
Package services provides suture.Service wrappers for shoprec components.

Each wrapper turns a component's lifecycle into suture's context-aware
Serve(ctx) error and implements fmt.Stringer for supervisor logs.

# Available Services

HTTPServerService:
  - Runs *http.Server.ListenAndServe in a goroutine
  - Calls Shutdown with its own deadline when the context is canceled
  - Returns listener errors so the supervisor restarts it

ReloadService:
  - Loads the dataset at startup, then every Interval if one is set
  - TriggerReload queues a manual reload (POST /api/v1/admin/reload)
  - Retries every RetryInterval until the first load succeeds
  - Publishes the snapshot before swapping the catalog store
  - A failed reload keeps the previous snapshot and catalog

# Usage

	reloader := services.NewReloadService(db, eng, store, services.ReloadServiceConfig{
	    Interval: cfg.Data.ReloadInterval,
	}, logging.WithComponent("reload"))
	tree.AddDataService(reloader)
*/
package services
