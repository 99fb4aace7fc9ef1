// Shoprec - E-commerce Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

// Package main is the entry point for the shoprec server.
//
// Startup order:
//
//  1. Configuration: defaults, optional config.yaml, environment (Koanf v2)
//  2. Logging: zerolog, configured from the loaded settings
//  3. Database: in-memory DuckDB used to parse the dataset files
//  4. Engine: recommendation engine with an empty snapshot
//  5. Supervisor tree: ReloadService (data layer) and the HTTP server (api layer)
//
// The HTTP server starts before the first dataset load finishes; /api/v1/ready
// answers 503 until a snapshot is published.
//
// # Configuration
//
// Every setting can be overridden from the environment, for example:
//
//	export RATINGS_PATH=/data/ratings_Beauty.csv
//	export PRODUCTS_PATH=/data/productos.csv
//	export USERS_PATH=/data/usuarios.csv
//	export HTTP_PORT=8080
//	./shoprec
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the supervisor tree. In-flight requests get
// server.shutdown_timeout to finish before the process exits.
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/tomtom215/shoprec/internal/api"
	"github.com/tomtom215/shoprec/internal/catalog"
	"github.com/tomtom215/shoprec/internal/config"
	"github.com/tomtom215/shoprec/internal/database"
	"github.com/tomtom215/shoprec/internal/logging"
	"github.com/tomtom215/shoprec/internal/recommend/engine"
	"github.com/tomtom215/shoprec/internal/supervisor"
	"github.com/tomtom215/shoprec/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Str("ratings_path", cfg.Data.RatingsPath).
		Str("products_path", cfg.Data.ProductsPath).
		Str("users_path", cfg.Data.UsersPath).
		Msg("Starting shoprec")

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Server stopped with error")
	}
	logging.Info().Msg("Application stopped gracefully")
}

func run(cfg *config.Config) error {
	db, err := database.Open(&cfg.Data)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	eng, err := engine.New(cfg.Recommend.EngineConfig(), logging.WithComponent("recommend"))
	if err != nil {
		return err
	}

	store := catalog.NewStore()
	reloader := services.NewReloadService(db, eng, store, services.ReloadServiceConfig{
		Interval: cfg.Data.ReloadInterval,
	}, logging.WithComponent("reload"))

	handler := api.NewHandler(api.HandlerDeps{
		Engine:   eng,
		Store:    store,
		Reloader: reloader,
		Breaker:  db.Breaker(),
		Version:  version,
	})
	router := api.NewRouter(handler, api.ChiMiddlewareConfigFromServer(&cfg.Server))

	server := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return err
	}
	tree.AddDataService(reloader)
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logging.WithComponent("http")))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	err = tree.Serve(ctx)

	if unstopped, reportErr := tree.UnstoppedServiceReport(); reportErr == nil && len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
		}
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
