// Shoprec - E-commerce Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/shoprec/internal/catalog"
	"github.com/tomtom215/shoprec/internal/database"
	"github.com/tomtom215/shoprec/internal/logging"
	"github.com/tomtom215/shoprec/internal/metrics"
	"github.com/tomtom215/shoprec/internal/recommend"
)

// defaultRetryInterval spaces retries while no dataset has loaded yet.
const defaultRetryInterval = 30 * time.Second

// DatasetLoader reads the source files. Satisfied by *database.DB.
type DatasetLoader interface {
	LoadDataset(ctx context.Context) (*database.Dataset, error)
}

// SnapshotLoader builds and publishes a snapshot. Satisfied by *engine.Engine.
type SnapshotLoader interface {
	Load(ctx context.Context, interactions []recommend.Interaction) (*recommend.Snapshot, error)
}

// ReloadServiceConfig holds reload scheduling.
type ReloadServiceConfig struct {
	// Interval re-reads the dataset periodically. 0 loads once at startup
	// and afterwards only on TriggerReload.
	Interval time.Duration

	// RetryInterval spaces retries until the first load succeeds.
	// Default: 30s
	RetryInterval time.Duration
}

// ReloadService loads the dataset at startup and keeps the engine snapshot
// and the catalog store current. A failed reload leaves the previous
// snapshot and catalog serving.
type ReloadService struct {
	loader  DatasetLoader
	engine  SnapshotLoader
	store   *catalog.Store
	config  ReloadServiceConfig
	logger  zerolog.Logger
	trigger chan struct{}
	loaded  atomic.Bool
	name    string
}

// NewReloadService creates a reload service. A nil store gets a fresh one.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewReloadService(loader DatasetLoader, engine SnapshotLoader, store *catalog.Store, cfg ReloadServiceConfig, logger zerolog.Logger) *ReloadService {
	if store == nil {
		store = catalog.NewStore()
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = defaultRetryInterval
	}
	return &ReloadService{
		loader:  loader,
		engine:  engine,
		store:   store,
		config:  cfg,
		logger:  logger.With().Str("service", "reload").Logger(),
		trigger: make(chan struct{}, 1),
		name:    "reload-service",
	}
}

// TriggerReload queues a reload. It returns false when one is already
// pending.
func (s *ReloadService) TriggerReload() bool {
	select {
	case s.trigger <- struct{}{}:
		return true
	default:
		return false
	}
}

// Loaded reports whether any load has succeeded.
func (s *ReloadService) Loaded() bool {
	return s.loaded.Load()
}

// Serve implements suture.Service. Load failures are logged and never end
// the service; only cancellation does.
func (s *ReloadService) Serve(ctx context.Context) error {
	s.logger.Info().
		Dur("interval", s.config.Interval).
		Msg("reload service starting")

	var tick <-chan time.Time
	if s.config.Interval > 0 {
		ticker := time.NewTicker(s.config.Interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	retry := s.reloadAndSchedule(ctx, "startup")

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("reload service shutting down")
			return ctx.Err()

		case <-tick:
			retry = s.reloadAndSchedule(ctx, "scheduled")

		case <-s.trigger:
			retry = s.reloadAndSchedule(ctx, "manual")

		case <-retry:
			retry = s.reloadAndSchedule(ctx, "retry")
		}
	}
}

// reloadAndSchedule runs one reload and returns the retry channel: nil once
// any load has succeeded.
func (s *ReloadService) reloadAndSchedule(ctx context.Context, reason string) <-chan time.Time {
	if err := s.Reload(ctx, reason); err != nil && ctx.Err() == nil {
		if !s.loaded.Load() {
			s.logger.Warn().Err(err).Dur("retry_in", s.config.RetryInterval).Msg("initial dataset load failed, will retry")
			return time.After(s.config.RetryInterval)
		}
		s.logger.Warn().Err(err).Msg("dataset reload failed, keeping previous snapshot")
	}
	return nil
}

// Reload reads the dataset, publishes a new snapshot and then swaps the
// catalog store so both describe the same read.
func (s *ReloadService) Reload(ctx context.Context, reason string) error {
	ctx = logging.ContextWithNewCorrelationID(ctx)
	logger := s.logger.With().
		Str("correlation_id", logging.CorrelationIDFromContext(ctx)).
		Str("reason", reason).
		Logger()

	start := time.Now()
	err := s.reload(ctx, &logger)
	metrics.RecordSnapshotReload(time.Since(start), err)
	return err
}

func (s *ReloadService) reload(ctx context.Context, logger *zerolog.Logger) error {
	ds, err := s.loader.LoadDataset(ctx)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	snap, err := s.engine.Load(ctx, ds.Interactions)
	if err != nil {
		return fmt.Errorf("failed to build snapshot: %w", err)
	}

	s.store.Swap(catalog.New(ds.Products), catalog.NewDirectory(ds.Users))
	s.loaded.Store(true)

	logger.Info().
		Int("interactions", len(ds.Interactions)).
		Int("products", len(ds.Products)).
		Int("named_users", len(ds.Users)).
		Int("snapshot_users", snap.Matrix.Rows()).
		Msg("dataset reloaded")
	return nil
}

// String returns the service name for logging.
func (s *ReloadService) String() string {
	return s.name
}
