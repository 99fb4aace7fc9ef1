// Shoprec - E-commerce Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

// Package logging provides the process-wide zerolog logger.
//
// Init configures level, format (json or console), caller info, and
// timestamps. Components take a child logger with WithComponent and pass
// it as a zerolog.Logger value.
//
//	logging.Init(logging.Config{Level: "info", Format: "json", Timestamp: true})
//	logging.Info().Str("addr", addr).Msg("HTTP server listening")
//
// # Request Context
//
// The API middleware stores a request ID in the context; reloads carry a
// correlation ID. Ctx(ctx) returns a logger with whichever of the two is set:
//
//	logging.Ctx(r.Context()).Warn().Err(err).Msg("Recommendation failed")
//
// # slog Bridge
//
// SlogHandler adapts zerolog to slog.Handler so the supervisor's sutureslog
// hook writes into the same stream.
//
// Always terminate event chains with Msg or Send; an unterminated event is
// never written.
package logging
