// Shoprec - E-commerce Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package config

import (
	"fmt"
	"strings"

	"github.com/tomtom215/shoprec/internal/validation"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return verr
	}

	if err := c.validateCORS(); err != nil {
		return err
	}

	if err := c.validateData(); err != nil {
		return err
	}

	if err := c.Recommend.EngineConfig().Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}

	return nil
}

// validateCORS rejects empty origins and wildcard origins in production.
func (c *Config) validateCORS() error {
	for _, origin := range c.Server.CORSOrigins {
		if strings.TrimSpace(origin) == "" {
			return fmt.Errorf("CORS_ORIGINS must not contain empty entries")
		}
	}
	if c.IsProduction() && c.hasWildcardCORS() {
		return fmt.Errorf("CORS_ORIGINS must not contain * in production")
	}
	return nil
}

func (c *Config) hasWildcardCORS() bool {
	for _, origin := range c.Server.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// validateData rejects dataset paths that would be spliced into DuckDB
// option strings.
func (c *Config) validateData() error {
	if strings.ContainsAny(c.Data.DuckDBPath, "?&") {
		return fmt.Errorf("DUCKDB_PATH must not contain '?' or '&'")
	}
	if strings.ContainsAny(c.Data.MaxMemory, "?&=") {
		return fmt.Errorf("DUCKDB_MAX_MEMORY must not contain '?', '&' or '='")
	}
	return nil
}
