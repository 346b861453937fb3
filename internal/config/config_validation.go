// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// validate checks the merged configuration before startup. A zero-value
// config (nothing loaded) is accepted so partial builders can be tested.
func (cfg *StructuredConfig) validate() error {
	if *cfg == (StructuredConfig{}) {
		return nil
	}

	switch cfg.App.Environment {
	case EnvDevelopment, EnvProduction, EnvTest:
	default:
		return fmt.Errorf("%w: unknown environment %q", ErrInvalidAppConfigs, cfg.App.Environment)
	}

	if cfg.App.LogLevel != "" {
		if _, err := zerolog.ParseLevel(cfg.App.LogLevel); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidAppConfigs, err)
		}
	}

	if cfg.Auth.SessionDuration <= 0 {
		return fmt.Errorf("%w: session duration must be positive", ErrInvalidAuthConfigs)
	}
	if !strings.HasPrefix(cfg.Auth.LoginPath, "/") {
		return fmt.Errorf("%w: login path must start with '/'", ErrInvalidAuthConfigs)
	}

	switch cfg.Storage.DB.Driver {
	case DriverMemory:
	case DriverPostgres, DriverSQLite:
		if cfg.Storage.DB.DSN == "" {
			return fmt.Errorf("%w: %s driver needs a DSN", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
		}
	default:
		return fmt.Errorf("%w: unknown driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
	}

	return nil
}

func (cfg *StructuredConfig) validateClient() error {
	if cfg.Adapter.BaseURL == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}
	return nil
}
