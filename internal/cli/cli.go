// Fathom - Feature Store Pipeline for Tabular Classification
// Copyright 2026 The Fathom Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/fathom-ml/fathom

// Package cli holds the startup sequence shared by the stage binaries.
package cli

import (
	"github.com/fathom-ml/fathom/internal/config"
	"github.com/fathom-ml/fathom/internal/logging"
)

// LoadConfig loads configuration and initializes logging from it. A
// non-empty path overrides the config file search; an unloadable
// configuration is fatal, since no stage can run without one.
func LoadConfig(path string) *config.Config {
	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	return cfg
}
