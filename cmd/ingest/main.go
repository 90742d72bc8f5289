// Fathom - Feature Store Pipeline for Tabular Classification
// Copyright 2026 The Fathom Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/fathom-ml/fathom

// Package main is the entry point for the ingestion stage.
//
// Ingest reads every row of the configured PostgreSQL table, splits it
// into train and test sets, and writes both as CSV files for the
// processing stage.
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins):
//   - Environment variables with the FATHOM_ prefix
//   - Config file (config.yaml, or -config / CONFIG_PATH)
//   - Built-in defaults
//
// # Example Usage
//
//	export FATHOM_DATABASE_HOST=localhost
//	export FATHOM_DATABASE_PASSWORD=secret
//	./fathom-ingest
package main

import (
	"context"
	"flag"
	"os"

	"github.com/fathom-ml/fathom/internal/cli"
	"github.com/fathom-ml/fathom/internal/ingest"
	"github.com/fathom-ml/fathom/internal/logging"
)

func main() {
	configPath := flag.String("config", "", "path to config file (overrides search paths)")
	flag.Parse()

	cfg := cli.LoadConfig(*configPath)
	ctx := context.Background()

	in, err := ingest.New(ctx, cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to connect to source database")
	}
	defer func() {
		if err := in.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	if err := in.Run(ctx); err != nil {
		logging.Error().Err(err).Msg("Ingestion failed")
		os.Exit(1)
	}
}
