// Fathom - Feature Store Pipeline for Tabular Classification
// Copyright 2026 The Fathom Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/fathom-ml/fathom

// Package main is the entry point for the processing stage.
//
// Process reads the raw CSV splits written by ingest, engineers the
// feature set (imputation, categorical encoding, derived and interaction
// features), computes the class-balanced resample, and writes one feature
// record per passenger into the configured feature store backend.
//
// # Example Usage
//
//	export FATHOM_FEATURE_STORE_BACKEND=badger
//	./fathom-process
package main

import (
	"context"
	"flag"
	"os"

	"github.com/fathom-ml/fathom/internal/cli"
	"github.com/fathom-ml/fathom/internal/featurestore"
	"github.com/fathom-ml/fathom/internal/logging"
	"github.com/fathom-ml/fathom/internal/processing"
)

func main() {
	configPath := flag.String("config", "", "path to config file (overrides search paths)")
	flag.Parse()

	cfg := cli.LoadConfig(*configPath)
	ctx := context.Background()

	store, err := featurestore.Open(ctx, cfg.FeatureStore)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open feature store")
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing feature store")
		}
	}()

	p := processing.New(cfg.Data.TrainCSV(), cfg.Data.TestCSV(), store,
		cfg.Processing.SMOTENeighbors, cfg.Processing.Seed)
	if err := p.Run(ctx); err != nil {
		logging.Error().Err(err).Msg("Processing failed")
		os.Exit(1)
	}
}
