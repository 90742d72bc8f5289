// Fathom - Feature Store Pipeline for Tabular Classification
// Copyright 2026 The Fathom Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/fathom-ml/fathom

// Package main is the entry point for the training stage.
//
// Train reads every record from the feature store, splits entity ids into
// train and held-out sets, runs a randomized hyperparameter search with
// cross-validation, fits the winning random forest, and writes the model
// artifact to disk.
//
// # Example Usage
//
//	export FATHOM_TRAINING_SEARCH_ITERATIONS=10
//	./fathom-train
package main

import (
	"context"
	"flag"
	"os"

	"github.com/fathom-ml/fathom/internal/cli"
	"github.com/fathom-ml/fathom/internal/featurestore"
	"github.com/fathom-ml/fathom/internal/logging"
	"github.com/fathom-ml/fathom/internal/training"
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

	tr := training.New(store, cfg.Data.ModelPath, cfg.Training)
	if err := tr.Run(ctx); err != nil {
		logging.Error().Err(err).Msg("Training failed")
		os.Exit(1)
	}
}
