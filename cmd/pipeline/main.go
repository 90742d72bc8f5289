// Fathom - Feature Store Pipeline for Tabular Classification
// Copyright 2026 The Fathom Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/fathom-ml/fathom

// Package main runs the full pipeline end to end: ingestion, feature
// processing, and model training, in that order. Each stage consumes the
// previous stage's output (CSV splits, then the feature store), and a
// stage failure aborts the run.
//
// The individual stages are also available as standalone binaries
// (fathom-ingest, fathom-process, fathom-train) for rerunning one step
// without repeating the others.
//
// # Example Usage
//
//	export FATHOM_DATABASE_PASSWORD=secret
//	export FATHOM_FEATURE_STORE_BACKEND=redis
//	./fathom-pipeline -config config.yaml
package main

import (
	"context"
	"flag"
	"os"

	"github.com/fathom-ml/fathom/internal/cli"
	"github.com/fathom-ml/fathom/internal/config"
	"github.com/fathom-ml/fathom/internal/featurestore"
	"github.com/fathom-ml/fathom/internal/ingest"
	"github.com/fathom-ml/fathom/internal/logging"
	"github.com/fathom-ml/fathom/internal/processing"
	"github.com/fathom-ml/fathom/internal/training"
)

func main() {
	configPath := flag.String("config", "", "path to config file (overrides search paths)")
	flag.Parse()

	cfg := cli.LoadConfig(*configPath)
	ctx := context.Background()

	logging.Info().Msg("Starting full pipeline run")

	if err := runIngest(ctx, cfg); err != nil {
		logging.Error().Err(err).Msg("Pipeline aborted during ingestion")
		os.Exit(1)
	}
	if err := runProcessAndTrain(ctx, cfg); err != nil {
		logging.Error().Err(err).Msg("Pipeline aborted")
		os.Exit(1)
	}

	logging.Info().Msg("Pipeline run completed")
}

// runIngest executes the ingestion stage with its own database lifetime.
func runIngest(ctx context.Context, cfg *config.Config) error {
	in, err := ingest.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := in.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	return in.Run(ctx)
}

// runProcessAndTrain executes processing and training against one feature
// store connection.
func runProcessAndTrain(ctx context.Context, cfg *config.Config) error {
	store, err := featurestore.Open(ctx, cfg.FeatureStore)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing feature store")
		}
	}()

	p := processing.New(cfg.Data.TrainCSV(), cfg.Data.TestCSV(), store,
		cfg.Processing.SMOTENeighbors, cfg.Processing.Seed)
	if err := p.Run(ctx); err != nil {
		return err
	}

	tr := training.New(store, cfg.Data.ModelPath, cfg.Training)
	return tr.Run(ctx)
}
