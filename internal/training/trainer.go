// Fathom - Feature Store Pipeline for Tabular Classification
// Copyright 2026 The Fathom Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/fathom-ml/fathom

// Package training fits the survival classifier from feature-store records.
//
// The trainer reads every persisted record, splits entity ids into train
// and held-out sets, runs a randomized hyperparameter search with k-fold
// cross-validation on the training portion, refits the winning combination
// on the full training set, and writes the fitted model to disk as a
// checksummed artifact.
//
// Entities listed by the store but missing when fetched (deleted between
// the listing and the read) are logged and skipped rather than failing the
// run; training proceeds on whatever records remain.
package training

import (
	"context"
	"time"

	"github.com/fathom-ml/fathom/internal/config"
	"github.com/fathom-ml/fathom/internal/dataset"
	"github.com/fathom-ml/fathom/internal/fathomerr"
	"github.com/fathom-ml/fathom/internal/features"
	"github.com/fathom-ml/fathom/internal/featurestore"
	"github.com/fathom-ml/fathom/internal/forest"
	"github.com/fathom-ml/fathom/internal/logging"
)

// Trainer fits and persists the survival classifier.
type Trainer struct {
	store     featurestore.Store
	modelPath string
	cfg       config.TrainingConfig

	// Split outputs, populated by PrepareData.
	trainX [][]float64
	trainY []int
	testX  [][]float64
	testY  []int
}

// New creates a Trainer reading from store and writing the artifact to
// modelPath.
func New(store featurestore.Store, modelPath string, cfg config.TrainingConfig) *Trainer {
	return &Trainer{store: store, modelPath: modelPath, cfg: cfg}
}

// PrepareData lists all stored entities, splits their ids into train and
// held-out sets, and fetches each partition's records into matrices.
func (t *Trainer) PrepareData(ctx context.Context) error {
	ids, err := t.store.ListIDs(ctx)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to list feature store entities")
		return fathomerr.New(fathomerr.KindConnection, "training/prepare", err)
	}
	if len(ids) < 2 {
		return fathomerr.Newf(fathomerr.KindDataFormat, "training/prepare",
			"feature store holds %d records, need at least 2", len(ids))
	}

	trainIDs, testIDs := dataset.SplitIDs(ids, t.cfg.TestSize, t.cfg.Seed)

	t.trainX, t.trainY, err = t.fetch(ctx, trainIDs)
	if err != nil {
		return err
	}
	t.testX, t.testY, err = t.fetch(ctx, testIDs)
	if err != nil {
		return err
	}

	logging.Info().
		Int("entities", len(ids)).
		Int("train", len(t.trainY)).
		Int("test", len(t.testY)).
		Msg("Training data prepared")
	return nil
}

// fetch reads the records for ids and assembles them into matrices. Absent
// entities are skipped with a warning.
func (t *Trainer) fetch(ctx context.Context, ids []int) ([][]float64, []int, error) {
	recs, err := t.store.GetBatch(ctx, ids)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to fetch feature records")
		return nil, nil, fathomerr.New(fathomerr.KindConnection, "training/prepare", err)
	}

	x := make([][]float64, 0, len(ids))
	y := make([]int, 0, len(ids))
	for _, id := range ids {
		rec := recs[id]
		if rec == nil {
			logging.Warn().Int("entity_id", id).Msg("Record vanished between listing and fetch, skipping")
			continue
		}
		x = append(x, rec.Vector())
		y = append(y, rec.Label())
	}
	if len(x) == 0 {
		return nil, nil, fathomerr.Newf(fathomerr.KindDataFormat, "training/prepare",
			"no records remained after fetch")
	}
	return x, y, nil
}

// Train runs the hyperparameter search, refits the winner on the full
// training split, evaluates it on the held-out split, and saves the
// artifact.
func (t *Trainer) Train(ctx context.Context) error {
	res, err := Search(t.trainX, t.trainY, t.cfg.SearchIterations, t.cfg.CVFolds, t.cfg.Seed)
	if err != nil {
		logging.Error().Err(err).Msg("Hyperparameter search failed")
		return fathomerr.New(fathomerr.KindDataFormat, "training/search", err)
	}

	logging.Info().
		Int("evaluated", res.Evaluated).
		Int("n_estimators", res.Best.NumTrees).
		Int("max_depth", res.Best.MaxDepth).
		Int("min_samples_split", res.Best.MinSamplesSplit).
		Int("min_samples_leaf", res.Best.MinSamplesLeaf).
		Float64("cv_accuracy", res.BestScore).
		Msg("Hyperparameter search completed")

	model := forest.New(forest.Config{
		NumTrees:        res.Best.NumTrees,
		MaxDepth:        res.Best.MaxDepth,
		MinSamplesSplit: res.Best.MinSamplesSplit,
		MinSamplesLeaf:  res.Best.MinSamplesLeaf,
		Seed:            t.cfg.Seed,
	})
	if err := model.Fit(t.trainX, t.trainY); err != nil {
		logging.Error().Err(err).Msg("Final model fit failed")
		return fathomerr.New(fathomerr.KindDataFormat, "training/fit", err)
	}

	acc, err := forest.Accuracy(t.testY, model.Predict(t.testX))
	if err != nil {
		return fathomerr.New(fathomerr.KindDataFormat, "training/evaluate", err)
	}
	logging.Info().Float64("accuracy", acc).Msg("Held-out evaluation completed")

	meta := ArtifactMetadata{
		RunID:        NewRunID(),
		TrainedAt:    time.Now(),
		Params:       res.Best,
		CVAccuracy:   res.BestScore,
		TestAccuracy: acc,
		TrainSamples: len(t.trainY),
		TestSamples:  len(t.testY),
		FeatureNames: features.FeatureNames,
	}
	if err := SaveArtifact(t.modelPath, model, meta); err != nil {
		logging.Error().Err(err).Str("path", t.modelPath).Msg("Failed to save model artifact")
		return fathomerr.New(fathomerr.KindConnection, "training/save", err)
	}

	logging.Info().
		Str("run_id", meta.RunID).
		Str("path", t.modelPath).
		Msg("Model artifact saved")
	return nil
}

// Run executes the full training pipeline.
func (t *Trainer) Run(ctx context.Context) error {
	logging.Info().Msg("Starting model training")

	if err := t.PrepareData(ctx); err != nil {
		return err
	}
	if err := t.Train(ctx); err != nil {
		return err
	}

	logging.Info().Msg("Model training completed")
	return nil
}
