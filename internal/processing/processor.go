// Fathom - Feature Store Pipeline for Tabular Classification
// Copyright 2026 The Fathom Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/fathom-ml/fathom

// Package processing engineers features from the raw train table and
// persists one record per passenger into the feature store.
//
// Stages run strictly in order, each consuming the previous stage's
// output: Load -> Preprocess -> Balance -> Persist. Any stage failure is
// logged, wrapped with the stage name, and aborts the run.
//
// Note on Balance: the class-balanced resample is computed and its class
// counts logged, but Persist intentionally writes the pre-balance records.
// The stored feature set always mirrors the raw training rows one-to-one;
// balancing is an in-run statistic only.
package processing

import (
	"context"

	"github.com/fathom-ml/fathom/internal/dataset"
	"github.com/fathom-ml/fathom/internal/fathomerr"
	"github.com/fathom-ml/fathom/internal/features"
	"github.com/fathom-ml/fathom/internal/featurestore"
	"github.com/fathom-ml/fathom/internal/logging"
)

// Processor runs the feature engineering pipeline over the raw CSV splits.
type Processor struct {
	trainPath string
	testPath  string
	store     featurestore.Store
	smoteK    int
	seed      int64

	// Stage outputs, populated in order.
	trainRows []dataset.Passenger
	testRows  []dataset.Passenger
	ids       []int
	records   []features.Record
	balancedX [][]float64
	balancedY []int
}

// New creates a Processor reading the given CSV splits and writing to store.
func New(trainPath, testPath string, store featurestore.Store, smoteK int, seed int64) *Processor {
	return &Processor{
		trainPath: trainPath,
		testPath:  testPath,
		store:     store,
		smoteK:    smoteK,
		seed:      seed,
	}
}

// Load reads the train and test tables into memory.
func (p *Processor) Load() error {
	trainRows, err := dataset.ReadCSV(p.trainPath)
	if err != nil {
		logging.Error().Err(err).Str("path", p.trainPath).Msg("Failed to read train table")
		return fathomerr.New(fathomerr.KindConnection, "processing/load", err)
	}
	testRows, err := dataset.ReadCSV(p.testPath)
	if err != nil {
		logging.Error().Err(err).Str("path", p.testPath).Msg("Failed to read test table")
		return fathomerr.New(fathomerr.KindConnection, "processing/load", err)
	}

	p.trainRows = trainRows
	p.testRows = testRows
	logging.Info().
		Int("train_rows", len(trainRows)).
		Int("test_rows", len(testRows)).
		Msg("Raw tables loaded")
	return nil
}

// Preprocess imputes missing values and derives the engineered features
// for every training row. Imputation statistics are computed over the full
// train table before any substitution.
func (p *Processor) Preprocess() error {
	pre, err := features.Fit(p.trainRows)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to fit preprocessor")
		return fathomerr.New(fathomerr.KindDataFormat, "processing/preprocess", err)
	}

	ids, recs, err := pre.TransformAll(p.trainRows)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to derive features")
		return fathomerr.New(fathomerr.KindDataFormat, "processing/preprocess", err)
	}

	p.ids = ids
	p.records = recs
	logging.Info().
		Int("rows", len(recs)).
		Float64("age_median", pre.AgeMedian).
		Float64("fare_median", pre.FareMedian).
		Str("embarked_mode", pre.EmbarkedMode).
		Msg("Preprocessing done")
	return nil
}

// Balance applies SMOTE to the engineered feature matrix. The resampled
// output is logged but not persisted; Persist writes the pre-balance rows.
func (p *Processor) Balance() error {
	x, y := features.Matrix(p.records)

	xr, yr, err := features.SMOTE(x, y, p.smoteK, p.seed)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to balance classes")
		return fathomerr.New(fathomerr.KindDataFormat, "processing/balance", err)
	}

	p.balancedX = xr
	p.balancedY = yr
	logging.Info().
		Int("before", len(y)).
		Int("after", len(yr)).
		Msg("Class balancing computed (resample is not persisted)")
	return nil
}

// Persist writes one feature record per preprocessed training row, keyed
// by PassengerId, as a single batch.
func (p *Processor) Persist(ctx context.Context) error {
	batch := make(map[int]features.Record, len(p.ids))
	for i, id := range p.ids {
		batch[id] = p.records[i]
	}

	if err := p.store.PutBatch(ctx, batch); err != nil {
		logging.Error().Err(err).Msg("Failed to persist features")
		return fathomerr.New(fathomerr.KindConnection, "processing/persist", err)
	}

	logging.Info().Int("entities", len(batch)).Msg("Features written to store")
	return nil
}

// Run executes the full processing pipeline.
func (p *Processor) Run(ctx context.Context) error {
	logging.Info().Msg("Starting data processing")

	if err := p.Load(); err != nil {
		return err
	}
	if err := p.Preprocess(); err != nil {
		return err
	}
	if err := p.Balance(); err != nil {
		return err
	}
	if err := p.Persist(ctx); err != nil {
		return err
	}

	logging.Info().Msg("Data processing completed")
	return nil
}
