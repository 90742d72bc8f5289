// Fathom - Feature Store Pipeline for Tabular Classification
// Copyright 2026 The Fathom Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/fathom-ml/fathom

// Package config loads and validates pipeline configuration.
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins):
//
//  1. Built-in defaults
//  2. Optional YAML config file (config.yaml, or CONFIG_PATH)
//  3. Environment variables with the FATHOM_ prefix
//
// Example environment overrides:
//
//	FATHOM_DATABASE_HOST=db.internal
//	FATHOM_FEATURE_STORE_BACKEND=badger
//	FATHOM_TRAINING_SEED=7
package config

import (
	"fmt"
	"path/filepath"
)

// Config is the root configuration for all pipeline stages.
type Config struct {
	Database     DatabaseConfig     `koanf:"database"`
	FeatureStore FeatureStoreConfig `koanf:"feature_store"`
	Data         DataConfig         `koanf:"data"`
	Processing   ProcessingConfig   `koanf:"processing"`
	Training     TrainingConfig     `koanf:"training"`
	Logging      LoggingConfig      `koanf:"logging"`
}

// DatabaseConfig holds connection parameters for the relational source
// the ingestion stage reads from.
type DatabaseConfig struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Name     string `koanf:"name"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	SSLMode  string `koanf:"ssl_mode"`

	// Table is the fully qualified source table.
	Table string `koanf:"table"`
}

// ConnString returns a lib/pq keyword/value connection string.
func (d DatabaseConfig) ConnString() string {
	return fmt.Sprintf("host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		d.Host, d.Port, d.Name, d.User, d.Password, d.SSLMode)
}

// FeatureStoreConfig selects and configures the feature store backend.
type FeatureStoreConfig struct {
	// Backend is "redis" (external server) or "badger" (embedded).
	Backend string `koanf:"backend"`

	Redis  RedisConfig  `koanf:"redis"`
	Badger BadgerConfig `koanf:"badger"`
}

// RedisConfig holds Redis connection parameters.
type RedisConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`
	DB   int    `koanf:"db"`
}

// Addr returns the host:port address for the Redis client.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// BadgerConfig holds the embedded store location.
type BadgerConfig struct {
	Path string `koanf:"path"`
}

// DataConfig holds filesystem locations for raw splits and artifacts.
type DataConfig struct {
	// RawDir is where ingestion writes the train/test CSV splits.
	RawDir string `koanf:"raw_dir"`

	// TrainPath and TestPath override the split file locations. When
	// empty, the files live under RawDir as train.csv and test.csv.
	TrainPath string `koanf:"train_path"`
	TestPath  string `koanf:"test_path"`

	// ModelPath is where the trained classifier artifact is written.
	ModelPath string `koanf:"model_path"`
}

// TrainCSV returns the train split location: TrainPath when set,
// otherwise train.csv under RawDir.
func (d DataConfig) TrainCSV() string {
	if d.TrainPath != "" {
		return d.TrainPath
	}
	return filepath.Join(d.RawDir, "train.csv")
}

// TestCSV returns the test split location: TestPath when set, otherwise
// test.csv under RawDir.
func (d DataConfig) TestCSV() string {
	if d.TestPath != "" {
		return d.TestPath
	}
	return filepath.Join(d.RawDir, "test.csv")
}

// ProcessingConfig controls the ingestion split and class balancing.
type ProcessingConfig struct {
	// TestSize is the held-out fraction for the raw-file split.
	TestSize float64 `koanf:"test_size"`

	// Seed drives the raw-file split and the SMOTE resampler.
	Seed int64 `koanf:"seed"`

	// SMOTENeighbors is the neighbor count used when synthesizing
	// minority-class rows.
	SMOTENeighbors int `koanf:"smote_neighbors"`
}

// TrainingConfig controls the entity-id split and hyperparameter search.
type TrainingConfig struct {
	// TestSize is the held-out fraction for the entity-id split.
	TestSize float64 `koanf:"test_size"`

	// Seed drives the id split, the search sampling, and tree training.
	Seed int64 `koanf:"seed"`

	// SearchIterations is the number of sampled parameter combinations.
	SearchIterations int `koanf:"search_iterations"`

	// CVFolds is the cross-validation fold count.
	CVFolds int `koanf:"cv_folds"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Host:    "localhost",
			Port:    5432,
			Name:    "titanic",
			User:    "postgres",
			SSLMode: "disable",
			Table:   "public.titanic",
		},
		FeatureStore: FeatureStoreConfig{
			Backend: "redis",
			Redis: RedisConfig{
				Host: "localhost",
				Port: 6379,
				DB:   0,
			},
			Badger: BadgerConfig{
				Path: "artifacts/featurestore",
			},
		},
		Data: DataConfig{
			RawDir:    "artifacts/raw",
			ModelPath: "artifacts/models/random_forest_model.gob",
		},
		Processing: ProcessingConfig{
			TestSize:       0.2,
			Seed:           42,
			SMOTENeighbors: 5,
		},
		Training: TrainingConfig{
			TestSize:         0.2,
			Seed:             42,
			SearchIterations: 10,
			CVFolds:          3,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}
