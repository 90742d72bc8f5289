// Fathom - Feature Store Pipeline for Tabular Classification
// Copyright 2026 The Fathom Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/fathom-ml/fathom

package config

import "fmt"

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if err := c.validateFeatureStore(); err != nil {
		return err
	}
	if err := c.validateData(); err != nil {
		return err
	}
	if err := c.validateProcessing(); err != nil {
		return err
	}
	return c.validateTraining()
}

func (c *Config) validateDatabase() error {
	if c.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		return fmt.Errorf("database.port must be in 1-65535, got %d", c.Database.Port)
	}
	if c.Database.Name == "" {
		return fmt.Errorf("database.name is required")
	}
	if c.Database.Table == "" {
		return fmt.Errorf("database.table is required")
	}
	return nil
}

func (c *Config) validateFeatureStore() error {
	switch c.FeatureStore.Backend {
	case "redis":
		if c.FeatureStore.Redis.Host == "" {
			return fmt.Errorf("feature_store.redis.host is required")
		}
		if p := c.FeatureStore.Redis.Port; p <= 0 || p > 65535 {
			return fmt.Errorf("feature_store.redis.port must be in 1-65535, got %d", p)
		}
		if c.FeatureStore.Redis.DB < 0 {
			return fmt.Errorf("feature_store.redis.db must be >= 0, got %d", c.FeatureStore.Redis.DB)
		}
	case "badger":
		if c.FeatureStore.Badger.Path == "" {
			return fmt.Errorf("feature_store.badger.path is required")
		}
	default:
		return fmt.Errorf("feature_store.backend must be \"redis\" or \"badger\", got %q", c.FeatureStore.Backend)
	}
	return nil
}

func (c *Config) validateData() error {
	if c.Data.RawDir == "" && (c.Data.TrainPath == "" || c.Data.TestPath == "") {
		return fmt.Errorf("data.raw_dir is required unless both data.train_path and data.test_path are set")
	}
	if c.Data.ModelPath == "" {
		return fmt.Errorf("data.model_path is required")
	}
	return nil
}

func (c *Config) validateProcessing() error {
	if ts := c.Processing.TestSize; ts <= 0 || ts >= 1 {
		return fmt.Errorf("processing.test_size must be in (0, 1), got %g", ts)
	}
	if c.Processing.SMOTENeighbors < 1 {
		return fmt.Errorf("processing.smote_neighbors must be >= 1, got %d", c.Processing.SMOTENeighbors)
	}
	return nil
}

func (c *Config) validateTraining() error {
	if ts := c.Training.TestSize; ts <= 0 || ts >= 1 {
		return fmt.Errorf("training.test_size must be in (0, 1), got %g", ts)
	}
	if c.Training.SearchIterations < 1 {
		return fmt.Errorf("training.search_iterations must be >= 1, got %d", c.Training.SearchIterations)
	}
	if c.Training.CVFolds < 2 {
		return fmt.Errorf("training.cv_folds must be >= 2, got %d", c.Training.CVFolds)
	}
	return nil
}
