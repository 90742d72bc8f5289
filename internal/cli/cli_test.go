// Fathom - Feature Store Pipeline for Tabular Classification
// Copyright 2026 The Fathom Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/fathom-ml/fathom

package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_ExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
feature_store:
  backend: badger
  badger:
    path: /tmp/fs
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := LoadConfig(path)
	if cfg.FeatureStore.Backend != "badger" {
		t.Errorf("Backend = %q, want badger", cfg.FeatureStore.Backend)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	// Untouched sections keep defaults.
	if cfg.Training.Seed != 42 {
		t.Errorf("Training.Seed = %d, want 42", cfg.Training.Seed)
	}
}
