// Fathom - Feature Store Pipeline for Tabular Classification
// Copyright 2026 The Fathom Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/fathom-ml/fathom

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found is used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/fathom/config.yaml",
	"/etc/fathom/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config
// file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// envPrefix is stripped from environment variables before mapping them to
// config paths.
const envPrefix = "FATHOM_"

// Load loads configuration using Koanf v2 with layered sources:
//
//  1. Defaults: built-in sensible defaults
//  2. Config file: optional YAML file (if one exists)
//  3. Environment variables: override any setting
func Load() (*Config, error) {
	return LoadFile(findConfigFile())
}

// LoadFile loads configuration from the given YAML file path, layered
// between defaults and environment variables. An empty path skips the file
// layer.
func LoadFile(path string) (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	// Layer 2: config file (optional)
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	// Layer 3: environment variables (highest priority)
	// FATHOM_DATABASE_HOST -> database.host
	// FATHOM_FEATURE_STORE_BACKEND -> feature_store.backend
	envProvider := env.Provider(envPrefix, ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sections are the top-level config groups, longest names first so that
// FEATURE_STORE_X maps to feature_store.x rather than feature.store_x.
var sections = []string{
	"feature_store",
	"processing",
	"database",
	"training",
	"logging",
	"data",
}

// envTransformFunc maps environment variable names (with the prefix already
// stripped by the provider) to koanf config paths.
//
// Examples:
//   - DATABASE_HOST -> database.host
//   - FEATURE_STORE_REDIS_HOST -> feature_store.redis.host
//   - TRAINING_SEARCH_ITERATIONS -> training.search_iterations
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))

	for _, section := range sections {
		if !strings.HasPrefix(key, section+"_") {
			continue
		}
		rest := strings.TrimPrefix(key, section+"_")

		// Nested groups under feature_store carry their own segment.
		if section == "feature_store" {
			for _, sub := range []string{"redis", "badger"} {
				if strings.HasPrefix(rest, sub+"_") {
					return section + "." + sub + "." + strings.TrimPrefix(rest, sub+"_")
				}
			}
		}
		return section + "." + rest
	}

	// Unknown keys are ignored by the unmarshal step.
	return key
}
