// Fathom - Feature Store Pipeline for Tabular Classification
// Copyright 2026 The Fathom Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/fathom-ml/fathom

package featurestore

import (
	"context"

	"github.com/fathom-ml/fathom/internal/config"
	"github.com/fathom-ml/fathom/internal/fathomerr"
	"github.com/fathom-ml/fathom/internal/logging"
)

// Open constructs the configured backend. Validate has already restricted
// Backend to the known names, but an unknown value still errors rather
// than silently defaulting.
func Open(ctx context.Context, cfg config.FeatureStoreConfig) (Store, error) {
	switch cfg.Backend {
	case "redis":
		store, err := NewRedis(ctx, cfg.Redis.Addr(), cfg.Redis.DB)
		if err != nil {
			return nil, err
		}
		logging.Info().Str("addr", cfg.Redis.Addr()).Int("db", cfg.Redis.DB).
			Msg("Connected to Redis feature store")
		return store, nil
	case "badger":
		store, err := NewBadger(cfg.Badger.Path)
		if err != nil {
			return nil, err
		}
		logging.Info().Str("path", cfg.Badger.Path).
			Msg("Opened embedded feature store")
		return store, nil
	default:
		return nil, fathomerr.Newf(fathomerr.KindConnection, "featurestore",
			"unknown backend %q", cfg.Backend)
	}
}
