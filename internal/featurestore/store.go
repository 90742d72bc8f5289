// Fathom - Feature Store Pipeline for Tabular Classification
// Copyright 2026 The Fathom Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/fathom-ml/fathom

// Package featurestore provides keyed persistence of per-entity feature
// records.
//
// Records are stored under keys of the form "entity:{id}:features" with
// JSON-encoded values, so the store contents stay readable with standard
// key-value tooling. Two backends implement the same contract:
//
//   - redis: an external Redis server (the default)
//   - badger: an embedded BadgerDB directory for runs without a server
//
// # Contract
//
// Writes are whole-record and last-write-wins; there is no partial-field
// update and no atomicity across a batch. A batch interrupted mid-write
// leaves a prefix of its entries stored and the rest absent. ListIDs is
// derived by scanning the key space, so it reflects the store's current
// contents, including entries left over from earlier runs.
package featurestore

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/fathom-ml/fathom/internal/fathomerr"
	"github.com/fathom-ml/fathom/internal/features"
)

// ErrNotFound is the absent marker: returned by Get when no record exists
// for the requested entity id. It is distinct from an empty record.
var ErrNotFound = fathomerr.Newf(fathomerr.KindNotFound, "featurestore", "record not found")

// Store is the feature store client contract shared by all backends.
type Store interface {
	// Put serializes rec and writes it under the entity's key.
	// Idempotent; a later Put for the same id overwrites wholesale.
	Put(ctx context.Context, id int, rec features.Record) error

	// Get returns the record for id, or an error wrapping ErrNotFound.
	Get(ctx context.Context, id int) (features.Record, error)

	// PutBatch applies Put once per entry. No atomicity across entries.
	PutBatch(ctx context.Context, batch map[int]features.Record) error

	// GetBatch looks up every id. Absent ids are present in the result
	// with a nil record rather than being omitted.
	GetBatch(ctx context.Context, ids []int) (map[int]*features.Record, error)

	// ListIDs returns all entity ids currently present, ascending.
	ListIDs(ctx context.Context) ([]int, error)

	// Reset removes every feature record. Intended for test isolation
	// and clean reruns.
	Reset(ctx context.Context) error

	// Close releases the backend connection.
	Close() error
}

const (
	keyPrefix = "entity:"
	keySuffix = ":features"
)

// Key returns the storage key for an entity id.
func Key(id int) string {
	return keyPrefix + strconv.Itoa(id) + keySuffix
}

// ParseKey extracts the entity id from a storage key. The second return is
// false for keys that do not follow the naming scheme.
func ParseKey(key string) (int, bool) {
	if !strings.HasPrefix(key, keyPrefix) || !strings.HasSuffix(key, keySuffix) {
		return 0, false
	}
	id, err := strconv.Atoi(key[len(keyPrefix) : len(key)-len(keySuffix)])
	if err != nil {
		return 0, false
	}
	return id, true
}

// encodeRecord serializes a record for storage.
func encodeRecord(rec features.Record) ([]byte, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	return data, nil
}

// decodeRecord deserializes a stored record.
func decodeRecord(data []byte) (features.Record, error) {
	var rec features.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return features.Record{}, fathomerr.New(fathomerr.KindDataFormat, "featurestore",
			fmt.Errorf("decode record: %w", err))
	}
	return rec, nil
}

// getBatch implements GetBatch in terms of per-id Get, shared by backends.
func getBatch(ctx context.Context, s Store, ids []int) (map[int]*features.Record, error) {
	out := make(map[int]*features.Record, len(ids))
	for _, id := range ids {
		rec, err := s.Get(ctx, id)
		if err != nil {
			if fathomerr.IsKind(err, fathomerr.KindNotFound) {
				out[id] = nil
				continue
			}
			return nil, err
		}
		r := rec
		out[id] = &r
	}
	return out, nil
}

// putBatch implements PutBatch in terms of per-id Put, shared by backends.
func putBatch(ctx context.Context, s Store, batch map[int]features.Record) error {
	for id, rec := range batch {
		if err := s.Put(ctx, id, rec); err != nil {
			return fmt.Errorf("entity %d: %w", id, err)
		}
	}
	return nil
}
