// Fathom - Feature Store Pipeline for Tabular Classification
// Copyright 2026 The Fathom Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/fathom-ml/fathom

package featurestore

import (
	"context"
	"errors"
	"fmt"
	"sort"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/fathom-ml/fathom/internal/fathomerr"
	"github.com/fathom-ml/fathom/internal/features"
)

// BadgerStore is the embedded feature store backend. It keeps the same key
// scheme and value encoding as the Redis backend, so the two are
// interchangeable behind the Store interface.
type BadgerStore struct {
	db *badger.DB
}

// NewBadger opens (or creates) the embedded store at path.
func NewBadger(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fathomerr.New(fathomerr.KindConnection, "featurestore",
			fmt.Errorf("open badger at %s: %w", path, err))
	}
	return &BadgerStore{db: db}, nil
}

// Put serializes rec and writes it under the entity's key.
func (s *BadgerStore) Put(ctx context.Context, id int, rec features.Record) error {
	data, err := encodeRecord(rec)
	if err != nil {
		return err
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(Key(id)), data)
	})
	if err != nil {
		return fathomerr.New(fathomerr.KindConnection, "featurestore",
			fmt.Errorf("set %s: %w", Key(id), err))
	}
	return nil
}

// Get returns the record for id, or an error wrapping ErrNotFound.
func (s *BadgerStore) Get(ctx context.Context, id int) (features.Record, error) {
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(Key(id)))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return features.Record{}, fmt.Errorf("entity %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return features.Record{}, fathomerr.New(fathomerr.KindConnection, "featurestore",
			fmt.Errorf("get %s: %w", Key(id), err))
	}
	return decodeRecord(data)
}

// PutBatch applies Put once per entry.
func (s *BadgerStore) PutBatch(ctx context.Context, batch map[int]features.Record) error {
	return putBatch(ctx, s, batch)
}

// GetBatch looks up every id; absent ids map to a nil record.
func (s *BadgerStore) GetBatch(ctx context.Context, ids []int) (map[int]*features.Record, error) {
	return getBatch(ctx, s, ids)
}

// ListIDs iterates the feature-key prefix and extracts the id segment from
// each key.
func (s *BadgerStore) ListIDs(ctx context.Context) ([]int, error) {
	var ids []int
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(keyPrefix)

		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			if id, ok := ParseKey(string(it.Item().Key())); ok {
				ids = append(ids, id)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fathomerr.New(fathomerr.KindConnection, "featurestore",
			fmt.Errorf("iterate keys: %w", err))
	}
	sort.Ints(ids)
	return ids, nil
}

// Reset drops every feature record key.
func (s *BadgerStore) Reset(ctx context.Context) error {
	if err := s.db.DropPrefix([]byte(keyPrefix)); err != nil {
		return fathomerr.New(fathomerr.KindConnection, "featurestore",
			fmt.Errorf("drop prefix: %w", err))
	}
	return nil
}

// Close closes the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}
