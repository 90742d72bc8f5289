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

	"github.com/redis/go-redis/v9"

	"github.com/fathom-ml/fathom/internal/fathomerr"
	"github.com/fathom-ml/fathom/internal/features"
)

// scanPattern matches every feature record key.
const scanPattern = keyPrefix + "*" + keySuffix

// scanCount is the per-iteration hint for Redis SCAN.
const scanCount = 500

// RedisStore is the Redis-backed feature store client.
type RedisStore struct {
	client *redis.Client
}

// NewRedis connects to the Redis server at addr using the given logical
// database and verifies the connection with a ping.
func NewRedis(ctx context.Context, addr string, db int) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fathomerr.New(fathomerr.KindConnection, "featurestore",
			fmt.Errorf("ping %s db %d: %w", addr, db, err))
	}
	return &RedisStore{client: client}, nil
}

// Put serializes rec and writes it under the entity's key.
func (s *RedisStore) Put(ctx context.Context, id int, rec features.Record) error {
	data, err := encodeRecord(rec)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, Key(id), data, 0).Err(); err != nil {
		return fathomerr.New(fathomerr.KindConnection, "featurestore",
			fmt.Errorf("set %s: %w", Key(id), err))
	}
	return nil
}

// Get returns the record for id, or an error wrapping ErrNotFound.
func (s *RedisStore) Get(ctx context.Context, id int) (features.Record, error) {
	data, err := s.client.Get(ctx, Key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return features.Record{}, fmt.Errorf("entity %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return features.Record{}, fathomerr.New(fathomerr.KindConnection, "featurestore",
			fmt.Errorf("get %s: %w", Key(id), err))
	}
	return decodeRecord(data)
}

// PutBatch applies Put once per entry.
func (s *RedisStore) PutBatch(ctx context.Context, batch map[int]features.Record) error {
	return putBatch(ctx, s, batch)
}

// GetBatch looks up every id; absent ids map to a nil record.
func (s *RedisStore) GetBatch(ctx context.Context, ids []int) (map[int]*features.Record, error) {
	return getBatch(ctx, s, ids)
}

// ListIDs scans the key space for feature record keys and extracts the id
// segment from each.
func (s *RedisStore) ListIDs(ctx context.Context) ([]int, error) {
	keys, err := s.scanKeys(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]int, 0, len(keys))
	for _, key := range keys {
		if id, ok := ParseKey(key); ok {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids, nil
}

// Reset deletes every feature record key.
func (s *RedisStore) Reset(ctx context.Context) error {
	keys, err := s.scanKeys(ctx)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fathomerr.New(fathomerr.KindConnection, "featurestore",
			fmt.Errorf("delete %d keys: %w", len(keys), err))
	}
	return nil
}

// Close releases the client connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) scanKeys(ctx context.Context) ([]string, error) {
	var keys []string
	var cursor uint64
	for {
		batch, next, err := s.client.Scan(ctx, cursor, scanPattern, scanCount).Result()
		if err != nil {
			return nil, fathomerr.New(fathomerr.KindConnection, "featurestore",
				fmt.Errorf("scan %s: %w", scanPattern, err))
		}
		keys = append(keys, batch...)
		if next == 0 {
			return keys, nil
		}
		cursor = next
	}
}
