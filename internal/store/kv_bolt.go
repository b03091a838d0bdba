// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/MKhiriev/forkeys/internal/logger"
)

var _ Batcher = (*boltStore)(nil)

// VaultBucket holds every vault key in a bbolt file.
var VaultBucket = []byte("vault")

type boltStore struct {
	db     *bolt.DB
	logger *logger.Logger
}

// NewBoltStore opens (or creates) a bbolt file at path and returns a
// [KeyValueStore] over it. The file is created with 0600 permissions.
func NewBoltStore(path string, log *logger.Logger) (KeyValueStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("%w: create bolt dir: %w", ErrStorage, err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		log.Err(err).Str("func", "NewBoltStore").Msg("error opening bolt database")
		return nil, fmt.Errorf("%w: open bolt database: %w", ErrStorage, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(VaultBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		log.Err(err).Str("func", "NewBoltStore").Msg("error creating vault bucket")
		return nil, fmt.Errorf("%w: create bucket: %w", ErrStorage, err)
	}
	log.Debug().Str("func", "NewBoltStore").Str("path", path).Msg("opened bolt database")

	return &boltStore{db: db, logger: log}, nil
}

func (b *boltStore) Get(_ context.Context, key string) (string, bool, error) {
	var (
		value string
		found bool
	)
	err := b.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(VaultBucket).Get([]byte(key))
		if v == nil {
			return nil
		}
		// v is only valid inside the transaction; string() copies it.
		value, found = string(v), true
		return nil
	})
	if err != nil {
		b.logger.Err(err).Str("func", "boltStore.Get").Str("key", key).Msg("failed to read key")
		return "", false, fmt.Errorf("%w: get %s: %w", ErrStorage, key, err)
	}

	return value, found, nil
}

func (b *boltStore) Put(_ context.Context, key, value string) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(VaultBucket).Put([]byte(key), []byte(value))
	})
	if err != nil {
		b.logger.Err(err).Str("func", "boltStore.Put").Str("key", key).Msg("failed to write key")
		return fmt.Errorf("%w: put %s: %w", ErrStorage, key, err)
	}

	return nil
}

func (b *boltStore) Delete(_ context.Context, key string) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(VaultBucket).Delete([]byte(key))
	})
	if err != nil {
		b.logger.Err(err).Str("func", "boltStore.Delete").Str("key", key).Msg("failed to delete key")
		return fmt.Errorf("%w: delete %s: %w", ErrStorage, key, err)
	}

	return nil
}

// Apply writes entries in a single bbolt transaction.
func (b *boltStore) Apply(_ context.Context, entries []Entry) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(VaultBucket)
		for _, e := range entries {
			var err error
			if e.Delete {
				err = bucket.Delete([]byte(e.Key))
			} else {
				err = bucket.Put([]byte(e.Key), []byte(e.Value))
			}
			if err != nil {
				return fmt.Errorf("%s: %w", e.Key, err)
			}
		}
		return nil
	})
	if err != nil {
		b.logger.Err(err).Str("func", "boltStore.Apply").Int("entries", len(entries)).Msg("failed to apply batch")
		return fmt.Errorf("%w: apply batch: %w", ErrStorage, err)
	}

	return nil
}

func (b *boltStore) Close() error {
	return b.db.Close()
}
