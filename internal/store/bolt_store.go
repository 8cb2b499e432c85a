package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/rs/zerolog"
	bolt "go.etcd.io/bbolt"
)

// BoltStore keeps each collection in its own bbolt bucket. Keys are the
// zero-padded record position so cursor order is insertion order.
type BoltStore struct {
	db     *bolt.DB
	logger zerolog.Logger
}

// OpenBoltStore opens or creates the database file at path.
func OpenBoltStore(path string, logger zerolog.Logger) (*BoltStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt database: %w", err)
	}

	logger = logger.With().Str("store", "bolt").Logger()
	logger.Info().Str("path", path).Msg("opened record store")

	return &BoltStore{db: db, logger: logger}, nil
}

// Load reads every record in the collection's bucket.
func (s *BoltStore) Load(ctx context.Context, collection string) ([]json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records := []json.RawMessage{}
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(collection))
		if b == nil {
			return nil
		}
		// Values are only valid for the life of the transaction.
		return b.ForEach(func(_, v []byte) error {
			records = append(records, slices.Clone(v))
			return nil
		})
	})
	if err != nil {
		s.logger.Error().Err(err).Str("collection", collection).Msg("failed to load collection")
		return nil, fmt.Errorf("failed to load %s: %w", collection, err)
	}
	return records, nil
}

// Save drops and rewrites the collection's bucket in a single transaction.
func (s *BoltStore) Save(ctx context.Context, collection string, records []json.RawMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		name := []byte(collection)
		if err := tx.DeleteBucket(name); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
			return err
		}
		b, err := tx.CreateBucket(name)
		if err != nil {
			return err
		}
		for i, r := range records {
			if err := b.Put(positionKey(i), r); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error().Err(err).Str("collection", collection).Msg("failed to save collection")
		return fmt.Errorf("failed to save %s: %w", collection, err)
	}

	s.logger.Debug().Str("collection", collection).Int("records", len(records)).Msg("saved collection")
	return nil
}

// Close closes the database file.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

func positionKey(i int) []byte {
	return []byte(fmt.Sprintf("%010d", i))
}
