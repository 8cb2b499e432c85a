package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const recordsSchema = `
	CREATE TABLE IF NOT EXISTS records (
		collection TEXT    NOT NULL,
		position   INTEGER NOT NULL,
		data       JSONB   NOT NULL,
		PRIMARY KEY (collection, position)
	)
`

// PostgresStore keeps collections as ordered JSONB rows in a single table.
type PostgresStore struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPostgresStore creates the records table if needed and returns a store
// using pool. The pool is owned by the caller.
func NewPostgresStore(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) (*PostgresStore, error) {
	if _, err := pool.Exec(ctx, recordsSchema); err != nil {
		return nil, fmt.Errorf("failed to create records table: %w", err)
	}
	return &PostgresStore{
		pool:   pool,
		logger: logger.With().Str("store", "postgres").Logger(),
	}, nil
}

// Load reads the collection's rows in position order.
func (s *PostgresStore) Load(ctx context.Context, collection string) ([]json.RawMessage, error) {
	query := `
		SELECT data
		FROM records
		WHERE collection = $1
		ORDER BY position
	`

	rows, err := s.pool.Query(ctx, query, collection)
	if err != nil {
		s.logger.Error().Err(err).Str("collection", collection).Msg("failed to query records")
		return nil, fmt.Errorf("failed to query %s: %w", collection, err)
	}
	defer rows.Close()

	records := []json.RawMessage{}
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			s.logger.Error().Err(err).Msg("failed to scan record row")
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, json.RawMessage(data))
	}

	if err := rows.Err(); err != nil {
		s.logger.Error().Err(err).Msg("error iterating record rows")
		return nil, fmt.Errorf("error iterating %s: %w", collection, err)
	}

	return records, nil
}

// Save replaces the collection's rows inside one transaction.
func (s *PostgresStore) Save(ctx context.Context, collection string, records []json.RawMessage) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		// No-op after a successful commit.
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(ctx, `DELETE FROM records WHERE collection = $1`, collection); err != nil {
		s.logger.Error().Err(err).Str("collection", collection).Msg("failed to clear collection")
		return fmt.Errorf("failed to clear %s: %w", collection, err)
	}

	if len(records) > 0 {
		batch := &pgx.Batch{}
		for i, r := range records {
			batch.Queue(`INSERT INTO records (collection, position, data) VALUES ($1, $2, $3::jsonb)`,
				collection, i, string(r))
		}

		br := tx.SendBatch(ctx, batch)
		for range records {
			if _, err := br.Exec(); err != nil {
				_ = br.Close()
				s.logger.Error().Err(err).Str("collection", collection).Msg("failed to insert record")
				return fmt.Errorf("failed to insert into %s: %w", collection, err)
			}
		}
		if err := br.Close(); err != nil {
			return fmt.Errorf("failed to close batch: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("collection", collection).Msg("failed to commit collection")
		return fmt.Errorf("failed to commit %s: %w", collection, err)
	}

	s.logger.Debug().Str("collection", collection).Int("records", len(records)).Msg("saved collection")
	return nil
}

// Close is a no-op; the pool belongs to the caller.
func (s *PostgresStore) Close() error {
	return nil
}
