package profile

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS profile_values (
	profile_id UUID NOT NULL,
	key TEXT NOT NULL,
	value JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (profile_id, key)
)`

// PostgresStore keeps one row per (profile, key) in the profile_values table.
type PostgresStore struct {
	pool      *pgxpool.Pool
	profileID uuid.UUID
}

// Connect establishes a connection pool and returns a store scoped to
// profileID.
func Connect(ctx context.Context, databaseURL string, profileID uuid.UUID) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStore{pool: pool, profileID: profileID}, nil
}

// Close closes the connection pool
func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema creates the profile_values table if it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create profile schema: %w", err)
	}
	return nil
}

// ProfileID returns the profile the store reads and writes.
func (s *PostgresStore) ProfileID() uuid.UUID {
	return s.profileID
}

// ForProfile returns a store for another profile sharing the same pool.
func (s *PostgresStore) ForProfile(profileID uuid.UUID) *PostgresStore {
	return &PostgresStore{pool: s.pool, profileID: profileID}
}

// Get implements Store.
func (s *PostgresStore) Get(ctx context.Context, keys ...string) (Values, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT key, value FROM profile_values
		 WHERE profile_id = $1 AND key = ANY($2)`,
		s.profileID, keys,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query profile values: %w", err)
	}
	defer rows.Close()

	values := make(Values, len(keys))
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan profile value: %w", err)
		}
		values[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating profile values: %w", err)
	}
	return values, nil
}

// Set implements Store. All keys are written in one transaction.
func (s *PostgresStore) Set(ctx context.Context, values Values) error {
	if err := values.CheckKeys(); err != nil {
		return err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	batch := &pgx.Batch{}
	for key, raw := range values {
		batch.Queue(
			`INSERT INTO profile_values (profile_id, key, value)
			 VALUES ($1, $2, $3)
			 ON CONFLICT (profile_id, key) DO UPDATE SET value = $3, updated_at = NOW()`,
			s.profileID, key, []byte(raw),
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to write profile values: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit profile values: %w", err)
	}
	return nil
}
