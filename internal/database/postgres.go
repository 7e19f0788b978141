package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "github.com/lib/pq"
)

// ConnectPostgres opens the pool, pings it and creates the store table.
func ConnectPostgres(ctx context.Context, postgresURI string) (*sql.DB, error) {
	db, err := sql.Open("postgres", postgresURI)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, err
	}

	if err := InitPostgresTables(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// InitPostgresTables creates the profile store table if it doesn't exist.
func InitPostgresTables(ctx context.Context, db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS profile_store (
			profile_id VARCHAR(64) NOT NULL,
			key VARCHAR(255) NOT NULL,
			value TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT NOW(),
			PRIMARY KEY (profile_id, key)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_profile_store_updated_at ON profile_store(updated_at)`,
	}

	for _, query := range queries {
		if _, err := db.ExecContext(ctx, query); err != nil {
			return err
		}
	}
	return nil
}

// PostgresStore keeps one row per (profile, key).
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Get(ctx context.Context, profile, key string) ([]byte, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM profile_store WHERE profile_id = $1 AND key = $2`,
		profile, key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return []byte(value), true, nil
}

func (s *PostgresStore) Set(ctx context.Context, profile, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO profile_store (profile_id, key, value, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (profile_id, key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`, profile, key, string(value))
	return err
}

func (s *PostgresStore) Remove(ctx context.Context, profile, key string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM profile_store WHERE profile_id = $1 AND key = $2`,
		profile, key,
	)
	return err
}

func (s *PostgresStore) Clear(ctx context.Context, profile string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM profile_store WHERE profile_id = $1`, profile)
	return err
}
