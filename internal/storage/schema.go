package storage

import (
	"context"
	"fmt"
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		brand TEXT,
		category TEXT,
		skin_type TEXT,
		concerns TEXT,
		price REAL,
		rating REAL,
		description TEXT,
		ingredients TEXT,
		purchase_link TEXT,
		image_url TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS user_progress (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id TEXT NOT NULL,
		skin_type TEXT,
		acne_severity REAL,
		oiliness_level REAL,
		skin_tone TEXT,
		image_path TEXT,
		confidence_scores TEXT,
		timestamp TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_user_progress_user_ts ON user_progress (user_id, timestamp)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		brand TEXT,
		category TEXT,
		skin_type TEXT,
		concerns TEXT,
		price DOUBLE PRECISION,
		rating DOUBLE PRECISION,
		description TEXT,
		ingredients TEXT,
		purchase_link TEXT,
		image_url TEXT,
		created_at TIMESTAMPTZ DEFAULT now(),
		updated_at TIMESTAMPTZ DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS user_progress (
		id BIGSERIAL PRIMARY KEY,
		user_id TEXT NOT NULL,
		skin_type TEXT,
		acne_severity DOUBLE PRECISION,
		oiliness_level DOUBLE PRECISION,
		skin_tone TEXT,
		image_path TEXT,
		confidence_scores TEXT,
		timestamp TIMESTAMPTZ DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_user_progress_user_ts ON user_progress (user_id, timestamp)`,
}

// InitSchema creates the products and user_progress tables when they are
// missing. It is safe to run on every start; existing rows are untouched.
func (s *SQLStore) InitSchema(ctx context.Context) error {
	stmts := sqliteSchema
	if s.dialect == DialectPostgres {
		stmts = postgresSchema
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr(s.Backend(), "init_schema", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return storageErr(s.Backend(), "init_schema", fmt.Errorf("exec schema: %w", err))
		}
	}
	if err := tx.Commit(); err != nil {
		return storageErr(s.Backend(), "init_schema", err)
	}
	return nil
}
