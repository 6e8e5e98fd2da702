// Package storage is the data-access layer. One Store interface is served by
// a hosted PostgREST client, an SQL client (SQLite or Postgres) and an
// in-memory store; the backend is chosen once at construction.
package storage

import (
	"context"
	"strings"

	"github.com/wichananm65/skincare-backend/internal/platform/logger"
	"github.com/wichananm65/skincare-backend/internal/product"
	"github.com/wichananm65/skincare-backend/internal/progress"
)

const (
	BackendSupabase = "supabase"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Store is the uniform contract every backend implements.
type Store interface {
	product.Repository
	progress.Repository

	// Backend names the bound implementation.
	Backend() string
	Close() error
}

// Config is what the backend selector consumes.
type Config struct {
	SupabaseURL string
	SupabaseKey string
	DatabaseURL string
}

// UseHosted reports whether both hosted credentials are present.
func (c Config) UseHosted() bool {
	return strings.TrimSpace(c.SupabaseURL) != "" && strings.TrimSpace(c.SupabaseKey) != ""
}

// Open binds to the hosted store when credentials are configured and to the
// SQL store otherwise. Only the SQL branch initializes the schema.
func Open(ctx context.Context, cfg Config, log *logger.Logger) (Store, error) {
	if log == nil {
		log = logger.NewNop()
	}
	if cfg.UseHosted() {
		s := NewRESTStore(strings.TrimSpace(cfg.SupabaseURL), strings.TrimSpace(cfg.SupabaseKey), log)
		log.Info("storage backend selected", "backend", s.Backend(), "url", s.baseURL)
		return s, nil
	}
	s, err := OpenSQL(ctx, cfg.DatabaseURL, log)
	if err != nil {
		return nil, err
	}
	log.Info("storage backend selected", "backend", s.Backend(), "reason", "hosted credentials not configured")
	return s, nil
}
