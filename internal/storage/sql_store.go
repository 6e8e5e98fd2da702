package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/wichananm65/skincare-backend/internal/platform/logger"
	"github.com/wichananm65/skincare-backend/internal/product"
	"github.com/wichananm65/skincare-backend/internal/progress"
)

// DefaultDatabaseURL is used when no connection string is configured.
const DefaultDatabaseURL = "sqlite:///./database/skincare.db"

// SQLStore serves the Store contract from an SQL database. The *sql.DB pool
// lives for the process; each call acquires, executes and releases.
type SQLStore struct {
	db      *sql.DB
	dialect Dialect
	log     *logger.Logger
}

const (
	insertProductQuery = `
		INSERT INTO products (name, brand, category, skin_type, concerns, price, rating, description, ingredients, purchase_link, image_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	insertProgressQuery = `
		INSERT INTO user_progress (user_id, skin_type, acne_severity, oiliness_level, skin_tone, image_path, confidence_scores)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	selectProgressQuery = `
		SELECT ` + progressSelectColumns + `
		FROM user_progress
		WHERE user_id = ?
		ORDER BY timestamp ASC, id ASC
	`
)

// NewSQLStore wraps an open database. It does not touch the schema; OpenSQL
// does that.
func NewSQLStore(db *sql.DB, dialect Dialect, log *logger.Logger) *SQLStore {
	if log == nil {
		log = logger.NewNop()
	}
	return &SQLStore{db: db, dialect: dialect, log: log}
}

// ParseDatabaseURL maps a connection string onto a dialect and a driver DSN.
// Accepted forms: sqlite:///path, sqlite://, file:..., a bare file path,
// and postgres:// / postgresql:// (optionally postgresql+driver://).
func ParseDatabaseURL(raw string) (Dialect, string, error) {
	u := strings.TrimSpace(raw)
	if u == "" {
		u = DefaultDatabaseURL
	}
	lower := strings.ToLower(u)
	switch {
	case strings.HasPrefix(lower, "sqlite://"):
		path := u[len("sqlite://"):]
		if strings.HasPrefix(path, "/") {
			path = path[1:]
		}
		if path == "" {
			path = ":memory:"
		}
		return DialectSQLite, path, nil
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return DialectPostgres, u, nil
	case strings.HasPrefix(lower, "postgresql+"), strings.HasPrefix(lower, "postgres+"):
		i := strings.Index(u, "://")
		if i < 0 {
			return "", "", fmt.Errorf("malformed database url %q", raw)
		}
		return DialectPostgres, "postgresql" + u[i:], nil
	case strings.HasPrefix(lower, "file:"):
		return DialectSQLite, u, nil
	case strings.Contains(u, "://"):
		return "", "", fmt.Errorf("unsupported database url scheme in %q", raw)
	default:
		return DialectSQLite, u, nil
	}
}

// OpenSQL connects to the database named by databaseURL and makes sure the
// schema exists.
func OpenSQL(ctx context.Context, databaseURL string, log *logger.Logger) (*SQLStore, error) {
	dialect, dsn, err := ParseDatabaseURL(databaseURL)
	if err != nil {
		return nil, err
	}

	var db *sql.DB
	switch dialect {
	case DialectPostgres:
		db, err = sql.Open("pgx", dsn)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
	default:
		db, err = openSQLite(dsn)
		if err != nil {
			return nil, err
		}
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, storageErr(string(dialect), "connect", err)
	}

	s := NewSQLStore(db, dialect, log)
	if err := s.InitSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func openSQLite(dsn string) (*sql.DB, error) {
	inMemory := strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
	if !inMemory && !strings.HasPrefix(dsn, "file:") {
		if dir := filepath.Dir(dsn); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create database directory: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// one connection: an in-memory database lives and dies with its
	// connection, and SQLite serializes writers anyway
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	}
	if !inMemory {
		pragmas = append(pragmas, "PRAGMA journal_mode=WAL")
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("execute %s: %w", pragma, err)
		}
	}
	return db, nil
}

func (s *SQLStore) Backend() string {
	if s.dialect == DialectPostgres {
		return BackendPostgres
	}
	return BackendSQLite
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (s *SQLStore) InsertProduct(ctx context.Context, p product.Product) error {
	_, err := s.db.ExecContext(ctx, s.dialect.rebind(insertProductQuery),
		p.Name,
		p.Brand,
		p.Category,
		p.SkinType,
		p.Concerns,
		p.Price,
		p.Rating,
		p.Description,
		p.Ingredients,
		p.PurchaseLink,
		p.ImageURL,
	)
	return storageErr(s.Backend(), "insert_product", err)
}

// GetProducts returns rows whose named columns equal the given values. Values
// are bound as strings; no numeric coercion is attempted.
func (s *SQLStore) GetProducts(ctx context.Context, equal map[string]string) ([]product.Product, error) {
	clauses, err := equalityClauses(equal)
	if err != nil {
		return nil, storageErr(s.Backend(), "get_products", err)
	}
	products, err := s.queryProducts(ctx, clauses)
	return products, storageErr(s.Backend(), "get_products", err)
}

func (s *SQLStore) GetProductsByCriteria(ctx context.Context, f product.Filter) ([]product.Product, error) {
	clauses, err := criteriaClauses(f)
	if err != nil {
		return nil, storageErr(s.Backend(), "get_products_by_criteria", err)
	}
	products, err := s.queryProducts(ctx, clauses)
	return products, storageErr(s.Backend(), "get_products_by_criteria", err)
}

func (s *SQLStore) queryProducts(ctx context.Context, clauses []clause) ([]product.Product, error) {
	q, args := selectProductsSQL(s.dialect, clauses)
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]product.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// InsertProgress stores one analysis with the confidence scores encoded as
// JSON text.
func (s *SQLStore) InsertProgress(ctx context.Context, rec progress.Record) error {
	var scores sql.NullString
	text, ok, err := rec.ConfidenceScores.Encode()
	if err != nil {
		return storageErr(s.Backend(), "insert_progress", fmt.Errorf("encode confidence scores: %w", err))
	}
	if ok {
		scores = sql.NullString{String: text, Valid: true}
	}
	_, err = s.db.ExecContext(ctx, s.dialect.rebind(insertProgressQuery),
		rec.UserID,
		rec.SkinType,
		rec.AcneSeverity,
		rec.OilinessLevel,
		rec.SkinTone,
		rec.ImagePath,
		scores,
	)
	return storageErr(s.Backend(), "insert_progress", err)
}

// GetUserProgress returns a user's analyses oldest first. Rows with corrupt
// confidence text are returned with the raw text rather than failing.
func (s *SQLStore) GetUserProgress(ctx context.Context, userID string) ([]progress.Record, error) {
	rows, err := s.db.QueryContext(ctx, s.dialect.rebind(selectProgressQuery), userID)
	if err != nil {
		return nil, storageErr(s.Backend(), "get_user_progress", err)
	}
	defer rows.Close()

	onDecodeErr := warnUndecodable(s.log, s.Backend())
	out := make([]progress.Record, 0)
	for rows.Next() {
		rec, err := scanProgress(rows, onDecodeErr)
		if err != nil {
			return nil, storageErr(s.Backend(), "get_user_progress", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(s.Backend(), "get_user_progress", err)
	}
	return out, nil
}
