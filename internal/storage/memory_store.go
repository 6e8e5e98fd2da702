package storage

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/wichananm65/skincare-backend/internal/product"
	"github.com/wichananm65/skincare-backend/internal/progress"
)

// MemoryStore is an in-process Store useful for tests and local demos. It
// evaluates the same clauses the SQL and REST renderers emit.
type MemoryStore struct {
	mu       sync.RWMutex
	products []product.Product
	progress []memoryProgress
	nextID   int64
	nextPID  int64
	lastTS   time.Time
	now      func() time.Time
}

// memoryProgress keeps scores in their stored text form, like the SQL
// backends, so reads go through the same decode path.
type memoryProgress struct {
	rec    progress.Record
	scores string
}

func NewMemoryStore(seed []product.Product) *MemoryStore {
	s := &MemoryStore{
		products: make([]product.Product, 0, len(seed)),
		nextID:   1,
		nextPID:  1,
		now:      time.Now,
	}

	var maxID int64
	for _, p := range seed {
		s.products = append(s.products, p)
		if p.ID > maxID {
			maxID = p.ID
		}
	}
	s.nextID = maxID + 1
	for i := range s.products {
		if s.products[i].ID == 0 {
			s.products[i].ID = s.nextID
			s.nextID++
		}
	}
	return s
}

func (s *MemoryStore) Backend() string { return BackendMemory }

func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) InsertProduct(ctx context.Context, p product.Product) error {
	if err := ctx.Err(); err != nil {
		return storageErr(s.Backend(), "insert_product", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	p.ID = s.nextID
	s.nextID++
	p.CreatedAt = &now
	p.UpdatedAt = &now
	s.products = append(s.products, p)
	return nil
}

func (s *MemoryStore) GetProducts(ctx context.Context, equal map[string]string) ([]product.Product, error) {
	clauses, err := equalityClauses(equal)
	if err != nil {
		return nil, storageErr(s.Backend(), "get_products", err)
	}
	return s.match(ctx, "get_products", clauses)
}

func (s *MemoryStore) GetProductsByCriteria(ctx context.Context, f product.Filter) ([]product.Product, error) {
	clauses, err := criteriaClauses(f)
	if err != nil {
		return nil, storageErr(s.Backend(), "get_products_by_criteria", err)
	}
	return s.match(ctx, "get_products_by_criteria", clauses)
}

func (s *MemoryStore) match(ctx context.Context, opName string, clauses []clause) ([]product.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, storageErr(s.Backend(), opName, err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]product.Product, 0)
	for _, p := range s.products {
		if matchesAll(p, clauses) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) InsertProgress(ctx context.Context, rec progress.Record) error {
	if err := ctx.Err(); err != nil {
		return storageErr(s.Backend(), "insert_progress", err)
	}
	text, _, err := rec.ConfidenceScores.Encode()
	if err != nil {
		return storageErr(s.Backend(), "insert_progress", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// timestamps never go backwards, so insertion order is preserved on read
	ts := s.now().UTC()
	if !ts.After(s.lastTS) {
		ts = s.lastTS.Add(time.Microsecond)
	}
	s.lastTS = ts

	rec.ID = s.nextPID
	s.nextPID++
	rec.Timestamp = &ts
	rec.ConfidenceScores = progress.ConfidenceScores{}
	s.progress = append(s.progress, memoryProgress{rec: rec, scores: text})
	return nil
}

func (s *MemoryStore) GetUserProgress(ctx context.Context, userID string) ([]progress.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, storageErr(s.Backend(), "get_user_progress", err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]progress.Record, 0)
	for _, row := range s.progress {
		if row.rec.UserID != userID {
			continue
		}
		rec := row.rec
		ts := *row.rec.Timestamp
		rec.Timestamp = &ts
		// undecodable text is kept raw, same as the SQL path
		rec.ConfidenceScores, _ = progress.DecodeConfidenceScores(row.scores)
		out = append(out, rec)
	}
	return out, nil
}

func matchesAll(p product.Product, clauses []clause) bool {
	for _, c := range clauses {
		if !matches(p, c) {
			return false
		}
	}
	return true
}

func matches(p product.Product, c clause) bool {
	switch c.op {
	case opEq:
		return equalsColumn(p, c.column, c.values[0])
	case opLTE:
		v, ok := numericColumn(p, c.column)
		return ok && v <= c.num
	case opGTE:
		v, ok := numericColumn(p, c.column)
		return ok && v >= c.num
	case opContains:
		return containsFold(textColumn(p, c.column), c.values[0])
	case opIn:
		got := textColumn(p, c.column)
		for _, v := range c.values {
			if got == v {
				return true
			}
		}
		return false
	case opAnyContains:
		got := textColumn(p, c.column)
		for _, v := range c.values {
			if containsFold(got, v) {
				return true
			}
		}
		return false
	}
	return false
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func numericColumn(p product.Product, column string) (float64, bool) {
	switch column {
	case "id":
		return float64(p.ID), true
	case "price":
		return p.Price, true
	case "rating":
		return p.Rating, true
	}
	return 0, false
}

func textColumn(p product.Product, column string) string {
	switch column {
	case "name":
		return p.Name
	case "brand":
		return p.Brand
	case "category":
		return p.Category
	case "skin_type":
		return p.SkinType
	case "concerns":
		return p.Concerns
	case "description":
		return p.Description
	case "ingredients":
		return p.Ingredients
	case "purchase_link":
		return p.PurchaseLink
	case "image_url":
		return p.ImageURL
	}
	return ""
}

// equalsColumn compares numeric columns by value, the way a database coerces
// the bound text, and everything else as exact text.
func equalsColumn(p product.Product, column, value string) bool {
	if v, ok := numericColumn(p, column); ok {
		want, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		return err == nil && v == want
	}
	switch column {
	case "created_at":
		return timeEquals(p.CreatedAt, value)
	case "updated_at":
		return timeEquals(p.UpdatedAt, value)
	}
	return textColumn(p, column) == value
}

func timeEquals(t *time.Time, value string) bool {
	want := parseTimestamp(value)
	return t != nil && want != nil && t.Equal(*want)
}
