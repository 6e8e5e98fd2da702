package storage

import (
	"context"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/wichananm65/skincare-backend/internal/platform/logger"
	"github.com/wichananm65/skincare-backend/internal/product"
	"github.com/wichananm65/skincare-backend/internal/progress"
)

func testCatalog() []product.Product {
	return []product.Product{
		{Name: "Hydrating Facial Cleanser", Brand: "CeraVe", Category: "Cleanser", SkinType: "Normal, Dry", Concerns: "Dryness, Sensitivity", Price: 12.99, Rating: 4.5},
		{Name: "Niacinamide 10% + Zinc 1%", Brand: "The Ordinary", Category: "Serum", SkinType: "Oily, Combination", Concerns: "Acne, Large Pores", Price: 8.90, Rating: 4.2},
		{Name: "Effaclar Duo", Brand: "La Roche-Posay", Category: "Treatment", SkinType: "Oily", Concerns: "acne, blackheads", Price: 32.00, Rating: 4.6},
		{Name: "Vitamin C Suspension", Brand: "The Ordinary", Category: "Serum", SkinType: "Normal", Concerns: "Dark Spots, Dullness", Price: 6.80, Rating: 3.9},
		{Name: "Ultra Facial Cream", Brand: "Kiehl's", Category: "Moisturizer", SkinType: "Dry", Concerns: "Dryness", Price: 35.00, Rating: 4.7},
		{Name: "Anthelios Sunscreen", Brand: "La Roche-Posay", Category: "Sunscreen", SkinType: "Normal, Oily, Dry", Concerns: "Sun Protection, Aging", Price: 33.50, Rating: 4.8},
		{Name: "BHA Liquid Exfoliant", Brand: "Paula's Choice", Category: "Exfoliant", SkinType: "Oily", Concerns: "Acne, Pores, 100% clear", Price: 29.50, Rating: 4.4},
	}
}

func openTestSQLite(t *testing.T) *SQLStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "skincare.db")
	s, err := OpenSQL(context.Background(), "sqlite:///"+path, logger.NewNop())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func seedStore(t *testing.T, s Store, products []product.Product) {
	t.Helper()
	for _, p := range products {
		if err := s.InsertProduct(context.Background(), p); err != nil {
			t.Fatalf("insert %q: %v", p.Name, err)
		}
	}
}

func names(products []product.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Name)
	}
	return out
}

func ids(products []product.Product) []int64 {
	out := make([]int64, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestSQLite_EmptyFilterReturnsCatalog(t *testing.T) {
	s := openTestSQLite(t)
	seedStore(t, s, testCatalog())

	got, err := s.GetProductsByCriteria(context.Background(), product.Filter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != len(testCatalog()) {
		t.Fatalf("expected %d products, got %d", len(testCatalog()), len(got))
	}
	if got[0].CreatedAt == nil || got[0].ID != 1 {
		t.Fatalf("expected generated id and timestamp, got %+v", got[0])
	}
}

func TestSQLite_MaxBudget(t *testing.T) {
	s := openTestSQLite(t)
	seedStore(t, s, []product.Product{
		{Name: "cheap", Price: 8.90, Rating: 4},
		{Name: "mid", Price: 12.99, Rating: 4},
		{Name: "dear", Price: 32.00, Rating: 4},
	})

	got, err := s.GetProductsByCriteria(context.Background(), product.Filter{MaxBudget: product.Float(10)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(names(got), []string{"cheap"}) {
		t.Fatalf("unexpected products %v", names(got))
	}
}

func TestSQLite_CategoryAndConcern(t *testing.T) {
	s := openTestSQLite(t)
	seedStore(t, s, testCatalog())

	got, err := s.GetProductsByCriteria(context.Background(), product.Filter{
		Categories: []string{"Serum"},
		Concerns:   []string{"ACNE"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(names(got), []string{"Niacinamide 10% + Zinc 1%"}) {
		t.Fatalf("unexpected products %v", names(got))
	}
}

func TestSQLite_ConcernsAreORed(t *testing.T) {
	s := openTestSQLite(t)
	seedStore(t, s, testCatalog())

	got, err := s.GetProductsByCriteria(context.Background(), product.Filter{Concerns: []string{"blackheads", "dull"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(names(got), []string{"Effaclar Duo", "Vitamin C Suspension"}) {
		t.Fatalf("unexpected products %v", names(got))
	}
}

func TestSQLite_WildcardsMatchLiterally(t *testing.T) {
	s := openTestSQLite(t)
	seedStore(t, s, testCatalog())

	got, err := s.GetProductsByCriteria(context.Background(), product.Filter{Concerns: []string{"100%"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(names(got), []string{"BHA Liquid Exfoliant"}) {
		t.Fatalf("unexpected products %v", names(got))
	}

	got, err = s.GetProductsByCriteria(context.Background(), product.Filter{SkinType: "_"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("underscore should not act as a wildcard, got %v", names(got))
	}
}

func TestSQLite_EqualityFilters(t *testing.T) {
	s := openTestSQLite(t)
	seedStore(t, s, testCatalog())

	got, err := s.GetProducts(context.Background(), map[string]string{"brand": "La Roche-Posay", "category": "Sunscreen"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(names(got), []string{"Anthelios Sunscreen"}) {
		t.Fatalf("unexpected products %v", names(got))
	}

	// values are bound, never spliced into the statement
	got, err = s.GetProducts(context.Background(), map[string]string{"name": "x' OR '1'='1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no products, got %v", names(got))
	}
}

func TestSQLite_ConfidenceScoresRoundTrip(t *testing.T) {
	s := openTestSQLite(t)
	ctx := context.Background()

	want := map[string]float64{"skin_type": 0.91, "acne": 0.77}
	if err := s.InsertProgress(ctx, progress.Record{UserID: "user_1", ConfidenceScores: progress.NewConfidenceScores(want)}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := s.GetUserProgress(ctx, "user_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
	if !reflect.DeepEqual(got[0].ConfidenceScores.Values, want) {
		t.Fatalf("scores changed in transit: %v", got[0].ConfidenceScores.Values)
	}
	if got[0].Timestamp == nil {
		t.Fatalf("expected a stored timestamp")
	}
}

func TestSQLite_ProgressOrderedPerUser(t *testing.T) {
	s := openTestSQLite(t)
	ctx := context.Background()

	inserts := []progress.Record{
		{UserID: "alice", AcneSeverity: 0.9},
		{UserID: "bob", AcneSeverity: 0.1},
		{UserID: "alice", AcneSeverity: 0.6},
		{UserID: "bob", AcneSeverity: 0.2},
		{UserID: "alice", AcneSeverity: 0.3},
	}
	for _, rec := range inserts {
		if err := s.InsertProgress(ctx, rec); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	got, err := s.GetUserProgress(ctx, "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var severities []float64
	for i, rec := range got {
		severities = append(severities, rec.AcneSeverity)
		if i > 0 && rec.Timestamp.Before(*got[i-1].Timestamp) {
			t.Fatalf("timestamps out of order at %d", i)
		}
	}
	if !reflect.DeepEqual(severities, []float64{0.9, 0.6, 0.3}) {
		t.Fatalf("unexpected order %v", severities)
	}
}

func TestSQLite_UndecodableScoresAreReturnedRaw(t *testing.T) {
	s := openTestSQLite(t)
	ctx := context.Background()

	if _, err := s.db.ExecContext(ctx, `INSERT INTO user_progress (user_id, confidence_scores) VALUES (?, ?)`, "user_1", "{acne: high"); err != nil {
		t.Fatalf("raw insert: %v", err)
	}

	got, err := s.GetUserProgress(ctx, "user_1")
	if err != nil {
		t.Fatalf("malformed scores should not fail the read: %v", err)
	}
	if len(got) != 1 || got[0].ConfidenceScores.Raw != "{acne: high" {
		t.Fatalf("expected raw scores, got %+v", got)
	}
}

func TestSQLite_InitSchemaIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skincare.db")
	ctx := context.Background()

	s, err := OpenSQL(ctx, path, logger.NewNop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	seedStore(t, s, testCatalog()[:3])
	if err := s.InsertProgress(ctx, progress.Record{UserID: "u"}); err != nil {
		t.Fatalf("insert progress: %v", err)
	}
	if err := s.InitSchema(ctx); err != nil {
		t.Fatalf("second init: %v", err)
	}
	s.Close()

	// reopening runs the initializer again
	s, err = OpenSQL(ctx, path, logger.NewNop())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	products, err := s.GetProductsByCriteria(ctx, product.Filter{})
	if err != nil || len(products) != 3 {
		t.Fatalf("expected 3 products to survive, got %d (%v)", len(products), err)
	}
	records, err := s.GetUserProgress(ctx, "u")
	if err != nil || len(records) != 1 {
		t.Fatalf("expected 1 record to survive, got %d (%v)", len(records), err)
	}
}

func TestOpen_SelectsBackend(t *testing.T) {
	ctx := context.Background()

	hosted, err := Open(ctx, Config{SupabaseURL: "https://x.supabase.co", SupabaseKey: "k"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hosted.Backend() != BackendSupabase {
		t.Fatalf("expected supabase backend, got %s", hosted.Backend())
	}

	// one credential alone is not enough
	local, err := Open(ctx, Config{SupabaseURL: "https://x.supabase.co", DatabaseURL: "sqlite://"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer local.Close()
	if local.Backend() != BackendSQLite {
		t.Fatalf("expected sqlite backend, got %s", local.Backend())
	}

	if _, err := Open(ctx, Config{DatabaseURL: "mysql://nope"}, nil); err == nil {
		t.Fatalf("expected error for unsupported database url")
	}
}

func criteriaGrid() []product.Filter {
	return []product.Filter{
		{},
		{MaxBudget: product.Float(10)},
		{MaxBudget: product.Float(32)},
		{MinRating: product.Float(4.5)},
		{MinRating: product.Float(4.2), MaxBudget: product.Float(30)},
		{SkinType: "oily"},
		{SkinType: "DRY"},
		{SkinType: "  "},
		{Categories: []string{"Serum"}},
		{Categories: []string{"Serum", "Cleanser", "Toner"}},
		{Categories: []string{"serum"}},
		{Concerns: []string{"acne"}},
		{Concerns: []string{"dryness", "aging"}},
		{Concerns: []string{"100%"}},
		{Categories: []string{"Serum"}, Concerns: []string{"Acne"}},
		{SkinType: "Oily", Concerns: []string{"Pores", "blackheads"}, MaxBudget: product.Float(35), MinRating: product.Float(4)},
		{Categories: []string{"Mask"}},
	}
}

func TestBackendsAgreeOnCriteria(t *testing.T) {
	ctx := context.Background()

	sqlite := openTestSQLite(t)
	rest, _ := newFakeRESTStore(t)
	memory := NewMemoryStore(nil)
	stores := []Store{sqlite, rest, memory}
	for _, s := range stores {
		seedStore(t, s, testCatalog())
	}

	for i, f := range criteriaGrid() {
		t.Run(fmt.Sprintf("filter_%02d", i), func(t *testing.T) {
			var want []int64
			for j, s := range stores {
				got, err := s.GetProductsByCriteria(ctx, f)
				if err != nil {
					t.Fatalf("%s: unexpected error: %v", s.Backend(), err)
				}
				if j == 0 {
					want = ids(got)
					continue
				}
				if !reflect.DeepEqual(ids(got), want) {
					t.Fatalf("%s returned %v, %s returned %v for %+v", s.Backend(), ids(got), stores[0].Backend(), want, f)
				}
			}
		})
	}
}

func TestBackendsRejectNonFiniteBounds(t *testing.T) {
	ctx := context.Background()

	sqlite := openTestSQLite(t)
	rest, fake := newFakeRESTStore(t)
	stores := []Store{sqlite, rest, NewMemoryStore(nil)}
	for _, s := range stores {
		seedStore(t, s, testCatalog())
	}
	requestsBefore := len(fake.requests)

	filters := []product.Filter{
		{MaxBudget: product.Float(math.NaN())},
		{MinRating: product.Float(math.Inf(-1))},
		{MaxBudget: product.Float(math.Inf(1)), SkinType: "Oily"},
	}
	for _, s := range stores {
		for _, f := range filters {
			got, err := s.GetProductsByCriteria(ctx, f)
			if !errors.Is(err, product.ErrInvalidFilter) {
				t.Fatalf("%s: expected ErrInvalidFilter, got %v", s.Backend(), err)
			}
			var se *StorageError
			if !errors.As(err, &se) || se.Op != "get_products_by_criteria" {
				t.Fatalf("%s: expected StorageError, got %T", s.Backend(), err)
			}
			if got != nil {
				t.Fatalf("%s: expected no products, got %v", s.Backend(), names(got))
			}
		}
	}
	if n := len(fake.requests); n != requestsBefore {
		t.Fatalf("expected no REST requests for rejected filters, got %d", n-requestsBefore)
	}
}

func TestBackendsAgreeOnEquality(t *testing.T) {
	ctx := context.Background()

	sqlite := openTestSQLite(t)
	rest, _ := newFakeRESTStore(t)
	memory := NewMemoryStore(nil)
	stores := []Store{sqlite, rest, memory}
	for _, s := range stores {
		seedStore(t, s, testCatalog())
	}

	filters := []map[string]string{
		nil,
		{"brand": "The Ordinary"},
		{"brand": "The Ordinary", "category": "Serum"},
		{"category": "serum"},
		{"name": "Effaclar Duo"},
	}
	for _, f := range filters {
		var want []int64
		for j, s := range stores {
			got, err := s.GetProducts(ctx, f)
			if err != nil {
				t.Fatalf("%s: unexpected error: %v", s.Backend(), err)
			}
			if j == 0 {
				want = ids(got)
				continue
			}
			if !reflect.DeepEqual(ids(got), want) {
				t.Fatalf("%s returned %v, sqlite returned %v for %v", s.Backend(), ids(got), want, f)
			}
		}
	}
}
