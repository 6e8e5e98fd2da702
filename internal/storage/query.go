package storage

import (
	"fmt"
	"sort"
	"strings"

	"github.com/wichananm65/skincare-backend/internal/product"
)

type op int

const (
	opEq          op = iota // exact string equality
	opLTE                   // numeric <=
	opGTE                   // numeric >=
	opContains              // case-insensitive substring
	opIn                    // membership in values
	opAnyContains           // case-insensitive substring of any value
)

// clause is one backend-neutral predicate. A query is the AND of its
// clauses; each renderer (SQL, PostgREST, in-memory) consumes the same list.
type clause struct {
	column string
	op     op
	num    float64
	values []string
}

var productColumns = []string{
	"id",
	"name",
	"brand",
	"category",
	"skin_type",
	"concerns",
	"price",
	"rating",
	"description",
	"ingredients",
	"purchase_link",
	"image_url",
	"created_at",
	"updated_at",
}

func isProductColumn(name string) bool {
	for _, c := range productColumns {
		if c == name {
			return true
		}
	}
	return false
}

// criteriaClauses translates a search filter. Absent fields produce no
// clause, so an empty filter selects the whole catalog.
func criteriaClauses(f product.Filter) ([]clause, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	var out []clause
	if f.MaxBudget != nil {
		out = append(out, clause{column: "price", op: opLTE, num: *f.MaxBudget})
	}
	if f.MinRating != nil {
		out = append(out, clause{column: "rating", op: opGTE, num: *f.MinRating})
	}
	if f.HasSkinType() {
		out = append(out, clause{column: "skin_type", op: opContains, values: []string{strings.TrimSpace(f.SkinType)}})
	}
	if len(f.Categories) > 0 {
		out = append(out, clause{column: "category", op: opIn, values: append([]string(nil), f.Categories...)})
	}
	if len(f.Concerns) > 0 {
		out = append(out, clause{column: "concerns", op: opAnyContains, values: append([]string(nil), f.Concerns...)})
	}
	return out, nil
}

// equalityClauses validates field names against the products columns and
// returns clauses in a stable (sorted) order.
func equalityClauses(equal map[string]string) ([]clause, error) {
	keys := make([]string, 0, len(equal))
	for k := range equal {
		if !isProductColumn(k) {
			return nil, fmt.Errorf("%w: %q", product.ErrUnknownField, k)
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]clause, 0, len(keys))
	for _, k := range keys {
		out = append(out, clause{column: k, op: opEq, values: []string{equal[k]}})
	}
	return out, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes LIKE wildcards in user input match literally, with
// backslash as the escape character.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
