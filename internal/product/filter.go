package product

import (
	"fmt"
	"math"
	"strings"
)

// Filter describes a catalog search. Nil or empty fields impose no
// constraint; every set field narrows the result.
type Filter struct {
	MaxBudget  *float64 `json:"max_budget,omitempty"`
	MinRating  *float64 `json:"min_rating,omitempty"`
	SkinType   string   `json:"skin_type,omitempty"`
	Categories []string `json:"categories,omitempty"`
	Concerns   []string `json:"concerns,omitempty"`
}

// HasSkinType reports whether the skin-type clause is active. A blank value
// counts as absent.
func (f Filter) HasSkinType() bool {
	return strings.TrimSpace(f.SkinType) != ""
}

func (f Filter) IsEmpty() bool {
	return f.MaxBudget == nil && f.MinRating == nil && !f.HasSkinType() &&
		len(f.Categories) == 0 && len(f.Concerns) == 0
}

// Validate rejects bounds that no backend can compare consistently.
func (f Filter) Validate() error {
	if !finite(f.MaxBudget) {
		return fmt.Errorf("%w: max_budget must be a finite number", ErrInvalidFilter)
	}
	if !finite(f.MinRating) {
		return fmt.Errorf("%w: min_rating must be a finite number", ErrInvalidFilter)
	}
	return nil
}

func finite(v *float64) bool {
	return v == nil || !(math.IsNaN(*v) || math.IsInf(*v, 0))
}

// Float returns a pointer to v, for building filters inline.
func Float(v float64) *float64 { return &v }
