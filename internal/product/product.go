package product

import (
	"math"
	"sort"
	"strings"
	"time"
)

// Product is a catalog entry and maps to the `products` table / collection.
// JSON tags use the column names so the same shape works for the hosted
// REST store and for API responses.
type Product struct {
	ID           int64      `json:"id,omitempty"`
	Name         string     `json:"name"`
	Brand        string     `json:"brand,omitempty"`
	Category     string     `json:"category"`
	SkinType     string     `json:"skin_type,omitempty"`
	Concerns     string     `json:"concerns,omitempty"`
	Price        float64    `json:"price"`
	Rating       float64    `json:"rating"`
	Description  string     `json:"description,omitempty"`
	Ingredients  string     `json:"ingredients,omitempty"`
	PurchaseLink string     `json:"purchase_link,omitempty"`
	ImageURL     string     `json:"image_url,omitempty"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

// AllowedCategories contains the supported product categories.
var AllowedCategories = []string{
	"Cleanser",
	"Toner",
	"Serum",
	"Treatment",
	"Moisturizer",
	"Sunscreen",
	"Mask",
	"Eye Cream",
}

// SkinTypes are the skin types the analyzer can predict.
var SkinTypes = []string{"Normal", "Oily", "Dry"}

// SkinTones are the tone labels offered as a facet, lightest first. The
// analyzer only predicts Fair, Light, Medium and Dark.
var SkinTones = []string{"Very Fair", "Fair", "Light", "Medium", "Dark", "Very Dark"}

// ConcernOptions are the concerns offered as search facets.
var ConcernOptions = []string{
	"Acne",
	"Anti-aging",
	"Hydration",
	"Large pores",
	"Sensitive skin",
	"Dark spots",
}

const (
	MaxRating        = 5.0
	DefaultMinRating = 3.5
	DefaultMinBudget = 10.0
	DefaultMaxBudget = 100.0
)

// ValidationError maps a field name to the reason it was rejected.
type ValidationError map[string]string

func (e ValidationError) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, e[k])
	}
	return "invalid product: " + strings.Join(msgs, "; ")
}

// Validate checks the catalog invariants and returns every violation at once.
// A nil result means the product is valid.
func (p Product) Validate() ValidationError {
	errs := ValidationError{}
	if strings.TrimSpace(p.Name) == "" {
		errs["name"] = "name is required"
	}
	if strings.TrimSpace(p.Category) == "" {
		errs["category"] = "category is required"
	} else if !IsAllowedCategory(p.Category) {
		errs["category"] = "invalid category"
	}
	if math.IsNaN(p.Price) || math.IsInf(p.Price, 0) || p.Price < 0 {
		errs["price"] = "price must be >= 0"
	}
	if math.IsNaN(p.Rating) || p.Rating < 0 || p.Rating > MaxRating {
		errs["rating"] = "rating must be between 0 and 5"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func IsAllowedCategory(c string) bool {
	for _, allowed := range AllowedCategories {
		if c == allowed {
			return true
		}
	}
	return false
}
