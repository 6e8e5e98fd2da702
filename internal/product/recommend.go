package product

import "sort"

// Recommendation is a product with its match score.
type Recommendation struct {
	Product
	MatchScore float64 `json:"match_score"`
}

// MatchScore weighs rating at 40% and closeness to the budget ceiling at 30%,
// on top of a flat 30% for having passed the filter. Without a budget the
// price term is dropped.
func MatchScore(p Product, maxBudget *float64) float64 {
	score := p.Rating/MaxRating*0.4 + 0.3
	if maxBudget != nil && *maxBudget > 0 {
		score += (1 - p.Price / *maxBudget) * 0.3
	}
	return score
}

// Rank scores products and orders them best first. Equal scores keep their
// input order.
func Rank(products []Product, maxBudget *float64) []Recommendation {
	out := make([]Recommendation, 0, len(products))
	for _, p := range products {
		out = append(out, Recommendation{Product: p, MatchScore: MatchScore(p, maxBudget)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MatchScore > out[j].MatchScore
	})
	return out
}
