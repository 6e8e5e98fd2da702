package product

import "context"

// DefaultRecommendationLimit is how many ranked products a recommendation
// returns when the caller does not ask for a specific number.
const DefaultRecommendationLimit = 6

type Service struct {
	repo               Repository
	maxRecommendations int
}

func NewService(repo Repository, maxRecommendations int) *Service {
	if maxRecommendations <= 0 {
		maxRecommendations = 20
	}
	return &Service{repo: repo, maxRecommendations: maxRecommendations}
}

func (s *Service) List(ctx context.Context, equal map[string]string) ([]Product, error) {
	return s.repo.GetProducts(ctx, equal)
}

func (s *Service) Search(ctx context.Context, f Filter) ([]Product, error) {
	return s.repo.GetProductsByCriteria(ctx, f)
}

// Create validates p and inserts it. Backend-assigned fields are cleared.
func (s *Service) Create(ctx context.Context, p Product) (Product, error) {
	if ves := p.Validate(); len(ves) > 0 {
		return Product{}, ves
	}
	p.ID = 0
	p.CreatedAt = nil
	p.UpdatedAt = nil
	if err := s.repo.InsertProduct(ctx, p); err != nil {
		return Product{}, err
	}
	return p, nil
}

// Recommend runs a criteria search and returns the best matches first.
func (s *Service) Recommend(ctx context.Context, f Filter, limit int) ([]Recommendation, error) {
	if limit <= 0 {
		limit = DefaultRecommendationLimit
	}
	if limit > s.maxRecommendations {
		limit = s.maxRecommendations
	}
	products, err := s.repo.GetProductsByCriteria(ctx, f)
	if err != nil {
		return nil, err
	}
	ranked := Rank(products, f.MaxBudget)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// Options lists the values the search facets accept.
type Options struct {
	Categories []string `json:"categories"`
	SkinTypes  []string `json:"skin_types"`
	SkinTones  []string `json:"skin_tones"`
	Concerns   []string `json:"concerns"`
	MinBudget  float64  `json:"min_budget"`
	MaxBudget  float64  `json:"max_budget"`
	MinRating  float64  `json:"min_rating"`
}

func FilterOptions() Options {
	return Options{
		Categories: append([]string(nil), AllowedCategories...),
		SkinTypes:  append([]string(nil), SkinTypes...),
		SkinTones:  append([]string(nil), SkinTones...),
		Concerns:   append([]string(nil), ConcernOptions...),
		MinBudget:  DefaultMinBudget,
		MaxBudget:  DefaultMaxBudget,
		MinRating:  DefaultMinRating,
	}
}
