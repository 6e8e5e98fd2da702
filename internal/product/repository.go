package product

import (
	"context"
	"errors"
)

// ErrUnknownField is returned when an equality lookup names a field that is
// not a product column.
var ErrUnknownField = errors.New("unknown product field")

// ErrInvalidFilter is returned for a search bound that is not a finite number.
var ErrInvalidFilter = errors.New("invalid product filter")

// Repository is the catalog side of the storage layer.
type Repository interface {
	InsertProduct(ctx context.Context, p Product) error
	GetProducts(ctx context.Context, equal map[string]string) ([]Product, error)
	GetProductsByCriteria(ctx context.Context, f Filter) ([]Product, error)
}
