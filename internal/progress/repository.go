package progress

import "context"

// Repository is the analysis-history side of the storage layer.
type Repository interface {
	InsertProgress(ctx context.Context, rec Record) error
	GetUserProgress(ctx context.Context, userID string) ([]Record, error)
}
