package review

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the review data access contract.
type Repository interface {
	Create(ctx context.Context, r *Review) error
	// ListByDriver returns a driver's reviews, newest first.
	ListByDriver(ctx context.Context, driverID uuid.UUID) ([]*Review, error)
	// AverageRating returns the mean rating, 0 when unreviewed.
	AverageRating(ctx context.Context, driverID uuid.UUID) (float64, error)
}
