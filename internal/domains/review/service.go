package review

import (
	"context"

	"github.com/google/uuid"
)

// Service is the review business logic contract.
type Service interface {
	CreateReview(ctx context.Context, userID uuid.UUID, email, role string, req CreateReviewRequest) (*Review, error)
	// GetDriverReviews is public: listing plus average rating.
	GetDriverReviews(ctx context.Context, driverID uuid.UUID) (*DriverReviews, error)
}
