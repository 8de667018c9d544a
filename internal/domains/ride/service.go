package ride

import (
	"context"

	"github.com/google/uuid"
)

// Service is the ride business logic contract. The caller's role comes
// from the verified token; the service re-derives the owning profile.
type Service interface {
	CreateRide(ctx context.Context, userID uuid.UUID, email, role string, req CreateRideRequest) (*RideResponse, error)
	ListRides(ctx context.Context, userID uuid.UUID, email, role string) ([]*RideResponse, error)
	GetRide(ctx context.Context, userID uuid.UUID, email, role string, rideID uuid.UUID) (*RideResponse, error)
}
