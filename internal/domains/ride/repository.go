package ride

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the ride data access contract.
type Repository interface {
	Create(ctx context.Context, r *Ride) error
	FindByID(ctx context.Context, id uuid.UUID) (*Ride, error)
	// ListByClient returns the client's rides, newest first.
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]*Ride, error)
	// ListByDriver returns rides assigned to the driver, newest first.
	ListByDriver(ctx context.Context, driverID uuid.UUID) ([]*Ride, error)
}
