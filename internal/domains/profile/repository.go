package profile

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Repository is the profile data access contract, covering both sides.
type Repository interface {
	// Drivers
	CreateDriver(ctx context.Context, p *DriverProfile) error
	FindDriverByID(ctx context.Context, id uuid.UUID) (*DriverProfile, error)
	FindDriverByUserID(ctx context.Context, userID uuid.UUID) (*DriverProfile, error)
	UpdateDriver(ctx context.Context, p *DriverProfile) error
	UpdateDriverLocation(ctx context.Context, userID uuid.UUID, lat, lon decimal.Decimal, at time.Time) error
	// ClearStaleDriverLocations nulls out coordinates whose last update is
	// older than the cutoff; returns rows touched.
	ClearStaleDriverLocations(ctx context.Context, olderThan time.Time) (int64, error)

	// Clients
	CreateClient(ctx context.Context, p *ClientProfile) error
	FindClientByID(ctx context.Context, id uuid.UUID) (*ClientProfile, error)
	FindClientByUserID(ctx context.Context, userID uuid.UUID) (*ClientProfile, error)
	UpdateClient(ctx context.Context, p *ClientProfile) error
	UpdateClientLocation(ctx context.Context, userID uuid.UUID, lat, lon decimal.Decimal) error

	// Uniqueness probes
	ExistsCNIC(ctx context.Context, cnic string) (bool, error)
	ExistsDrivingLicense(ctx context.Context, license string) (bool, error)
}
