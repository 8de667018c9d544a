package profile

import (
	"context"

	"github.com/google/uuid"

	"drivo-backend/internal/domains/user"
)

// Service is the profile business logic contract.
// Get* calls are get-or-create: the first access materializes the row
// with full_name defaulted from the email local part.
type Service interface {
	// EnsureProfile satisfies user.ProfileProvisioner: role selection
	// provisions the matching profile idempotently.
	EnsureProfile(ctx context.Context, userID uuid.UUID, email string, role user.Role) error

	GetDriverProfile(ctx context.Context, userID uuid.UUID, email string) (*DriverProfile, error)
	UpdateDriverProfile(ctx context.Context, userID uuid.UUID, email string, req UpdateDriverProfileRequest, dp []byte) (*DriverProfile, error)
	UpdateDriverLocation(ctx context.Context, userID uuid.UUID, email string, req UpdateLocationRequest) (*DriverProfile, error)

	GetClientProfile(ctx context.Context, userID uuid.UUID, email string) (*ClientProfile, error)
	UpdateClientProfile(ctx context.Context, userID uuid.UUID, email string, req UpdateClientProfileRequest, dp []byte) (*ClientProfile, error)
	UpdateClientLocation(ctx context.Context, userID uuid.UUID, email string, req UpdateLocationRequest) (*ClientProfile, error)

	// Lookup by profile ID, used when rendering ride participants.
	GetDriverByID(ctx context.Context, id uuid.UUID) (*DriverProfile, error)
	GetClientByID(ctx context.Context, id uuid.UUID) (*ClientProfile, error)

	// Uniqueness probes behind GET /auth/check-cnic and /auth/check-license.
	CheckCNICUnique(ctx context.Context, cnic string) (bool, error)
	CheckLicenseUnique(ctx context.Context, license string) (bool, error)
}
