package user

import (
	"context"

	"github.com/google/uuid"
)

// ProfileProvisioner creates the role-specific profile when a role is set.
// Implemented by the profile service; kept as a small interface here to
// avoid a domain import cycle.
type ProfileProvisioner interface {
	EnsureProfile(ctx context.Context, userID uuid.UUID, email string, role Role) error
}

// Service is the user business logic contract.
type Service interface {
	Signup(ctx context.Context, req SignupRequest) (*UserDTO, error)
	VerifyOTP(ctx context.Context, req VerifyOTPRequest) (*LoginResponse, error)
	ResendOTP(ctx context.Context, req ResendOTPRequest) error
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*LoginResponse, error)
	// SetRole is the explicit state transition replacing implicit
	// save-hooks: it updates the role and provisions the profile.
	SetRole(ctx context.Context, userID uuid.UUID, req SetRoleRequest) (*UserDTO, error)
	GetMe(ctx context.Context, userID uuid.UUID) (*UserDTO, error)
	CheckEmailUnique(ctx context.Context, email string) (bool, error)
}
