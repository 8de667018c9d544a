package user

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository is the user data access contract.
type Repository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role Role) error
	Activate(ctx context.Context, id uuid.UUID) error

	// OTP lifecycle
	CreateOTP(ctx context.Context, otp *EmailOTP) error
	// FindLatestOTP returns the most recent unused code for email.
	FindLatestOTP(ctx context.Context, email string) (*EmailOTP, error)
	// ConsumeOTPAndActivate marks the code used and activates the user
	// in one transaction.
	ConsumeOTPAndActivate(ctx context.Context, otpID, userID uuid.UUID) error
	// PurgeExpiredOTPs deletes used or long-expired codes; returns rows removed.
	PurgeExpiredOTPs(ctx context.Context, olderThan time.Time) (int64, error)
}
