package profile

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DriverStatus is the vetting state of a driver profile.
// New profiles start pending; only an operator flips it.
type DriverStatus string

const (
	DriverStatusPending  DriverStatus = "pending"
	DriverStatusApproved DriverStatus = "approved"
	DriverStatusRejected DriverStatus = "rejected"
)

// DriverProfile holds driver-specific data, one row per user.
// Uniqueness on UserID is what makes get-or-create race-safe.
type DriverProfile struct {
	ID                 uuid.UUID           `json:"id" db:"id"`
	UserID             uuid.UUID           `json:"user_id" db:"user_id"`
	FullName           string              `json:"full_name" db:"full_name"`
	CNIC               *string             `json:"cnic,omitempty" db:"cnic"`
	Age                *int                `json:"age,omitempty" db:"age"`
	DrivingLicense     *string             `json:"driving_license,omitempty" db:"driving_license"`
	LicenseExpiry      *time.Time          `json:"license_expiry,omitempty" db:"license_expiry"`
	PhoneNumber        *string             `json:"phone_number,omitempty" db:"phone_number"`
	City               *string             `json:"city,omitempty" db:"city"`
	Status             DriverStatus        `json:"status" db:"status"`
	DP                 *string             `json:"dp,omitempty" db:"dp"`
	CurrentLatitude    decimal.NullDecimal `json:"current_latitude" db:"current_latitude"`
	CurrentLongitude   decimal.NullDecimal `json:"current_longitude" db:"current_longitude"`
	LastLocationUpdate *time.Time          `json:"last_location_update,omitempty" db:"last_location_update"`
	CreatedAt          time.Time           `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at" db:"updated_at"`
}

// ClientProfile holds rider-specific data, one row per user.
type ClientProfile struct {
	ID          uuid.UUID           `json:"id" db:"id"`
	UserID      uuid.UUID           `json:"user_id" db:"user_id"`
	FullName    string              `json:"full_name" db:"full_name"`
	CNIC        *string             `json:"cnic,omitempty" db:"cnic"`
	Age         *int                `json:"age,omitempty" db:"age"`
	PhoneNumber *string             `json:"phone_number,omitempty" db:"phone_number"`
	Address     *string             `json:"address,omitempty" db:"address"`
	DP          *string             `json:"dp,omitempty" db:"dp"`
	Latitude    decimal.NullDecimal `json:"latitude" db:"latitude"`
	Longitude   decimal.NullDecimal `json:"longitude" db:"longitude"`
	CreatedAt   time.Time           `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at" db:"updated_at"`
}

// DefaultFullName derives the initial display name from the email's
// local part (the text before @). Used on first profile creation only.
func DefaultFullName(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}
