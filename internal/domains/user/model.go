package user

import (
	"time"

	"github.com/google/uuid"
)

// Role is the single role enum replacing the legacy is_driver/is_client
// boolean pair. A user holds exactly one role at a time; RoleNone is the
// state between signup and choosing a side.
type Role string

const (
	RoleDriver Role = "driver"
	RoleClient Role = "client"
	RoleNone   Role = "none"
)

// ParseRole maps free-text input onto the enum.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleDriver, RoleClient, RoleNone:
		return Role(s), true
	}
	return "", false
}

type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // Never expose in JSON
	Role         Role      `json:"role" db:"role"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// OTPValidity is how long an emailed code stays usable.
const OTPValidity = 5 * time.Minute

// EmailOTP is a one-time code proving email ownership.
// Consumed on verification; unconsumed codes go permanently invalid
// once expired (a new signup/resend issues a fresh row).
type EmailOTP struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	OTP       string    `json:"-" db:"otp"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	IsUsed    bool      `json:"is_used" db:"is_used"`
}

func (o *EmailOTP) IsExpired(now time.Time) bool {
	return now.After(o.CreatedAt.Add(OTPValidity))
}
