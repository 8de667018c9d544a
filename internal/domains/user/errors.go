package user

import "errors"

// Repository-level errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrOTPNotFound        = errors.New("no verification code found for this email")
)

// Service-level (business logic) errors
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserInactive       = errors.New("account is not verified yet")
	ErrOTPExpired         = errors.New("verification code has expired")
	ErrOTPInvalid         = errors.New("verification code is incorrect")
	ErrOTPAlreadyUsed     = errors.New("verification code was already used")
	ErrTooManyResends     = errors.New("too many resend attempts, try again later")
	ErrEmailSendFailed    = errors.New("could not send verification email")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidToken       = errors.New("invalid or expired token")
)
