package profile

import "errors"

var (
	ErrDriverProfileNotFound = errors.New("driver profile not found")
	ErrClientProfileNotFound = errors.New("client profile not found")
	ErrProfileAlreadyExists  = errors.New("profile already exists for this user")
	ErrInvalidCoordinate     = errors.New("invalid coordinate value")
	ErrInvalidDate           = errors.New("invalid date format, expected DD-MM-YYYY")
	ErrInvalidImage          = errors.New("invalid profile photo")
	ErrCNICAlreadyExists     = errors.New("cnic already registered")
	ErrLicenseAlreadyExists  = errors.New("driving license already registered")
	ErrWrongRole             = errors.New("profile type does not match user role")
)
