package ride

import "errors"

var (
	ErrRideNotFound      = errors.New("ride not found")
	ErrForbiddenRole     = errors.New("only clients can request rides")
	ErrNotParticipant    = errors.New("ride is not visible to this user")
	ErrInvalidCoordinate = errors.New("coordinate is not a valid decimal number")
	ErrInvalidFuelType   = errors.New("fuel_type must be one of: petrol, diesel, cng, electric, hybrid")
	ErrInvalidTripType   = errors.New("trip_type must be one of: one-way, round-trip")
	ErrInvalidDateTime   = errors.New("date and time must both be given as DD-MM-YYYY and HH:MM AM/PM")
	ErrMissingRole       = errors.New("choose a role before using rides")
)
