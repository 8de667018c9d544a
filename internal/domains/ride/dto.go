package ride

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// CreateRideRequest is the raw ride payload. Coordinates, enums and the
// schedule arrive as free text and go through normalization before any
// of it touches the database.
type CreateRideRequest struct {
	PickupLocation   string `json:"pickup_location" binding:"required"`
	DropoffLocation  string `json:"dropoff_location" binding:"required"`
	PickupLatitude   string `json:"pickup_latitude,omitempty"`
	PickupLongitude  string `json:"pickup_longitude,omitempty"`
	DropoffLatitude  string `json:"dropoff_latitude,omitempty"`
	DropoffLongitude string `json:"dropoff_longitude,omitempty"`
	VehicleType      string `json:"vehicle_type,omitempty"`
	FuelType         string `json:"fuel_type,omitempty"`
	TripType         string `json:"trip_type,omitempty"`
	Date             string `json:"date,omitempty"` // DD-MM-YYYY
	Time             string `json:"time,omitempty"` // HH:MM AM/PM
}

func (r CreateRideRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.PickupLocation,
			validation.Required.Error("pickup_location is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.DropoffLocation,
			validation.Required.Error("dropoff_location is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.VehicleType, validation.Length(0, 50)),
	)
}

// ParticipantSummary is the nested profile view embedded in ride
// responses; enough for a list row, nothing more.
type ParticipantSummary struct {
	ID          uuid.UUID `json:"id"`
	FullName    string    `json:"full_name"`
	PhoneNumber *string   `json:"phone_number,omitempty"`
	DP          *string   `json:"dp,omitempty"`
}

// RideResponse is a ride with its participants resolved.
type RideResponse struct {
	Ride
	Client *ParticipantSummary `json:"client"`
	Driver *ParticipantSummary `json:"driver"`
}
