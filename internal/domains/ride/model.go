package ride

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ========================================
// ENUMS
// ========================================

type FuelType string

const (
	FuelPetrol   FuelType = "petrol"
	FuelDiesel   FuelType = "diesel"
	FuelCNG      FuelType = "cng"
	FuelElectric FuelType = "electric"
	FuelHybrid   FuelType = "hybrid"
)

type TripType string

const (
	TripOneWay    TripType = "one-way"
	TripRoundTrip TripType = "round-trip"
)

// Status moves past requested only through an external dispatcher;
// this service creates rides and reads them back.
type Status string

const (
	StatusRequested Status = "requested"
	StatusAccepted  Status = "accepted"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// ========================================
// ENTITY
// ========================================

// Ride is owned by its client profile; the driver reference is a
// non-owning association assigned later by dispatch.
type Ride struct {
	ID                uuid.UUID           `json:"id" db:"id"`
	ClientID          uuid.UUID           `json:"client_id" db:"client_id"`
	DriverID          *uuid.UUID          `json:"driver_id,omitempty" db:"driver_id"`
	PickupLocation    string              `json:"pickup_location" db:"pickup_location"`
	DropoffLocation   string              `json:"dropoff_location" db:"dropoff_location"`
	PickupLatitude    decimal.NullDecimal `json:"pickup_latitude" db:"pickup_latitude"`
	PickupLongitude   decimal.NullDecimal `json:"pickup_longitude" db:"pickup_longitude"`
	DropoffLatitude   decimal.NullDecimal `json:"dropoff_latitude" db:"dropoff_latitude"`
	DropoffLongitude  decimal.NullDecimal `json:"dropoff_longitude" db:"dropoff_longitude"`
	ScheduledDatetime *time.Time          `json:"scheduled_datetime,omitempty" db:"scheduled_datetime"`
	VehicleType       string              `json:"vehicle_type" db:"vehicle_type"`
	FuelType          FuelType            `json:"fuel_type" db:"fuel_type"`
	TripType          TripType            `json:"trip_type" db:"trip_type"`
	Fare              decimal.NullDecimal `json:"fare" db:"fare"`
	Status            Status              `json:"status" db:"status"`
	CreatedAt         time.Time           `json:"created_at" db:"created_at"`
}
