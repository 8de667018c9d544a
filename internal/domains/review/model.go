package review

import (
	"time"

	"github.com/google/uuid"
)

// Review is a client's rating of a driver, optionally tied to one of
// the client's rides. At most one review per (client, ride).
type Review struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	RideID    *uuid.UUID `json:"ride_id,omitempty" db:"ride_id"`
	ClientID  uuid.UUID  `json:"client_id" db:"client_id"`
	DriverID  uuid.UUID  `json:"driver_id" db:"driver_id"`
	Rating    int        `json:"rating" db:"rating"`
	Comment   *string    `json:"comment,omitempty" db:"comment"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

// DriverReviews is the public review listing for a driver.
type DriverReviews struct {
	Reviews       []*Review `json:"reviews"`
	AverageRating float64   `json:"average_rating"`
	Count         int       `json:"count"`
}
