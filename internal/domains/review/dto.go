package review

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// CreateReviewRequest rates a driver, optionally referencing the ride
// being reviewed.
type CreateReviewRequest struct {
	DriverID string `json:"driver_id" binding:"required"`
	RideID   string `json:"ride_id,omitempty"`
	Rating   int    `json:"rating" binding:"required"`
	Comment  string `json:"comment,omitempty"`
}

func (r CreateReviewRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.DriverID,
			validation.Required.Error("driver_id is required"),
			is.UUID.Error("driver_id must be a UUID"),
		),
		validation.Field(&r.RideID,
			validation.When(r.RideID != "",
				is.UUID.Error("ride_id must be a UUID"),
			),
		),
		validation.Field(&r.Rating,
			validation.Required.Error("rating is required"),
			validation.Min(1).Error("rating must be between 1 and 5"),
			validation.Max(5).Error("rating must be between 1 and 5"),
		),
		validation.Field(&r.Comment, validation.Length(0, 1000)),
	)
}
