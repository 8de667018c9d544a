package payment

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// CreatePaymentRequest records a payment intent for one of the
// caller's rides. Amount travels as a string to keep decimal fidelity.
type CreatePaymentRequest struct {
	RideID string `json:"ride_id" binding:"required"`
	Amount string `json:"amount" binding:"required"`
	Method string `json:"method" binding:"required"`
}

func (r CreatePaymentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.RideID,
			validation.Required.Error("ride_id is required"),
			is.UUID.Error("ride_id must be a UUID"),
		),
		validation.Field(&r.Amount,
			validation.Required.Error("amount is required"),
		),
		validation.Field(&r.Method,
			validation.Required.Error("method is required"),
		),
	)
}
