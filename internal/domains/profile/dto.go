package profile

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// ========================================
// PROFILE UPDATE DTOs (multipart form)
// ========================================

// UpdateDriverProfileRequest carries the editable driver fields.
// All fields optional; only submitted fields are applied.
// DP bytes arrive separately via the multipart file part.
type UpdateDriverProfileRequest struct {
	FullName       string `form:"full_name"`
	CNIC           string `form:"cnic"`
	Age            *int   `form:"age"`
	DrivingLicense string `form:"driving_license"`
	LicenseExpiry  string `form:"license_expiry"` // DD-MM-YYYY
	PhoneNumber    string `form:"phone_number"`
	City           string `form:"city"`
}

func (r UpdateDriverProfileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FullName, validation.Length(0, 100)),
		validation.Field(&r.CNIC,
			validation.When(r.CNIC != "",
				validation.Length(13, 15).Error("cnic must be 13-15 characters"),
			),
		),
		validation.Field(&r.Age,
			validation.When(r.Age != nil,
				validation.Min(18).Error("drivers must be at least 18"),
				validation.Max(100),
			),
		),
		validation.Field(&r.DrivingLicense, validation.Length(0, 50)),
		validation.Field(&r.LicenseExpiry,
			validation.When(r.LicenseExpiry != "",
				validation.Date("02-01-2006").Error("license_expiry must be DD-MM-YYYY"),
			),
		),
		validation.Field(&r.PhoneNumber,
			validation.When(r.PhoneNumber != "",
				validation.Length(7, 20),
			),
		),
		validation.Field(&r.City, validation.Length(0, 100)),
	)
}

// UpdateClientProfileRequest carries the editable client fields.
type UpdateClientProfileRequest struct {
	FullName    string `form:"full_name"`
	CNIC        string `form:"cnic"`
	Age         *int   `form:"age"`
	PhoneNumber string `form:"phone_number"`
	Address     string `form:"address"`
}

func (r UpdateClientProfileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FullName, validation.Length(0, 100)),
		validation.Field(&r.CNIC,
			validation.When(r.CNIC != "",
				validation.Length(13, 15).Error("cnic must be 13-15 characters"),
			),
		),
		validation.Field(&r.Age,
			validation.When(r.Age != nil,
				validation.Min(1),
				validation.Max(120),
			),
		),
		validation.Field(&r.PhoneNumber,
			validation.When(r.PhoneNumber != "",
				validation.Length(7, 20),
			),
		),
		validation.Field(&r.Address, validation.Length(0, 255)),
	)
}

// ========================================
// LOCATION DTOs
// ========================================

// UpdateLocationRequest carries coordinates as strings so precision
// survives the trip into decimal columns.
type UpdateLocationRequest struct {
	Latitude  string `json:"latitude" binding:"required"`
	Longitude string `json:"longitude" binding:"required"`
}

func (r UpdateLocationRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Latitude,
			validation.Required.Error("latitude is required"),
			is.Float.Error("latitude must be numeric"),
		),
		validation.Field(&r.Longitude,
			validation.Required.Error("longitude is required"),
			is.Float.Error("longitude must be numeric"),
		),
	)
}
