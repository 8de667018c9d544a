package ride

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Wire formats for the split schedule fields. Clients send the hour
// both zero-padded and bare, so parsing tries each layout in turn.
const dateLayout = "02-01-2006" // DD-MM-YYYY

var timeLayouts = []string{
	"03:04 PM", // HH:MM AM/PM
	"3:04 PM",  // H:MM AM/PM
}

// NormalizeCoordinate parses an optional coordinate string into a
// decimal rounded half-up to 8 fractional digits. Empty input yields
// a null value, not an error.
func NormalizeCoordinate(s string) (decimal.NullDecimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.NullDecimal{}, nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, ErrInvalidCoordinate
	}

	return decimal.NullDecimal{Decimal: d.Round(8), Valid: true}, nil
}

// NormalizeFuelType matches case-insensitively against the fuel enum.
// Empty input falls back to petrol.
func NormalizeFuelType(s string) (FuelType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return FuelPetrol, nil
	}

	switch FuelType(s) {
	case FuelPetrol, FuelDiesel, FuelCNG, FuelElectric, FuelHybrid:
		return FuelType(s), nil
	}

	return "", ErrInvalidFuelType
}

// NormalizeTripType lowercases, maps underscores to hyphens and accepts
// the legacy numeric aliases before matching the enum.
func NormalizeTripType(s string) (TripType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return TripOneWay, nil
	}

	s = strings.ReplaceAll(s, "_", "-")
	switch s {
	case "1-way":
		s = string(TripOneWay)
	case "2-way":
		s = string(TripRoundTrip)
	}

	switch TripType(s) {
	case TripOneWay, TripRoundTrip:
		return TripType(s), nil
	}

	return "", ErrInvalidTripType
}

// CombineSchedule merges the split date and time fields into one
// timestamp. Both absent means unscheduled; one without the other, or
// either unparsable, is ErrInvalidDateTime.
func CombineSchedule(dateStr, timeStr string) (*time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	timeStr = strings.TrimSpace(timeStr)

	if dateStr == "" && timeStr == "" {
		return nil, nil
	}
	if dateStr == "" || timeStr == "" {
		return nil, ErrInvalidDateTime
	}

	value := dateStr + " " + strings.ToUpper(timeStr)
	for _, layout := range timeLayouts {
		combined, err := time.ParseInLocation(dateLayout+" "+layout, value, time.Local)
		if err == nil {
			return &combined, nil
		}
	}

	return nil, ErrInvalidDateTime
}
