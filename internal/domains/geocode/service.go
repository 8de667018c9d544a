package geocode

import "context"

// Service is the geocode lookup contract.
// The result is always a list, matching the provider's wire shape;
// success guarantees at least one entry.
type Service interface {
	Geocode(ctx context.Context, query string) ([]Location, error)
}
