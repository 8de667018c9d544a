package geocode

import "errors"

var (
	ErrEmptyQuery          = errors.New("query must not be empty")
	ErrNotFound            = errors.New("no results found for this location")
	ErrUpstreamUnavailable = errors.New("geocoding service is unavailable")
)
