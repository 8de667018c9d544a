package geocode

// Location mirrors the provider's result shape: lat/lon arrive as
// strings on the wire and are passed through untouched.
type Location struct {
	PlaceID     int64   `json:"place_id,omitempty"`
	Lat         string  `json:"lat"`
	Lon         string  `json:"lon"`
	DisplayName string  `json:"display_name"`
	Type        string  `json:"type,omitempty"`
	Importance  float64 `json:"importance,omitempty"`
}

// CachedResult is what lives under a geocode cache key. A cached error
// or empty list is served verbatim until its TTL lapses, so a flapping
// provider cannot be hammered by repeat queries.
type CachedResult struct {
	Results []Location `json:"results"`
	Error   string     `json:"error,omitempty"`
}
