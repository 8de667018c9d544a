package geocode

import "strings"

// fallbackCities covers the major Pakistani cities the app actually
// serves. Keys are lowercase; matched by substring against the
// normalized query when the provider returns nothing or is down.
var fallbackCities = map[string]Location{
	"lahore":     {Lat: "31.5204", Lon: "74.3587", DisplayName: "Lahore, Punjab, Pakistan", Type: "city"},
	"karachi":    {Lat: "24.8607", Lon: "67.0011", DisplayName: "Karachi, Sindh, Pakistan", Type: "city"},
	"islamabad":  {Lat: "33.6844", Lon: "73.0479", DisplayName: "Islamabad, Pakistan", Type: "city"},
	"rawalpindi": {Lat: "33.5651", Lon: "73.0169", DisplayName: "Rawalpindi, Punjab, Pakistan", Type: "city"},
	"faisalabad": {Lat: "31.4504", Lon: "73.1350", DisplayName: "Faisalabad, Punjab, Pakistan", Type: "city"},
	"multan":     {Lat: "30.1575", Lon: "71.5249", DisplayName: "Multan, Punjab, Pakistan", Type: "city"},
	"peshawar":   {Lat: "34.0151", Lon: "71.5805", DisplayName: "Peshawar, Khyber Pakhtunkhwa, Pakistan", Type: "city"},
	"quetta":     {Lat: "30.1798", Lon: "66.9750", DisplayName: "Quetta, Balochistan, Pakistan", Type: "city"},
}

// FallbackMatch scans the static city table for a substring match
// against the query. Returns the matched entry or false.
func FallbackMatch(q string) (Location, bool) {
	s := strings.ToLower(NormalizeQuery(q))
	if s == "" {
		return Location{}, false
	}

	for city, loc := range fallbackCities {
		if strings.Contains(s, city) {
			return loc, true
		}
	}

	return Location{}, false
}
