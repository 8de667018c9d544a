package geocode

import "strings"

const cacheKeyPrefix = "geocode_"

// NormalizeQuery trims and collapses internal whitespace without
// altering the text itself. This is what goes to the provider.
func NormalizeQuery(q string) string {
	return strings.Join(strings.Fields(q), " ")
}

// CacheKey builds the cache key: normalize, lowercase, then replace
// every run of non-alphanumeric characters with a single underscore.
func CacheKey(q string) string {
	s := strings.ToLower(NormalizeQuery(q))

	var b strings.Builder
	b.WriteString(cacheKeyPrefix)

	lastUnderscore := false
	for _, r := range s {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if alnum {
			b.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}

	return b.String()
}
