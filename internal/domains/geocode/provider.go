package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Provider is the upstream geocoding lookup.
type Provider interface {
	Search(ctx context.Context, query string) ([]Location, error)
}

// NominatimProvider talks to a Nominatim-compatible search endpoint.
// The free public instance rate-limits aggressively, which is exactly
// why every response ends up in the cache.
type NominatimProvider struct {
	baseURL string
	client  *http.Client
}

func NewNominatimProvider(baseURL string, timeout time.Duration) *NominatimProvider {
	return &NominatimProvider{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (p *NominatimProvider) Search(ctx context.Context, query string) ([]Location, error) {
	u, err := url.Parse(p.baseURL)
	if err != nil {
		return nil, fmt.Errorf("bad provider url: %w", err)
	}

	q := u.Query()
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("limit", "1")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build geocode request: %w", err)
	}
	// Nominatim's usage policy requires an identifying agent.
	req.Header.Set("User-Agent", "drivo-backend/1.0")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode provider returned status %d", resp.StatusCode)
	}

	var results []Location
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("decode geocode response: %w", err)
	}

	return results, nil
}
