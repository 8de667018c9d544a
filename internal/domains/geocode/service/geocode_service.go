package service

import (
	"context"
	"time"

	"drivo-backend/internal/config"
	"drivo-backend/internal/domains/geocode"
	"drivo-backend/pkg/cache"
	"drivo-backend/pkg/logger"
)

// TTLs bundles the cache policy knobs so tests can shrink them.
type TTLs struct {
	Positive time.Duration // provider or fallback hit
	Negative time.Duration // confirmed empty result
	Error    time.Duration // provider failure with no fallback
}

func TTLsFromConfig(cfg config.GeocodeConfig) TTLs {
	return TTLs{
		Positive: cfg.PositiveTTL,
		Negative: cfg.NegativeTTL,
		Error:    cfg.ErrorTTL,
	}
}

type geocodeService struct {
	provider geocode.Provider
	cache    cache.Cache
	ttls     TTLs
}

func NewGeocodeService(provider geocode.Provider, c cache.Cache, ttls TTLs) geocode.Service {
	return &geocodeService{
		provider: provider,
		cache:    c,
		ttls:     ttls,
	}
}

// Geocode resolves free-text into coordinates through a three-layer
// policy: cache, provider, static city fallback. Every outcome
// (results, a confirmed miss, a provider failure) is cached, so the
// upstream sees each distinct query at most once per TTL window.
func (s *geocodeService) Geocode(ctx context.Context, query string) ([]geocode.Location, error) {
	normalized := geocode.NormalizeQuery(query)
	if normalized == "" {
		return nil, geocode.ErrEmptyQuery
	}

	key := geocode.CacheKey(query)

	// 1. CACHE: a hit is served verbatim, error payloads included
	var cached geocode.CachedResult
	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		// a broken cache degrades to a provider call, nothing worse
		logger.Error("geocode cache read failed", err)
	}
	if hit {
		return s.interpret(cached)
	}

	// 2. PROVIDER, limit=1, bounded timeout
	results, err := s.provider.Search(ctx, normalized)
	if err != nil {
		return s.handleProviderFailure(ctx, key, normalized, err)
	}

	if len(results) > 0 {
		s.store(ctx, key, geocode.CachedResult{Results: results}, s.ttls.Positive)
		return results, nil
	}

	// 3. EMPTY RESULT: static fallback before giving up
	if loc, ok := geocode.FallbackMatch(normalized); ok {
		fallback := geocode.CachedResult{Results: []geocode.Location{loc}}
		s.store(ctx, key, fallback, s.ttls.Positive)
		return fallback.Results, nil
	}

	// confirmed miss, short TTL so new places resolve eventually
	s.store(ctx, key, geocode.CachedResult{Results: []geocode.Location{}}, s.ttls.Negative)
	return nil, geocode.ErrNotFound
}

// handleProviderFailure degrades via the fallback table; otherwise the
// failure itself is cached briefly to absorb retry storms.
func (s *geocodeService) handleProviderFailure(ctx context.Context, key, normalized string, cause error) ([]geocode.Location, error) {
	logger.Error("geocode provider failed", cause)

	if loc, ok := geocode.FallbackMatch(normalized); ok {
		fallback := geocode.CachedResult{Results: []geocode.Location{loc}}
		s.store(ctx, key, fallback, s.ttls.Positive)
		return fallback.Results, nil
	}

	s.store(ctx, key, geocode.CachedResult{Error: cause.Error()}, s.ttls.Error)
	return nil, geocode.ErrUpstreamUnavailable
}

// interpret maps a cached payload back onto the service result.
func (s *geocodeService) interpret(cached geocode.CachedResult) ([]geocode.Location, error) {
	if cached.Error != "" {
		return nil, geocode.ErrUpstreamUnavailable
	}
	if len(cached.Results) == 0 {
		return nil, geocode.ErrNotFound
	}
	return cached.Results, nil
}

func (s *geocodeService) store(ctx context.Context, key string, value geocode.CachedResult, ttl time.Duration) {
	if err := s.cache.Set(ctx, key, value, ttl); err != nil {
		logger.Error("geocode cache write failed", err)
	}
}
