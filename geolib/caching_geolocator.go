package geolib

import (
	"context"
	"time"

	"github.com/dgraph-io/ristretto"
)

type cachingGeolocator struct {
	Geolocator

	cache *ristretto.Cache
	ttl   time.Duration
}

func (c cachingGeolocator) Lookup(ctx context.Context, addr string) (GeoLookupResult, error) {
	if value, ok := c.cache.Get(addr); ok {
		return value.(GeoLookupResult), nil
	}

	result, err := c.Geolocator.Lookup(ctx, addr)
	if err != nil {
		return GeoLookupResult{}, err
	}

	// results without coordinates are useless for resolver, so there is
	// no point to keep them.
	if result.OK() {
		c.cache.SetWithTTL(addr, result, 1, c.ttl)
	}

	return result, nil
}

// NewCachingGeolocator wraps geolocator with in-memory cache of
// successful lookups. itemsCount is a maximal number of cached
// addresses.
func NewCachingGeolocator(geolocator Geolocator, itemsCount uint, ttl time.Duration) Geolocator {
	cacheConfig := &ristretto.Config{
		MaxCost:     int64(itemsCount),
		NumCounters: 10 * int64(itemsCount),
		Metrics:     false,
		BufferItems: 64,
	}

	cache, err := ristretto.NewCache(cacheConfig)
	if err != nil {
		panic(err)
	}

	return cachingGeolocator{
		Geolocator: geolocator,
		cache:      cache,
		ttl:        ttl,
	}
}
