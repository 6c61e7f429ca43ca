package geolib

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cast"
)

const DefaultLookupTimeout = 5 * time.Second

var (
	latitudeAliases  = []string{"lat", "latitude", "خط_العرض"}
	longitudeAliases = []string{"lon", "longitude", "خط_الطول"}
)

// LocationResolver detects where a client is and how far it is from a
// neighborhood.
//
// Every failure of location resolution degrades to a fallback
// coordinate. Failures of distance calculation are returned as errors
// and logged, resolver never panics because of its collaborators.
type LocationResolver struct {
	geolocator    Geolocator
	calculator    DistanceCalculator
	finder        NeighborhoodFinder
	logger        Logger
	fallback      Coordinate
	lookupTimeout time.Duration
	stats         *UsageStats
}

// Fallback returns a coordinate which is used if client cannot be
// located.
func (l *LocationResolver) Fallback() Coordinate {
	return l.fallback
}

// Neighborhoods returns names of all known neighborhoods. A false flag
// means that the finder cannot enumerate them.
func (l *LocationResolver) Neighborhoods() ([]string, bool) {
	lister, ok := l.finder.(NeighborhoodLister)
	if !ok {
		return nil, false
	}

	return lister.Names(), true
}

// UsageStats returns usage statistics of the geolocator.
func (l *LocationResolver) UsageStats() *UsageStats {
	return l.stats
}

// ResolveUserLocation returns a location of the client which has sent
// a given request. It always returns some coordinate: if client
// address is unknown, local or geolocator has failed, a fallback
// coordinate is returned.
func (l *LocationResolver) ResolveUserLocation(req *http.Request) Coordinate {
	addr, ok := ExtractClientAddress(req)

	switch {
	case !ok:
		return l.useFallback(addr, ErrNoClientAddress)
	case IsLocalAddress(addr):
		return l.useFallback(addr, ErrLocalAddress)
	}

	result, ok := l.QueryGeolocationService(req.Context(), addr)
	if !ok {
		return l.useFallback(addr, fmt.Errorf("%s has failed", l.geolocator.Name()))
	}

	if !result.OK() {
		return l.useFallback(addr, ErrNoLocation)
	}

	location := result.Coordinate()

	l.logger.LocationResolved(addr, location)

	return location
}

// QueryGeolocationService asks geolocator about a given address. Lookup
// is bounded by a timeout of the resolver. Any error is logged and
// reported as a false flag.
func (l *LocationResolver) QueryGeolocationService(ctx context.Context, addr string) (GeoLookupResult, bool) {
	ctx, cancel := context.WithTimeout(ctx, l.lookupTimeout)
	defer cancel()

	result, err := l.geolocator.Lookup(ctx, addr)

	l.stats.Used(err)

	if err != nil {
		l.logger.LookupError(addr, l.geolocator.Name(), err)

		return GeoLookupResult{}, false
	}

	return result, true
}

// DistanceToNeighborhood calculates a distance in kilometers between a
// user and a neighborhood with a given name. If user is nil, its
// location is resolved from the request.
func (l *LocationResolver) DistanceToNeighborhood(req *http.Request,
	name string,
	user *Coordinate) (distance float64, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("cannot calculate distance: %v", rec)
		}

		if err != nil {
			distance = 0
			l.logger.DistanceError(name, err)
		}
	}()

	var location Coordinate

	if user != nil {
		location = *user
	} else {
		location = l.ResolveUserLocation(req)
	}

	record, ok := l.finder.FindNeighborhoodInfo(name)
	if !ok || len(record) == 0 {
		return 0, ErrNeighborhoodNotFound
	}

	latitude, err := recordCoordinate(record, latitudeAliases)
	if err != nil {
		return 0, fmt.Errorf("cannot get latitude: %w", err)
	}

	longitude, err := recordCoordinate(record, longitudeAliases)
	if err != nil {
		return 0, fmt.Errorf("cannot get longitude: %w", err)
	}

	distance = l.calculator.CalculateDistance(location.Latitude, location.Longitude,
		latitude, longitude)
	if math.IsNaN(distance) || math.IsInf(distance, 0) {
		return 0, fmt.Errorf("%w: %v", ErrBadDistance, distance)
	}

	l.logger.DistanceCalculated(name, distance)

	return distance, nil
}

func (l *LocationResolver) useFallback(addr string, reason error) Coordinate {
	l.stats.Fallback()
	l.logger.LocationFallback(addr, reason)

	return l.fallback
}

func recordCoordinate(record NeighborhoodRecord, aliases []string) (float64, error) {
	for _, alias := range aliases {
		key, ok := findRecordKey(record, alias)
		if !ok {
			continue
		}

		value := record[key]

		if str, ok := value.(string); ok {
			value = strings.TrimSpace(str)
		}

		if value == nil {
			return 0, fmt.Errorf("%w: %s is empty", ErrBadCoordinate, key)
		}

		number, err := cast.ToFloat64E(value)
		if err != nil || math.IsNaN(number) || math.IsInf(number, 0) {
			return 0, fmt.Errorf("%w: %s=%v", ErrBadCoordinate, key, value)
		}

		return number, nil
	}

	return 0, ErrNoCoordinates
}

// findRecordKey returns a key of the record which matches alias. Exact
// match wins, otherwise the smallest of case-insensitive matches is
// taken.
func findRecordKey(record NeighborhoodRecord, alias string) (string, bool) {
	if _, ok := record[alias]; ok {
		return alias, true
	}

	candidates := []string{}

	for key := range record {
		if strings.EqualFold(key, alias) {
			candidates = append(candidates, key)
		}
	}

	if len(candidates) == 0 {
		return "", false
	}

	sort.Strings(candidates)

	return candidates[0], true
}

// NewLocationResolver creates a new resolver. lookupTimeout bounds each
// request to geolocator, zero means DefaultLookupTimeout.
func NewLocationResolver(geolocator Geolocator,
	calculator DistanceCalculator,
	finder NeighborhoodFinder,
	logger Logger,
	fallback Coordinate,
	lookupTimeout time.Duration) *LocationResolver {
	if lookupTimeout <= 0 {
		lookupTimeout = DefaultLookupTimeout
	}

	return &LocationResolver{
		geolocator:    geolocator,
		calculator:    calculator,
		finder:        finder,
		logger:        logger,
		fallback:      fallback,
		lookupTimeout: lookupTimeout,
		stats: &UsageStats{
			Name: geolocator.Name(),
		},
	}
}
