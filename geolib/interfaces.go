package geolib

import (
	"context"
	"net/http"
)

// HTTPClient is a minimal interface of http.Client which is used by
// geolocators.
type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

// Geolocator resolves a network address to an approximate location.
type Geolocator interface {
	Name() string
	Lookup(ctx context.Context, addr string) (GeoLookupResult, error)
}

// DistanceCalculator returns a distance in kilometers between 2 points.
type DistanceCalculator interface {
	CalculateDistance(lat1, lon1, lat2, lon2 float64) float64
}

// DistanceCalculatorFunc is an adapter to use ordinary functions as
// DistanceCalculator.
type DistanceCalculatorFunc func(lat1, lon1, lat2, lon2 float64) float64

func (d DistanceCalculatorFunc) CalculateDistance(lat1, lon1, lat2, lon2 float64) float64 {
	return d(lat1, lon1, lat2, lon2)
}

// NeighborhoodFinder returns a record of the neighborhood by its name.
type NeighborhoodFinder interface {
	FindNeighborhoodInfo(name string) (NeighborhoodRecord, bool)
}

// NeighborhoodFinderFunc is an adapter to use ordinary functions as
// NeighborhoodFinder.
type NeighborhoodFinderFunc func(name string) (NeighborhoodRecord, bool)

func (n NeighborhoodFinderFunc) FindNeighborhoodInfo(name string) (NeighborhoodRecord, bool) {
	return n(name)
}

// NeighborhoodLister can be implemented by NeighborhoodFinder if it is
// able to enumerate all known neighborhoods.
type NeighborhoodLister interface {
	Names() []string
}

type Logger interface {
	LookupError(addr, name string, err error)
	LocationFallback(addr string, reason error)
	LocationResolved(addr string, location Coordinate)
	DistanceError(neighborhood string, err error)
	DistanceCalculated(neighborhood string, distance float64)
}
