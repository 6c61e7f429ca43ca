package geolib

// Coordinate is a pair of latitude and longitude. It is always consumed
// as a unit.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid checks that coordinate is a finite point on Earth.
func (c Coordinate) Valid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

// GeoLookupResult is a result of a single geolocation lookup. Any field
// could be empty; latitude and longitude are meaningful only if
// HasCoordinates is set.
type GeoLookupResult struct {
	Latitude       float64
	Longitude      float64
	HasCoordinates bool
	City           string
	Country        string
	CountryCode    string
}

// OK reports if result can be used as a location.
func (g GeoLookupResult) OK() bool {
	return g.HasCoordinates
}

// Coordinate returns a location of the lookup result.
func (g GeoLookupResult) Coordinate() Coordinate {
	return Coordinate{
		Latitude:  g.Latitude,
		Longitude: g.Longitude,
	}
}

// NeighborhoodRecord is a set of attributes of the neighborhood. It is
// owned by NeighborhoodFinder and has to be treated as read-only.
type NeighborhoodRecord map[string]interface{}
