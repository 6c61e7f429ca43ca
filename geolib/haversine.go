package geolib

import "math"

const earthRadiusKm = 6371.0

// Haversine calculates a great-circle distance in kilometers between 2
// points given in degrees.
var Haversine = DistanceCalculatorFunc(func(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := degreesToRadians(lat1)
	lat2Rad := degreesToRadians(lat2)
	deltaLat := degreesToRadians(lat2 - lat1)
	deltaLon := degreesToRadians(lon2 - lon1)

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(deltaLon/2)*math.Sin(deltaLon/2)

	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
})

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
