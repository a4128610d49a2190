// Package geo provides great-circle distance math for the distance
// aggregation views. It is pure computation with no dependencies on the rest
// of the application.
package geo

import (
	"math"

	"github.com/drivemapz/backend/internal/domain"
)

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance in kilometres between two
// coordinates, assuming a spherical Earth. This is line-of-sight distance,
// not road distance.
func HaversineKm(a, b domain.Coordinate) float64 {
	dLat := radians(b.Lat - a.Lat)
	dLng := radians(b.Lng - a.Lng)

	lat1 := radians(a.Lat)
	lat2 := radians(b.Lat)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLng/2)*math.Sin(dLng/2)*math.Cos(lat1)*math.Cos(lat2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// PathKm sums the haversine distance between consecutive points.
// Zero or one point yields 0.
func PathKm(points []domain.Coordinate) float64 {
	var sum float64
	for i := 1; i < len(points); i++ {
		sum += HaversineKm(points[i-1], points[i])
	}
	return sum
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
