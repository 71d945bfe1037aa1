// Package geo provides the distance math used by the recommendation scorer.
package geo

import (
	"math"

	"github.com/teetrip/teetrip/internal/domain/types"
)

const (
	// earthRadiusKm is the mean Earth radius used by the haversine formula.
	earthRadiusKm = 6371

	milesPerKm = 0.621371
)

// Distance returns the great-circle distance between a and b in kilometers.
// It is symmetric, non-negative, and zero for identical points.
func Distance(a, b types.LatLng) float64 {
	dLat := radians(b.Lat - a.Lat)
	dLng := radians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(a.Lat))*math.Cos(radians(b.Lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// Centroid returns the arithmetic mean of the points' coordinates.
//
// This is a flat average, not a spherical centroid. It is fine for the small,
// local clusters a golf group produces but distorts at continental scale and
// near the antimeridian.
func Centroid(points []types.LatLng) (types.LatLng, bool) {
	if len(points) == 0 {
		return types.LatLng{}, false
	}
	var sum types.LatLng
	for _, p := range points {
		sum.Lat += p.Lat
		sum.Lng += p.Lng
	}
	n := float64(len(points))
	return types.LatLng{Lat: sum.Lat / n, Lng: sum.Lng / n}, true
}

// KmToMiles converts kilometers to statute miles.
func KmToMiles(km float64) float64 {
	return km * milesPerKm
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
