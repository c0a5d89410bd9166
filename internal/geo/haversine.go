// Package geo holds the great-circle math used to sequence visits.
package geo

import (
	"math"
	"sales-route-service/internal/domain"
)

// EarthRadiusKm is the mean Earth radius used by HaversineDistance.
const EarthRadiusKm = 6371.0

// HaversineDistance returns the great-circle distance in kilometers between p and q.
// Behavior for non-finite input is undefined; callers validate points first.
func HaversineDistance(p, q domain.GeoPoint) float64 {
	lat1 := toRadians(p.Lat)
	lat2 := toRadians(q.Lat)
	dLat := toRadians(q.Lat - p.Lat)
	dLon := toRadians(q.Lon - p.Lon)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
