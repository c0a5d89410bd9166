package geo

import "math"

// AverageSpeedKmh is the assumed urban driving speed.
const AverageSpeedKmh = 40.0

// EstimateMinutes converts a distance in kilometers to travel minutes at
// AverageSpeedKmh, rounded to the nearest whole minute.
func EstimateMinutes(distanceKm float64) int {
	return int(math.Round(distanceKm / AverageSpeedKmh * 60))
}
