package services

import (
	"sales-route-service/internal/domain"
	"sales-route-service/internal/geo"
)

// OptimizeRoute orders stops using a greedy nearest-neighbor heuristic.
//
// Starting at origin, the closest unvisited stop by great-circle distance is
// visited next. Exact ties go to the stop that appears first in stops.
// It does not attempt global route optimization; a daily visit list is small
// and the result is advisory.
//
// Every stop must carry a valid GeoPoint. The caller's slice is not modified.
func OptimizeRoute[T any](origin domain.GeoPoint, stops []domain.Stop[T]) domain.RouteResult[T] {
	if len(stops) == 0 {
		return domain.RouteResult[T]{Legs: []domain.RouteLeg[T]{}}
	}

	// Unvisited pool is owned by this call; removal keeps input order for tie-breaking.
	remaining := make([]domain.Stop[T], len(stops))
	copy(remaining, stops)

	current := origin
	legs := make([]domain.RouteLeg[T], 0, len(stops))
	totalDistanceKm := 0.0

	for len(remaining) > 0 {
		bestIdx := 0
		bestDistance := geo.HaversineDistance(current, remaining[0].Point)

		// Select next stop by minimum distance (greedy step).
		for i := 1; i < len(remaining); i++ {
			d := geo.HaversineDistance(current, remaining[i].Point)
			if d < bestDistance {
				bestDistance = d
				bestIdx = i
			}
		}

		next := remaining[bestIdx]
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)

		legs = append(legs, domain.RouteLeg[T]{
			Stop:       next,
			DistanceKm: bestDistance,
			Minutes:    geo.EstimateMinutes(bestDistance),
		})
		totalDistanceKm += bestDistance
		current = next.Point
	}

	return domain.RouteResult[T]{
		Legs:            legs,
		TotalDistanceKm: totalDistanceKm,
		TotalMinutes:    geo.EstimateMinutes(totalDistanceKm),
	}
}
