package domain

// Represents one visit candidate.
// Payload is caller data (a lead record, a DTO) carried through the optimizer unchanged.
type Stop[T any] struct {
	ID      string
	Point   GeoPoint
	Payload T
}

// Represents a single hop of an optimized route.
// DistanceKm is measured from the previous stop, or from the origin for the first leg.
type RouteLeg[T any] struct {
	Stop       Stop[T]
	DistanceKm float64
	Minutes    int
}

// Represents the visiting order produced by the route optimizer.
// A RouteResult is computed fresh on every optimization call and is never
// cached or persisted. TotalMinutes is estimated from TotalDistanceKm,
// not summed from the per-leg minutes.
type RouteResult[T any] struct {
	Legs            []RouteLeg[T]
	TotalDistanceKm float64
	TotalMinutes    int
}
