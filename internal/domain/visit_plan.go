package domain

// Reasons a lead was left out of a visit plan.
const (
	SkipReasonNoCoordinates = "no_coordinates"
	SkipReasonGeocodeFailed = "geocode_failed"
)

// SkippedLead records a lead that could not be routed.
type SkippedLead struct {
	LeadID string
	Reason string
}

// Represents a salesperson's planned visits for one optimization run.
// The optional return leg is reported separately and is not part of Route totals.
type VisitPlan struct {
	OwnerID          string
	Origin           GeoPoint
	Route            RouteResult[*Lead]
	Skipped          []SkippedLead
	ReturnToOrigin   bool
	ReturnDistanceKm float64
	ReturnMinutes    int
	NavigationURL    string
}
