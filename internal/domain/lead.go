package domain

// Lead pipeline statuses.
const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusQualified = "qualified"
	LeadStatusProposal  = "proposal"
	LeadStatusWon       = "won"
	LeadStatusLost      = "lost"
)

// OpenLeadStatuses are the statuses still worth a visit.
var OpenLeadStatuses = []string{
	LeadStatusNew,
	LeadStatusContacted,
	LeadStatusQualified,
	LeadStatusProposal,
}

// Represents a CRM lead owned by a salesperson.
// Coordinates are optional: leads imported without geocoding have nil Lat/Lon.
type Lead struct {
	ID      string
	OwnerID string
	Name    string
	Phone   string
	Address string
	Status  string
	Lat     *float64
	Lon     *float64
}

// Point returns the lead's coordinate when both values are present and valid.
func (l *Lead) Point() (GeoPoint, bool) {
	if l == nil || l.Lat == nil || l.Lon == nil {
		return GeoPoint{}, false
	}
	p := GeoPoint{Lat: *l.Lat, Lon: *l.Lon}
	if err := p.Validate(); err != nil {
		return GeoPoint{}, false
	}
	return p, true
}

// SetPoint stores p as the lead's coordinates.
func (l *Lead) SetPoint(p GeoPoint) {
	lat, lon := p.Lat, p.Lon
	l.Lat = &lat
	l.Lon = &lon
}
