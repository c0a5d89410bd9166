package ports

import (
	"context"
	"sales-route-service/internal/domain"
)

// Selects which leads a repository returns. Empty fields do not filter.
type LeadFilter struct {
	OwnerID  string
	Statuses []string
	IDs      []string
}

// Port: a boundary for retrieving and updating Lead entities.
type LeadRepository interface {
	// Retrieve leads matching the filter, ordered by lead id.
	ListLeads(ctx context.Context, filter LeadFilter) ([]*domain.Lead, error)
	// Persist coordinates resolved for a lead's address.
	UpdateCoordinates(ctx context.Context, leadID string, p domain.GeoPoint) error
}
