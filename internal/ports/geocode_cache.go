package ports

import (
	"context"
	"sales-route-service/internal/domain"
)

// Contract for address -> coordinate caches.
// Address keys are expected to be normalized by the caller.
type GeocodeCache interface {
	// Return cached coordinates for the addresses that have an entry.
	GetMany(ctx context.Context, addresses []string) (map[string]domain.GeoPoint, error)
	// Store address -> coordinate mappings.
	PutMany(ctx context.Context, results map[string]domain.GeoPoint) error
}
