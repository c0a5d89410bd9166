package ports

import (
	"context"
	"sales-route-service/internal/domain"
)

// Contract for resolving a postal address to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (domain.GeoPoint, error)
}
