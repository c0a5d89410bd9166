package geocode

import (
	"context"
	"fmt"
	"sales-route-service/internal/domain"
	"sync"
)

// MockGeocoder resolves addresses from a fixed table and counts calls.
type MockGeocoder struct {
	mu    sync.Mutex
	m     map[string]domain.GeoPoint
	calls map[string]int
}

func NewMockGeocoder(points map[string]domain.GeoPoint) *MockGeocoder {
	m := make(map[string]domain.GeoPoint, len(points))
	for k, v := range points {
		m[normalize(k)] = v
	}
	return &MockGeocoder{m: m, calls: map[string]int{}}
}

func (g *MockGeocoder) Geocode(ctx context.Context, address string) (domain.GeoPoint, error) {
	if err := ctx.Err(); err != nil {
		return domain.GeoPoint{}, err
	}

	norm := normalize(address)

	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls[norm]++

	p, ok := g.m[norm]
	if !ok {
		return domain.GeoPoint{}, fmt.Errorf("geocode %q: %w", norm, ErrAddressNotFound)
	}
	return p, nil
}

// Calls returns how many times address was looked up.
func (g *MockGeocoder) Calls(address string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls[normalize(address)]
}
