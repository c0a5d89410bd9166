package cache

import (
	"context"
	"fmt"
	"log"
	"sales-route-service/internal/domain"
	"sales-route-service/internal/platform/obs"
	"sales-route-service/internal/ports"
)

// TieredGeocodeCache reads a fast front cache first and falls back to a
// durable back cache. Back-cache hits are copied into the front.
// A failing front cache degrades to back-only reads instead of failing.
type TieredGeocodeCache struct {
	Front ports.GeocodeCache
	Back  ports.GeocodeCache
}

func NewTieredGeocodeCache(front, back ports.GeocodeCache) *TieredGeocodeCache {
	return &TieredGeocodeCache{Front: front, Back: back}
}

func (t *TieredGeocodeCache) GetMany(ctx context.Context, addresses []string) (map[string]domain.GeoPoint, error) {
	uniq := uniqueAddresses(addresses)
	if len(uniq) == 0 {
		return map[string]domain.GeoPoint{}, nil
	}

	hits, err := t.Front.GetMany(ctx, uniq)
	if err != nil {
		log.Printf("req_id=%s front geocode cache read failed: %v", obs.RequestID(ctx), err)
		hits = map[string]domain.GeoPoint{}
	}

	misses := make([]string, 0, len(uniq))
	for _, a := range uniq {
		if _, ok := hits[a]; !ok {
			misses = append(misses, a)
		}
	}
	if len(misses) == 0 {
		return hits, nil
	}

	backHits, err := t.Back.GetMany(ctx, misses)
	if err != nil {
		return nil, fmt.Errorf("tiered geocode cache: back: %w", err)
	}

	if len(backHits) > 0 {
		if err := t.Front.PutMany(ctx, backHits); err != nil {
			log.Printf("req_id=%s front geocode cache promote failed: %v", obs.RequestID(ctx), err)
		}
	}

	for k, v := range backHits {
		hits[k] = v
	}
	return hits, nil
}

// PutMany writes through to both tiers. The back tier is authoritative.
func (t *TieredGeocodeCache) PutMany(ctx context.Context, results map[string]domain.GeoPoint) error {
	if err := t.Back.PutMany(ctx, results); err != nil {
		return fmt.Errorf("tiered geocode cache: back: %w", err)
	}
	if err := t.Front.PutMany(ctx, results); err != nil {
		log.Printf("req_id=%s front geocode cache write failed: %v", obs.RequestID(ctx), err)
	}
	return nil
}
