package cache

import (
	"context"
	"errors"
	"sales-route-service/internal/domain"
	"testing"
	"time"
)

type memoryGeocodeCache struct {
	m       map[string]domain.GeoPoint
	getErr  error
	putErr  error
	getCall int
}

func newMemoryGeocodeCache() *memoryGeocodeCache {
	return &memoryGeocodeCache{m: map[string]domain.GeoPoint{}}
}

func (c *memoryGeocodeCache) GetMany(ctx context.Context, addresses []string) (map[string]domain.GeoPoint, error) {
	c.getCall++
	if c.getErr != nil {
		return nil, c.getErr
	}
	out := map[string]domain.GeoPoint{}
	for _, a := range addresses {
		if p, ok := c.m[a]; ok {
			out[a] = p
		}
	}
	return out, nil
}

func (c *memoryGeocodeCache) PutMany(ctx context.Context, results map[string]domain.GeoPoint) error {
	if c.putErr != nil {
		return c.putErr
	}
	for k, v := range results {
		c.m[k] = v
	}
	return nil
}

func TestTieredGeocodeCachePromotesBackHits(t *testing.T) {
	_, client := newTestRedis(t)
	front := NewRedisGeocodeCache(client, time.Hour)
	back := newMemoryGeocodeCache()
	back.m["Rua Augusta, 500"] = domain.GeoPoint{Lat: -23.553, Lon: -46.652}

	c := NewTieredGeocodeCache(front, back)
	ctx := context.Background()

	got, err := c.GetMany(ctx, []string{"Rua Augusta, 500", "Unknown"})
	if err != nil {
		t.Fatalf("GetMany: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 hit, got %v", got)
	}

	frontHits, err := front.GetMany(ctx, []string{"Rua Augusta, 500"})
	if err != nil {
		t.Fatalf("front GetMany: %v", err)
	}
	if _, ok := frontHits["Rua Augusta, 500"]; !ok {
		t.Fatalf("back hit was not promoted to the front cache")
	}

	back.getCall = 0
	if _, err := c.GetMany(ctx, []string{"Rua Augusta, 500"}); err != nil {
		t.Fatalf("GetMany: %v", err)
	}
	if back.getCall != 0 {
		t.Fatalf("front hit should not reach the back cache")
	}
}

func TestTieredGeocodeCacheDegradesOnFrontFailure(t *testing.T) {
	front := newMemoryGeocodeCache()
	front.getErr = errors.New("redis down")
	front.putErr = errors.New("redis down")
	back := newMemoryGeocodeCache()

	c := NewTieredGeocodeCache(front, back)
	ctx := context.Background()

	p := domain.GeoPoint{Lat: 1, Lon: 2}
	if err := c.PutMany(ctx, map[string]domain.GeoPoint{"addr": p}); err != nil {
		t.Fatalf("PutMany must tolerate front failures: %v", err)
	}

	got, err := c.GetMany(ctx, []string{"addr"})
	if err != nil {
		t.Fatalf("GetMany must tolerate front failures: %v", err)
	}
	if got["addr"] != p {
		t.Fatalf("got %v, want %v", got["addr"], p)
	}
}

func TestTieredGeocodeCacheBackFailure(t *testing.T) {
	back := newMemoryGeocodeCache()
	back.getErr = errors.New("db down")
	back.putErr = errors.New("db down")
	c := NewTieredGeocodeCache(newMemoryGeocodeCache(), back)

	if _, err := c.GetMany(context.Background(), []string{"addr"}); err == nil {
		t.Fatalf("expected back read error")
	}
	if err := c.PutMany(context.Background(), map[string]domain.GeoPoint{"addr": {}}); err == nil {
		t.Fatalf("expected back write error")
	}
}
