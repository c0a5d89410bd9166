package cache

import (
	"context"
	"os"
	"reflect"
	"sales-route-service/internal/adapters/repositories"
	"sales-route-service/internal/domain"
	"sales-route-service/internal/platform/db"
	"testing"
)

func TestUniqueAddresses(t *testing.T) {
	got := uniqueAddresses([]string{" rua a ", "", "rua b", "rua a", "   "})
	want := []string{"rua a", "rua b"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("uniqueAddresses = %v, want %v", got, want)
	}
}

func TestSQLGeocodeCacheNilDB(t *testing.T) {
	c := NewSQLGeocodeCache(nil)
	if _, err := c.GetMany(context.Background(), []string{"x"}); err == nil {
		t.Fatalf("expected error from GetMany with nil db")
	}
	if err := c.PutMany(context.Background(), map[string]domain.GeoPoint{"x": {}}); err == nil {
		t.Fatalf("expected error from PutMany with nil db")
	}
}

// Runs against a real database only when TEST_DATABASE_URL is set.
func TestSQLGeocodeCacheRoundTrip(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	conn, err := db.Open(ctx, url, db.DefaultOptions())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer conn.Close()

	if err := repositories.InitSchema(ctx, conn); err != nil {
		t.Fatalf("init schema: %v", err)
	}

	c := NewSQLGeocodeCache(conn)
	want := domain.GeoPoint{Lat: -23.5629, Lon: -46.6544}
	if err := c.PutMany(ctx, map[string]domain.GeoPoint{"test avenida paulista 1578": want}); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := c.GetMany(ctx, []string{"test avenida paulista 1578", "test unknown"})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 1 || got["test avenida paulista 1578"] != want {
		t.Fatalf("unexpected cache contents: %+v", got)
	}
}
