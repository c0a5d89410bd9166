package domain

import (
	"errors"
	"math"
	"testing"
)

func TestGeoPointValidate(t *testing.T) {
	tests := []struct {
		name    string
		point   GeoPoint
		wantErr bool
	}{
		{name: "sao paulo", point: GeoPoint{Lat: -23.5505, Lon: -46.6333}},
		{name: "poles and antimeridian", point: GeoPoint{Lat: 90, Lon: -180}},
		{name: "latitude too high", point: GeoPoint{Lat: 90.0001, Lon: 0}, wantErr: true},
		{name: "longitude too low", point: GeoPoint{Lat: 0, Lon: -180.5}, wantErr: true},
		{name: "nan", point: GeoPoint{Lat: math.NaN(), Lon: 0}, wantErr: true},
		{name: "inf", point: GeoPoint{Lat: 0, Lon: math.Inf(1)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.point.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidGeoPoint) {
					t.Fatalf("Validate() = %v, want ErrInvalidGeoPoint", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestLeadPoint(t *testing.T) {
	lat, lon := -23.5629, -46.6544
	badLat := 123.0

	lead := &Lead{ID: "l1", Lat: &lat, Lon: &lon}
	p, ok := lead.Point()
	if !ok {
		t.Fatalf("expected lead l1 to have coordinates")
	}
	if p.Lat != lat || p.Lon != lon {
		t.Fatalf("Point() = %+v, want lat=%v lon=%v", p, lat, lon)
	}

	if _, ok := (&Lead{ID: "l2", Lat: &lat}).Point(); ok {
		t.Errorf("lead without longitude must not have a point")
	}
	if _, ok := (&Lead{ID: "l3", Lat: &badLat, Lon: &lon}).Point(); ok {
		t.Errorf("lead with out-of-range latitude must not have a point")
	}

	empty := &Lead{ID: "l4"}
	empty.SetPoint(GeoPoint{Lat: 1, Lon: 2})
	if p, ok := empty.Point(); !ok || p != (GeoPoint{Lat: 1, Lon: 2}) {
		t.Fatalf("SetPoint then Point() = %+v, %v", p, ok)
	}
}
