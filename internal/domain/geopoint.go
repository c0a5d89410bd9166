package domain

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidGeoPoint = errors.New("invalid geo point")

// Immutable geographic coordinate in degrees.
type GeoPoint struct {
	Lat float64
	Lon float64
}

// Validate reports whether the point is finite and inside the latitude/longitude ranges.
func (p GeoPoint) Validate() error {
	if math.IsNaN(p.Lat) || math.IsInf(p.Lat, 0) || math.IsNaN(p.Lon) || math.IsInf(p.Lon, 0) {
		return fmt.Errorf("%w: non-finite coordinate (lat=%v, lon=%v)", ErrInvalidGeoPoint, p.Lat, p.Lon)
	}
	if p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("%w: latitude %v out of range [-90, 90]", ErrInvalidGeoPoint, p.Lat)
	}
	if p.Lon < -180 || p.Lon > 180 {
		return fmt.Errorf("%w: longitude %v out of range [-180, 180]", ErrInvalidGeoPoint, p.Lon)
	}
	return nil
}

// Return coordinates as [lon, lat] for external API compatibility.
func (p GeoPoint) CoordsToList() []float64 { return []float64{p.Lon, p.Lat} }

// String formats the point as "lat,lon", the order map links expect.
func (p GeoPoint) String() string {
	return fmt.Sprintf("%.6f,%.6f", p.Lat, p.Lon)
}
