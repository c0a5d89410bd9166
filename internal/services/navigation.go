package services

import (
	"net/url"
	"sales-route-service/internal/domain"
	"strings"
)

const mapsDirectionsURL = "https://www.google.com/maps/dir/"

// NavigationURL builds a Google Maps directions link visiting points in order.
// Returns "" when there is nothing to visit.
func NavigationURL(origin domain.GeoPoint, points []domain.GeoPoint, returnToOrigin bool) string {
	if len(points) == 0 {
		return ""
	}

	destination := points[len(points)-1]
	waypoints := points[:len(points)-1]
	if returnToOrigin {
		destination = origin
		waypoints = points
	}

	q := url.Values{}
	q.Set("api", "1")
	q.Set("origin", origin.String())
	q.Set("destination", destination.String())
	q.Set("travelmode", "driving")

	if len(waypoints) > 0 {
		wp := make([]string, 0, len(waypoints))
		for _, p := range waypoints {
			wp = append(wp, p.String())
		}
		q.Set("waypoints", strings.Join(wp, "|"))
	}

	return mapsDirectionsURL + "?" + q.Encode()
}
