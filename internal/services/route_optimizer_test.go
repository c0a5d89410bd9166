package services

import (
	"math"
	"math/rand"
	"sales-route-service/internal/domain"
	"sales-route-service/internal/geo"
	"strconv"
	"testing"
)

type leadInfo struct {
	Name  string
	Phone string
}

func TestOptimizeRouteEmpty(t *testing.T) {
	origin := domain.GeoPoint{Lat: -23.5505, Lon: -46.6333}

	res := OptimizeRoute[leadInfo](origin, nil)
	if res.Legs == nil {
		t.Fatalf("expected non-nil empty legs")
	}
	if len(res.Legs) != 0 {
		t.Fatalf("expected 0 legs, got %d", len(res.Legs))
	}
	if res.TotalDistanceKm != 0 || res.TotalMinutes != 0 {
		t.Fatalf("totals = %v km / %d min, want zero", res.TotalDistanceKm, res.TotalMinutes)
	}
}

func TestOptimizeRouteSingleStop(t *testing.T) {
	origin := domain.GeoPoint{Lat: -23.5505, Lon: -46.6333}
	stop := domain.Stop[leadInfo]{
		ID:      "s1",
		Point:   domain.GeoPoint{Lat: -22.9068, Lon: -43.1729},
		Payload: leadInfo{Name: "Rio office", Phone: "+55 21 5555-0000"},
	}

	res := OptimizeRoute(origin, []domain.Stop[leadInfo]{stop})
	if len(res.Legs) != 1 {
		t.Fatalf("expected 1 leg, got %d", len(res.Legs))
	}

	want := geo.HaversineDistance(origin, stop.Point)
	if res.Legs[0].DistanceKm != want {
		t.Fatalf("leg distance = %v, want %v", res.Legs[0].DistanceKm, want)
	}
	if res.Legs[0].Stop.Payload != stop.Payload {
		t.Fatalf("payload changed: %+v", res.Legs[0].Stop.Payload)
	}
	if res.TotalDistanceKm != want {
		t.Fatalf("total distance = %v, want %v", res.TotalDistanceKm, want)
	}
}

func TestOptimizeRouteSaoPauloScenario(t *testing.T) {
	origin := domain.GeoPoint{Lat: -23.5505, Lon: -46.6333}
	stops := []domain.Stop[leadInfo]{
		{ID: "B", Point: domain.GeoPoint{Lat: -23.5629, Lon: -46.6544}},
		{ID: "A", Point: domain.GeoPoint{Lat: -23.5505, Lon: -46.6333}},
	}

	res := OptimizeRoute(origin, stops)
	if len(res.Legs) != 2 {
		t.Fatalf("expected 2 legs, got %d", len(res.Legs))
	}

	first, second := res.Legs[0], res.Legs[1]
	if first.Stop.ID != "A" {
		t.Fatalf("expected first stop A, got %q", first.Stop.ID)
	}
	if first.DistanceKm != 0 || first.Minutes != 0 {
		t.Fatalf("first leg = %v km / %d min, want 0 / 0", first.DistanceKm, first.Minutes)
	}

	if second.Stop.ID != "B" {
		t.Fatalf("expected second stop B, got %q", second.Stop.ID)
	}
	wantKm := geo.HaversineDistance(stops[1].Point, stops[0].Point)
	if second.DistanceKm != wantKm {
		t.Fatalf("second leg distance = %v, want %v", second.DistanceKm, wantKm)
	}
	if math.Abs(second.DistanceKm-2.6) > 0.1 {
		t.Fatalf("second leg distance = %v, want ~2.6 km", second.DistanceKm)
	}
	if second.Minutes != 4 {
		t.Fatalf("second leg minutes = %d, want 4", second.Minutes)
	}
	if res.TotalMinutes != geo.EstimateMinutes(res.TotalDistanceKm) {
		t.Fatalf("total minutes = %d, want %d", res.TotalMinutes, geo.EstimateMinutes(res.TotalDistanceKm))
	}
}

func TestOptimizeRouteTieBreaksByInputOrder(t *testing.T) {
	origin := domain.GeoPoint{Lat: 0, Lon: 0}
	east := domain.Stop[leadInfo]{ID: "east", Point: domain.GeoPoint{Lat: 0, Lon: 1}}
	west := domain.Stop[leadInfo]{ID: "west", Point: domain.GeoPoint{Lat: 0, Lon: -1}}

	if geo.HaversineDistance(origin, east.Point) != geo.HaversineDistance(origin, west.Point) {
		t.Fatalf("test setup: expected equidistant stops")
	}

	res := OptimizeRoute(origin, []domain.Stop[leadInfo]{west, east})
	if res.Legs[0].Stop.ID != "west" {
		t.Fatalf("expected west first, got %q", res.Legs[0].Stop.ID)
	}

	res = OptimizeRoute(origin, []domain.Stop[leadInfo]{east, west})
	if res.Legs[0].Stop.ID != "east" {
		t.Fatalf("expected east first, got %q", res.Legs[0].Stop.ID)
	}
}

func TestOptimizeRouteTotalMinutesFromTotalDistance(t *testing.T) {
	// Two ~0.3 km legs each round to 0 minutes; 0.6 km rounds to 1 minute.
	degPerKm := 180 / (math.Pi * geo.EarthRadiusKm)
	origin := domain.GeoPoint{Lat: 0, Lon: 0}
	stops := []domain.Stop[leadInfo]{
		{ID: "far", Point: domain.GeoPoint{Lat: 0, Lon: 0.6 * degPerKm}},
		{ID: "near", Point: domain.GeoPoint{Lat: 0, Lon: 0.3 * degPerKm}},
	}

	res := OptimizeRoute(origin, stops)

	sumLegMinutes := 0
	for _, leg := range res.Legs {
		sumLegMinutes += leg.Minutes
	}
	if sumLegMinutes != 0 {
		t.Fatalf("sum of leg minutes = %d, want 0", sumLegMinutes)
	}
	if res.TotalMinutes != 1 {
		t.Fatalf("total minutes = %d, want 1", res.TotalMinutes)
	}
	if res.TotalMinutes != geo.EstimateMinutes(res.TotalDistanceKm) {
		t.Fatalf("total minutes = %d, want EstimateMinutes(total)", res.TotalMinutes)
	}
}

func TestOptimizeRouteGreedyProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 50; round++ {
		origin := randomPoint(rng)
		n := rng.Intn(25)
		stops := make([]domain.Stop[leadInfo], 0, n)
		for i := 0; i < n; i++ {
			stops = append(stops, domain.Stop[leadInfo]{
				ID:    strconv.Itoa(i),
				Point: randomPoint(rng),
			})
		}
		input := append([]domain.Stop[leadInfo](nil), stops...)

		res := OptimizeRoute(origin, stops)

		for i := range stops {
			if stops[i] != input[i] {
				t.Fatalf("round %d: input slice modified at %d", round, i)
			}
		}

		// Permutation: every input stop exactly once.
		if len(res.Legs) != n {
			t.Fatalf("round %d: expected %d legs, got %d", round, n, len(res.Legs))
		}
		seen := make(map[string]int, n)
		for _, leg := range res.Legs {
			seen[leg.Stop.ID]++
		}
		for _, s := range stops {
			if seen[s.ID] != 1 {
				t.Fatalf("round %d: stop %s visited %d times", round, s.ID, seen[s.ID])
			}
		}

		// Greedy oracle: each leg is the minimum over the stops unvisited at that step.
		unvisited := make(map[string]domain.Stop[leadInfo], n)
		for _, s := range stops {
			unvisited[s.ID] = s
		}
		current := origin
		sum := 0.0
		for i, leg := range res.Legs {
			minDist := math.Inf(1)
			for _, s := range unvisited {
				if d := geo.HaversineDistance(current, s.Point); d < minDist {
					minDist = d
				}
			}
			if leg.DistanceKm != minDist {
				t.Fatalf("round %d leg %d: distance %v, want greedy minimum %v", round, i, leg.DistanceKm, minDist)
			}
			if leg.DistanceKm < 0 || leg.Minutes < 0 {
				t.Fatalf("round %d leg %d: negative leg %v km / %d min", round, i, leg.DistanceKm, leg.Minutes)
			}
			if leg.Minutes != geo.EstimateMinutes(leg.DistanceKm) {
				t.Fatalf("round %d leg %d: minutes %d, want %d", round, i, leg.Minutes, geo.EstimateMinutes(leg.DistanceKm))
			}

			sum += leg.DistanceKm
			delete(unvisited, leg.Stop.ID)
			current = leg.Stop.Point
		}

		if math.Abs(res.TotalDistanceKm-sum) > 1e-9 {
			t.Fatalf("round %d: total distance %v, want %v", round, res.TotalDistanceKm, sum)
		}
		if res.TotalDistanceKm < 0 || res.TotalMinutes < 0 {
			t.Fatalf("round %d: negative totals", round)
		}
		if res.TotalMinutes != geo.EstimateMinutes(res.TotalDistanceKm) {
			t.Fatalf("round %d: total minutes %d, want %d", round, res.TotalMinutes, geo.EstimateMinutes(res.TotalDistanceKm))
		}
	}
}

func randomPoint(rng *rand.Rand) domain.GeoPoint {
	// Metro-sized box around Sao Paulo, like a real daily visit list.
	return domain.GeoPoint{
		Lat: -23.7 + rng.Float64()*0.4,
		Lon: -46.8 + rng.Float64()*0.4,
	}
}
