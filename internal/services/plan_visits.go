package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sales-route-service/internal/domain"
	"sales-route-service/internal/geo"
	"sales-route-service/internal/platform/obs"
	"sales-route-service/internal/ports"
	"strings"

	"golang.org/x/sync/errgroup"
)

// ErrInvalidRequest marks planning failures caused by caller input.
var ErrInvalidRequest = errors.New("invalid request")

// maxConcurrentGeocodes bounds in-flight geocoder calls per plan.
const maxConcurrentGeocodes = 5

type PlanVisitsRequest struct {
	OwnerID        string
	Origin         *domain.GeoPoint
	Statuses       []string
	LeadIDs        []string
	ReturnToOrigin bool
}

// VisitPlanner builds visit plans from stored leads.
// Geocoder is optional; without it, leads lacking coordinates are skipped.
type VisitPlanner struct {
	Repo          ports.LeadRepository
	Geocoder      ports.Geocoder
	DefaultOrigin *domain.GeoPoint
}

type geocodeOutcome struct {
	point domain.GeoPoint
	err   error
}

// PlanVisits loads a salesperson's leads, resolves missing coordinates,
// drops leads that still cannot be located, and orders the rest with OptimizeRoute.
func (p *VisitPlanner) PlanVisits(ctx context.Context, req PlanVisitsRequest) (_ *domain.VisitPlan, err error) {
	defer obs.Time(ctx, "services.PlanVisits")(&err)

	ownerID := strings.TrimSpace(req.OwnerID)
	if ownerID == "" {
		return nil, fmt.Errorf("plan visits: %w: owner id must be non-empty", ErrInvalidRequest)
	}

	origin, err := p.resolveOrigin(req.Origin)
	if err != nil {
		return nil, fmt.Errorf("plan visits: %w", err)
	}

	statuses := req.Statuses
	if len(statuses) == 0 {
		statuses = domain.OpenLeadStatuses
	}

	leads, err := p.Repo.ListLeads(ctx, ports.LeadFilter{
		OwnerID:  ownerID,
		Statuses: statuses,
		IDs:      req.LeadIDs,
	})
	if err != nil {
		return nil, fmt.Errorf("plan visits: list leads for owner %q: %w", ownerID, err)
	}

	skipped, err := p.locateLeads(ctx, leads)
	if err != nil {
		return nil, fmt.Errorf("plan visits: %w", err)
	}

	stops := make([]domain.Stop[*domain.Lead], 0, len(leads))
	for _, lead := range leads {
		point, ok := lead.Point()
		if !ok {
			continue
		}
		stops = append(stops, domain.Stop[*domain.Lead]{ID: lead.ID, Point: point, Payload: lead})
	}

	route := OptimizeRoute(origin, stops)

	plan := &domain.VisitPlan{
		OwnerID:        ownerID,
		Origin:         origin,
		Route:          route,
		Skipped:        skipped,
		ReturnToOrigin: req.ReturnToOrigin,
	}

	// The return leg is reported on its own so route totals stay origin -> last stop.
	points := make([]domain.GeoPoint, 0, len(route.Legs))
	for _, leg := range route.Legs {
		points = append(points, leg.Stop.Point)
	}
	if req.ReturnToOrigin && len(points) > 0 {
		plan.ReturnDistanceKm = geo.HaversineDistance(points[len(points)-1], origin)
		plan.ReturnMinutes = geo.EstimateMinutes(plan.ReturnDistanceKm)
	}
	plan.NavigationURL = NavigationURL(origin, points, req.ReturnToOrigin)

	return plan, nil
}

func (p *VisitPlanner) resolveOrigin(origin *domain.GeoPoint) (domain.GeoPoint, error) {
	if origin == nil {
		origin = p.DefaultOrigin
	}
	if origin == nil {
		return domain.GeoPoint{}, fmt.Errorf("%w: origin is required", ErrInvalidRequest)
	}
	if err := origin.Validate(); err != nil {
		return domain.GeoPoint{}, fmt.Errorf("%w: origin: %w", ErrInvalidRequest, err)
	}
	return *origin, nil
}

// locateLeads geocodes leads that have an address but no usable coordinates
// and returns the leads that remain unroutable.
func (p *VisitPlanner) locateLeads(ctx context.Context, leads []*domain.Lead) ([]domain.SkippedLead, error) {
	pending := make([]*domain.Lead, 0)
	for _, lead := range leads {
		if _, ok := lead.Point(); ok {
			continue
		}
		if p.Geocoder != nil && strings.TrimSpace(lead.Address) != "" {
			pending = append(pending, lead)
		}
	}

	outcomes := make([]geocodeOutcome, len(pending))
	if len(pending) > 0 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(maxConcurrentGeocodes)

		for i, lead := range pending {
			g.Go(func() error {
				point, err := p.Geocoder.Geocode(gctx, lead.Address)
				if err == nil {
					err = point.Validate()
				}
				outcomes[i] = geocodeOutcome{point: point, err: err}
				// A single bad address must not sink the whole plan.
				return gctx.Err()
			})
		}

		if err := g.Wait(); err != nil {
			return nil, fmt.Errorf("geocode leads: %w", err)
		}
	}

	failed := make(map[string]struct{}, len(pending))
	for i, lead := range pending {
		out := outcomes[i]
		if out.err != nil {
			log.Printf("req_id=%s geocode lead failed lead_id=%s err=%v", obs.RequestID(ctx), lead.ID, out.err)
			failed[lead.ID] = struct{}{}
			continue
		}

		lead.SetPoint(out.point)
		if err := p.Repo.UpdateCoordinates(ctx, lead.ID, out.point); err != nil {
			log.Printf("req_id=%s lead coordinates write failed lead_id=%s err=%v", obs.RequestID(ctx), lead.ID, err)
		}
	}

	skipped := make([]domain.SkippedLead, 0)
	for _, lead := range leads {
		if _, ok := lead.Point(); ok {
			continue
		}
		reason := domain.SkipReasonNoCoordinates
		if _, ok := failed[lead.ID]; ok {
			reason = domain.SkipReasonGeocodeFailed
		}
		skipped = append(skipped, domain.SkippedLead{LeadID: lead.ID, Reason: reason})
	}

	return skipped, nil
}
