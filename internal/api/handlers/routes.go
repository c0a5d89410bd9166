package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sales-route-service/internal/api/dto"
	"sales-route-service/internal/domain"
	"sales-route-service/internal/platform/obs"
	"sales-route-service/internal/services"

	"github.com/gorilla/mux"
)

// VisitPlanner is the planning dependency of RouteHandler.
type VisitPlanner interface {
	PlanVisits(ctx context.Context, req services.PlanVisitsRequest) (*domain.VisitPlan, error)
}

type RouteHandler struct {
	Planner VisitPlanner
}

// Optimize orders caller-supplied stops without touching storage.
func (h *RouteHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	var req dto.OptimizeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	stops := make([]domain.Stop[dto.StopRequest], 0, len(req.Stops))
	for _, s := range req.Stops {
		stops = append(stops, domain.Stop[dto.StopRequest]{
			ID:      s.ID,
			Point:   domain.GeoPoint{Lat: *s.Lat, Lon: *s.Lon},
			Payload: s,
		})
	}

	origin := domain.GeoPoint{Lat: *req.Origin.Lat, Lon: *req.Origin.Lon}
	route := services.OptimizeRoute(origin, stops)

	res := dto.RouteResponse{
		Legs:            make([]dto.LegResponse, 0, len(route.Legs)),
		TotalDistanceKm: roundKm(route.TotalDistanceKm),
		TotalMinutes:    route.TotalMinutes,
	}
	for _, leg := range route.Legs {
		s := leg.Stop.Payload
		res.Legs = append(res.Legs, dto.LegResponse{
			StopID:     leg.Stop.ID,
			Name:       s.Name,
			Phone:      s.Phone,
			Address:    s.Address,
			Lat:        leg.Stop.Point.Lat,
			Lon:        leg.Stop.Point.Lon,
			DistanceKm: roundKm(leg.DistanceKm),
			Minutes:    leg.Minutes,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// PlanVisits orders an owner's stored leads into a visit route.
func (h *RouteHandler) PlanVisits(w http.ResponseWriter, r *http.Request) {
	ownerID := mux.Vars(r)["ownerID"]

	var req dto.VisitPlanRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	svcReq := services.PlanVisitsRequest{
		OwnerID:        ownerID,
		Statuses:       req.Statuses,
		LeadIDs:        req.LeadIDs,
		ReturnToOrigin: req.ReturnToOrigin,
	}
	if req.Origin != nil {
		svcReq.Origin = &domain.GeoPoint{Lat: *req.Origin.Lat, Lon: *req.Origin.Lon}
	}

	plan, err := h.Planner.PlanVisits(r.Context(), svcReq)
	if err != nil {
		if errors.Is(err, services.ErrInvalidRequest) {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("req_id=%s plan visits failed: %v", obs.RequestID(r.Context()), err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, toVisitPlanResponse(plan))
}

func toVisitPlanResponse(plan *domain.VisitPlan) dto.VisitPlanResponse {
	res := dto.VisitPlanResponse{
		OwnerID: plan.OwnerID,
		Origin:  dto.PointResponse{Lat: plan.Origin.Lat, Lon: plan.Origin.Lon},
		Route: dto.RouteResponse{
			Legs:            make([]dto.LegResponse, 0, len(plan.Route.Legs)),
			TotalDistanceKm: roundKm(plan.Route.TotalDistanceKm),
			TotalMinutes:    plan.Route.TotalMinutes,
		},
		Skipped:          make([]dto.SkippedLeadResponse, 0, len(plan.Skipped)),
		ReturnToOrigin:   plan.ReturnToOrigin,
		ReturnDistanceKm: roundKm(plan.ReturnDistanceKm),
		ReturnMinutes:    plan.ReturnMinutes,
		NavigationURL:    plan.NavigationURL,
	}

	for _, leg := range plan.Route.Legs {
		lead := leg.Stop.Payload
		res.Route.Legs = append(res.Route.Legs, dto.LegResponse{
			StopID:     leg.Stop.ID,
			Name:       lead.Name,
			Phone:      lead.Phone,
			Address:    lead.Address,
			Lat:        leg.Stop.Point.Lat,
			Lon:        leg.Stop.Point.Lon,
			DistanceKm: roundKm(leg.DistanceKm),
			Minutes:    leg.Minutes,
		})
	}

	for _, s := range plan.Skipped {
		res.Skipped = append(res.Skipped, dto.SkippedLeadResponse{LeadID: s.LeadID, Reason: s.Reason})
	}

	return res
}
