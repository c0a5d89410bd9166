package handlers

import (
	"log"
	"net/http"
	"sales-route-service/internal/api/dto"
	"sales-route-service/internal/platform/obs"
	"sales-route-service/internal/ports"
	"strings"
)

// LeadHandler exposes read-only lead retrieval endpoints.
type LeadHandler struct {
	Repo ports.LeadRepository
}

// List returns leads, optionally filtered by owner_id and a comma-separated status list.
func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := ports.LeadFilter{OwnerID: strings.TrimSpace(q.Get("owner_id"))}
	if raw := strings.TrimSpace(q.Get("status")); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				filter.Statuses = append(filter.Statuses, s)
			}
		}
	}

	leads, err := h.Repo.ListLeads(r.Context(), filter)
	if err != nil {
		log.Printf("req_id=%s list leads failed: %v", obs.RequestID(r.Context()), err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListLeadsResponse{
		Leads: make([]dto.LeadResponse, 0, len(leads)),
	}
	for _, l := range leads {
		res.Leads = append(res.Leads, dto.LeadResponse{
			LeadID:  l.ID,
			OwnerID: l.OwnerID,
			Name:    l.Name,
			Phone:   l.Phone,
			Address: l.Address,
			Status:  l.Status,
			Lat:     l.Lat,
			Lon:     l.Lon,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
