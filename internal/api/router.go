package api

import (
	"net/http"
	"sales-route-service/internal/api/handlers"
	"sales-route-service/internal/ports"

	"github.com/gorilla/mux"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(repo ports.LeadRepository, planner handlers.VisitPlanner) http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(handlers.NotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(handlers.MethodNotAllowed)

	leadHandler := &handlers.LeadHandler{Repo: repo}
	routeHandler := &handlers.RouteHandler{Planner: planner}

	r.HandleFunc("/health", handlers.Health).Methods(http.MethodGet)
	r.HandleFunc("/leads", leadHandler.List).Methods(http.MethodGet)
	r.HandleFunc("/routes/optimize", routeHandler.Optimize).Methods(http.MethodPost)
	r.HandleFunc("/owners/{ownerID}/visit-plan", routeHandler.PlanVisits).Methods(http.MethodPost)

	return requestIDMiddleware(loggingMiddleware(r))
}
