package dto

// Pointers distinguish a missing coordinate from 0.
type PointRequest struct {
	Lat *float64 `json:"lat" validate:"required,min=-90,max=90"`
	Lon *float64 `json:"lon" validate:"required,min=-180,max=180"`
}

type StopRequest struct {
	ID      string   `json:"id" validate:"required"`
	Lat     *float64 `json:"lat" validate:"required,min=-90,max=90"`
	Lon     *float64 `json:"lon" validate:"required,min=-180,max=180"`
	Name    string   `json:"name"`
	Phone   string   `json:"phone"`
	Address string   `json:"address"`
}

type OptimizeRequest struct {
	Origin PointRequest  `json:"origin" validate:"required"`
	Stops  []StopRequest `json:"stops" validate:"max=500,unique=ID,dive"`
}

type VisitPlanRequest struct {
	Origin         *PointRequest `json:"origin" validate:"omitempty"`
	Statuses       []string      `json:"statuses" validate:"dive,oneof=new contacted qualified proposal won lost"`
	LeadIDs        []string      `json:"lead_ids" validate:"max=500,dive,required"`
	ReturnToOrigin bool          `json:"return_to_origin"`
}

type PointResponse struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type LegResponse struct {
	StopID     string  `json:"stop_id"`
	Name       string  `json:"name,omitempty"`
	Phone      string  `json:"phone,omitempty"`
	Address    string  `json:"address,omitempty"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	DistanceKm float64 `json:"distance_km"`
	Minutes    int     `json:"minutes"`
}

type RouteResponse struct {
	Legs            []LegResponse `json:"legs"`
	TotalDistanceKm float64       `json:"total_distance_km"`
	TotalMinutes    int           `json:"total_minutes"`
}

type SkippedLeadResponse struct {
	LeadID string `json:"lead_id"`
	Reason string `json:"reason"`
}

type VisitPlanResponse struct {
	OwnerID          string                `json:"owner_id"`
	Origin           PointResponse         `json:"origin"`
	Route            RouteResponse         `json:"route"`
	Skipped          []SkippedLeadResponse `json:"skipped"`
	ReturnToOrigin   bool                  `json:"return_to_origin"`
	ReturnDistanceKm float64               `json:"return_distance_km,omitempty"`
	ReturnMinutes    int                   `json:"return_minutes,omitempty"`
	NavigationURL    string                `json:"navigation_url,omitempty"`
}
