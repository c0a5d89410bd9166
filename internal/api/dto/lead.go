package dto

type LeadResponse struct {
	LeadID  string   `json:"lead_id"`
	OwnerID string   `json:"owner_id"`
	Name    string   `json:"name"`
	Phone   string   `json:"phone"`
	Address string   `json:"address"`
	Status  string   `json:"status"`
	Lat     *float64 `json:"lat"`
	Lon     *float64 `json:"lon"`
}

type ListLeadsResponse struct {
	Leads []LeadResponse `json:"leads"`
}
