package entities

type AvailabilityResponse struct {
	CourtID  int      `json:"court_id"`
	Date     string   `json:"date"`
	Free     []string `json:"free"`
	Occupied []string `json:"occupied"`
}
