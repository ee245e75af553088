package entities

type CourtResponse struct {
	ID                    int    `json:"id"`
	Name                  string `json:"name"`
	Surface               string `json:"surface"`
	HourlyRateCents       int    `json:"hourly_rate_cents"`
	CleaningBufferMinutes int    `json:"cleaning_buffer_minutes"`
	Timezone              string `json:"timezone"`
}
