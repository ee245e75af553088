package api

// Availability
type AvailabilityRequest struct {
	CourtID int    `json:"court_id"`
	Date    string `json:"date"`
}

// Admin court management
type UpdateCourtRequest struct {
	HourlyRateCents       int  `json:"hourly_rate_cents"`
	CleaningBufferMinutes int  `json:"cleaning_buffer_minutes"`
	Active                bool `json:"active"`
}

// Admin auth
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}
