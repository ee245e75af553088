package entities

type BookingRequest struct {
	CourtID       int    `json:"court_id"`
	Date          string `json:"date"` // "2006-01-02"
	Slot          string `json:"slot"` // catalog label, e.g. "09:00 AM"
	PlayerName    string `json:"player_name"`
	PlayerEmail   string `json:"player_email"`
	PlayerPhone   string `json:"player_phone"`
	PaymentMethod string `json:"payment_method"` // "cash" or "online"
}
