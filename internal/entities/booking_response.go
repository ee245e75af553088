package entities

import "time"

type BookingResponse struct {
	Code            string    `json:"code"`
	CourtID         int       `json:"court_id"`
	CourtName       string    `json:"court_name,omitempty"`
	Date            string    `json:"date"`
	StartTime       string    `json:"start_time"`
	EndTime         string    `json:"end_time"`
	PlayerName      string    `json:"player_name"`
	PlayerEmail     string    `json:"player_email"`
	PlayerPhone     string    `json:"player_phone"`
	PaymentMethod   string    `json:"payment_method"`
	TotalPriceCents int       `json:"total_price_cents"`
	Status          string    `json:"status"`
	PaymentStatus   string    `json:"payment_status"`
	CheckoutURL     string    `json:"checkout_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
