package db

import "time"

type Court struct {
	ID                    int
	Name                  string
	Surface               string
	HourlyRateCents       int
	CleaningBufferMinutes int
	Timezone              string
	Active                bool
	CreatedAt             time.Time
}

type Booking struct {
	ID              int
	Code            string
	CourtID         int
	Date            time.Time
	StartTime       string // "HH:MM:SS"
	EndTime         string // "HH:MM:SS"
	PlayerName      string
	PlayerEmail     string
	PlayerPhone     string
	PaymentMethod   string
	TotalPriceCents int
	Status          string
	PaymentStatus   string
	StripeSessionID string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
