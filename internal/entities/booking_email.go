package entities

type BookingEmailData struct {
	PlayerName         string
	BookingCode        string
	CourtName          string
	DateFormatted      string
	StartTimeFormatted string
	EndTimeFormatted   string
	Status             string
	CurrentYear        int
}
