package slot

import (
	"fmt"
	"time"
)

const (
	// SlotMinutes is the fixed duration of every bookable slot.
	SlotMinutes = 60

	// DateLayout is the wire format for booking dates.
	DateLayout = "2006-01-02"

	// TimeOfDayLayout is the wire format for booking start/end times.
	TimeOfDayLayout = "15:04:05"

	labelLayout = "03:04 PM"
)

// catalog is the fixed service day: ten hour-long slots, always in this order.
var catalog = []string{
	"08:00 AM",
	"09:00 AM",
	"10:00 AM",
	"11:00 AM",
	"12:00 PM",
	"01:00 PM",
	"02:00 PM",
	"03:00 PM",
	"04:00 PM",
	"05:00 PM",
}

// Catalog returns the slot labels for a service day, in booking order.
func Catalog() []string {
	out := make([]string, len(catalog))
	copy(out, catalog)
	return out
}

// IsCatalogLabel reports whether label is one of the fixed catalog entries.
func IsCatalogLabel(label string) bool {
	for _, s := range catalog {
		if s == label {
			return true
		}
	}
	return false
}

// ClockTime converts an "hh:mm AM/PM" label to its 24-hour clock pair.
// "12:00 PM" maps to (12, 0) and "12:00 AM" to (0, 0).
func ClockTime(label string) (hour, minute int, err error) {
	t, err := time.Parse(labelLayout, label)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid slot label %q: %w", label, err)
	}
	return t.Hour(), t.Minute(), nil
}

// Window returns the wall-clock start and end of a slot on the given date,
// interpreted in loc.
func Window(date time.Time, label string, loc *time.Location) (start, end time.Time, err error) {
	h, m, err := ClockTime(label)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start = time.Date(date.Year(), date.Month(), date.Day(), h, m, 0, 0, loc)
	return start, start.Add(SlotMinutes * time.Minute), nil
}
