// Package availability decides which catalog slots are still bookable for a
// court on a given day. It is a pure function of its inputs: the caller is
// responsible for fetching that court's non-cancelled bookings for the date.
package availability

import (
	"fmt"
	"time"

	"courtside/internal/slot"
)

// Booking is the slice of a stored booking the resolver needs: its start and
// end times of day in "HH:MM:SS" form.
type Booking struct {
	StartTime string
	EndTime   string
}

// Result partitions the slot catalog for one (court, date) pair. Free and
// Occupied are disjoint, preserve catalog order, and together cover the whole
// catalog. A slot blocked only by a cleaning buffer lands in Occupied; the
// two causes are not distinguished.
type Result struct {
	Free     []string
	Occupied []string
}

// Resolve runs the overlap check for every catalog slot against every booking.
// A slot is occupied when, for some booking,
//
//	slotStart < bookingEnd+buffer && slotEnd > bookingStart
//
// with half-open intervals throughout. O(slots x bookings); both are small
// fixed-size collections, so nothing smarter is warranted.
//
// All wall-clock arithmetic happens in loc. Malformed booking times are a
// data-integrity problem upstream; they surface as errors here rather than
// being skipped.
func Resolve(date time.Time, loc *time.Location, cleaningBufferMinutes int, bookings []Booking) (Result, error) {
	if cleaningBufferMinutes < 0 {
		return Result{}, fmt.Errorf("negative cleaning buffer: %d", cleaningBufferMinutes)
	}

	buffer := time.Duration(cleaningBufferMinutes) * time.Minute

	type interval struct {
		start time.Time
		end   time.Time
	}
	intervals := make([]interval, 0, len(bookings))
	for _, b := range bookings {
		start, err := atTimeOfDay(date, b.StartTime, loc)
		if err != nil {
			return Result{}, err
		}
		end, err := atTimeOfDay(date, b.EndTime, loc)
		if err != nil {
			return Result{}, err
		}
		intervals = append(intervals, interval{start: start, end: end.Add(buffer)})
	}

	var res Result
	for _, label := range slot.Catalog() {
		slotStart, slotEnd, err := slot.Window(date, label, loc)
		if err != nil {
			return Result{}, err
		}

		occupied := false
		for _, iv := range intervals {
			if slotStart.Before(iv.end) && slotEnd.After(iv.start) {
				occupied = true
				break
			}
		}

		if occupied {
			res.Occupied = append(res.Occupied, label)
		} else {
			res.Free = append(res.Free, label)
		}
	}
	return res, nil
}

func atTimeOfDay(date time.Time, timeOfDay string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(slot.TimeOfDayLayout, timeOfDay)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid booking time %q: %w", timeOfDay, err)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc), nil
}
