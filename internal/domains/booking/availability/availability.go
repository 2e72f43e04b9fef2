// Package availability computes the bookable half-hour slots of a turf for one day.
package availability

import (
	"time"
	"turfbook/internal/domains/booking/model"
)

const (
	OpeningHour  = 8
	ClosingHour  = 22
	SlotDuration = 30 * time.Minute
	SlotsPerDay  = (ClosingHour - OpeningHour) * int(time.Hour/SlotDuration)
)

type TimeSlot struct {
	Start       time.Time
	End         time.Time
	IsAvailable bool
}

// ComputeAvailableSlots returns every slot between opening and closing on date's
// calendar day, in order, each marked unavailable when it overlaps a non-cancelled
// booking of turfID that starts on that day. Bookings are only read.
func ComputeAvailableSlots(turfID string, date time.Time, bookings []model.Booking) []TimeSlot {
	loc := date.Location()
	year, month, day := date.Date()

	relevant := make([]model.Booking, 0, len(bookings))

	for _, booking := range bookings {
		if booking.TurfID != turfID || !booking.Active() {
			continue
		}

		by, bm, bd := booking.StartTime.In(loc).Date()
		if by != year || bm != month || bd != day {
			continue
		}

		relevant = append(relevant, booking)
	}

	opening := time.Date(year, month, day, OpeningHour, 0, 0, 0, loc)
	slots := make([]TimeSlot, SlotsPerDay)

	for i := range slots {
		start := opening.Add(time.Duration(i) * SlotDuration)
		end := start.Add(SlotDuration)

		available := true

		for _, booking := range relevant {
			if Overlaps(start, end, booking.StartTime, booking.EndTime) {
				available = false

				break
			}
		}

		slots[i] = TimeSlot{Start: start, End: end, IsAvailable: available}
	}

	return slots
}

// Overlaps applies the slot rule: the slot start lies in [bStart, bEnd), the slot
// end lies in (bStart, bEnd], or the slot contains the booking.
func Overlaps(slotStart, slotEnd, bStart, bEnd time.Time) bool {
	startInside := !slotStart.Before(bStart) && slotStart.Before(bEnd)
	endInside := slotEnd.After(bStart) && !slotEnd.After(bEnd)
	contains := !slotStart.After(bStart) && !slotEnd.Before(bEnd)

	return startInside || endInside || contains
}

// SlotPrice is the price of one slot given an hourly rate.
func SlotPrice(pricePerHour float64) float64 {
	return pricePerHour / 2
}

// BookingPrice charges pricePerHour pro rata for the booked duration.
func BookingPrice(pricePerHour float64, start, end time.Time) float64 {
	return pricePerHour * end.Sub(start).Hours()
}

// WithinOperatingHours reports whether [start, end) fits inside a single day's
// opening hours, evaluated in start's location.
func WithinOperatingHours(start, end time.Time) bool {
	if !start.Before(end) {
		return false
	}

	year, month, day := start.Date()
	opening := time.Date(year, month, day, OpeningHour, 0, 0, 0, start.Location())
	closing := time.Date(year, month, day, ClosingHour, 0, 0, 0, start.Location())

	return !start.Before(opening) && !end.After(closing)
}
