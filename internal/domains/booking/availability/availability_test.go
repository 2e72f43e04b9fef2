package availability_test

import (
	"testing"
	"time"
	"turfbook/internal/domains/booking/availability"
	"turfbook/internal/domains/booking/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return time.Date(2024, 6, 1, hour, minute, 0, 0, time.UTC)
}

func booking(turfID string, start, end time.Time, status model.Status) model.Booking {
	return model.Booking{ID: "b-" + start.Format("1504"), TurfID: turfID, StartTime: start, EndTime: end, Status: status}
}

func unavailable(slots []availability.TimeSlot) []string {
	res := []string{}

	for _, slot := range slots {
		if !slot.IsAvailable {
			res = append(res, slot.Start.Format("15:04"))
		}
	}

	return res
}

func TestComputeAvailableSlotsShape(t *testing.T) {
	slots := availability.ComputeAvailableSlots("T", day.Add(15*time.Hour), nil)

	require.Len(t, slots, availability.SlotsPerDay)
	assert.Equal(t, 28, availability.SlotsPerDay)
	assert.Equal(t, at(8, 0), slots[0].Start)
	assert.Equal(t, at(22, 0), slots[len(slots)-1].End)

	for i, slot := range slots {
		assert.True(t, slot.IsAvailable)
		assert.Equal(t, availability.SlotDuration, slot.End.Sub(slot.Start))

		if i > 0 {
			assert.Equal(t, slots[i-1].End, slot.Start)
		}
	}
}

func TestComputeAvailableSlots(t *testing.T) {
	tests := []struct {
		name     string
		turfID   string
		bookings []model.Booking
		want     []string
	}{
		{
			name:     "confirmed hour blocks two slots",
			turfID:   "T",
			bookings: []model.Booking{booking("T", at(9, 0), at(10, 0), model.StatusConfirmed)},
			want:     []string{"09:00", "09:30"},
		},
		{
			name:     "cancelled booking is ignored",
			turfID:   "T",
			bookings: []model.Booking{booking("T", at(9, 0), at(10, 0), model.StatusCancelled)},
			want:     []string{},
		},
		{
			name:     "pending booking blocks",
			turfID:   "T",
			bookings: []model.Booking{booking("T", at(20, 0), at(22, 0), model.StatusPending)},
			want:     []string{"20:00", "20:30", "21:00", "21:30"},
		},
		{
			name:     "non aligned booking",
			turfID:   "T",
			bookings: []model.Booking{booking("T", at(9, 15), at(9, 45), model.StatusConfirmed)},
			want:     []string{"09:00", "09:30"},
		},
		{
			name:     "adjacent booking does not overlap",
			turfID:   "T",
			bookings: []model.Booking{booking("T", at(10, 0), at(10, 30), model.StatusCompleted)},
			want:     []string{"10:00"},
		},
		{
			name:     "other turf",
			turfID:   "T",
			bookings: []model.Booking{booking("U", at(9, 0), at(10, 0), model.StatusConfirmed)},
			want:     []string{},
		},
		{
			name:   "other date",
			turfID: "T",
			bookings: []model.Booking{
				booking("T", at(9, 0).AddDate(0, 0, 1), at(10, 0).AddDate(0, 0, 1), model.StatusConfirmed),
			},
			want: []string{},
		},
		{
			name:     "unknown turf",
			turfID:   "missing",
			bookings: []model.Booking{booking("T", at(9, 0), at(10, 0), model.StatusConfirmed)},
			want:     []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots := availability.ComputeAvailableSlots(tt.turfID, day, tt.bookings)

			assert.Len(t, slots, availability.SlotsPerDay)
			assert.Equal(t, tt.want, unavailable(slots))
		})
	}
}

func TestComputeAvailableSlotsIsIdempotent(t *testing.T) {
	bookings := []model.Booking{
		booking("T", at(9, 0), at(10, 0), model.StatusConfirmed),
		booking("T", at(18, 10), at(19, 0), model.StatusPending),
	}
	snapshot := append([]model.Booking(nil), bookings...)

	first := availability.ComputeAvailableSlots("T", day, bookings)
	second := availability.ComputeAvailableSlots("T", day, bookings)

	assert.Equal(t, first, second)
	assert.Equal(t, snapshot, bookings)
}

func TestComputeAvailableSlotsUsesDateLocation(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*60*60)
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, loc)

	// 02:00 UTC is 09:00 in UTC+7.
	b := booking("T", time.Date(2024, 6, 1, 2, 0, 0, 0, time.UTC), time.Date(2024, 6, 1, 3, 0, 0, 0, time.UTC), model.StatusConfirmed)

	slots := availability.ComputeAvailableSlots("T", date, []model.Booking{b})

	assert.Equal(t, []string{"09:00", "09:30"}, unavailable(slots))
	assert.Equal(t, loc, slots[0].Start.Location())
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{name: "start inside", start: at(9, 0), end: at(10, 0), want: true},
		{name: "end inside", start: at(8, 30), end: at(9, 30), want: true},
		{name: "contains", start: at(8, 0), end: at(11, 0), want: true},
		{name: "ends at booking start", start: at(8, 30), end: at(9, 0), want: false},
		{name: "starts at booking end", start: at(10, 30), end: at(11, 0), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, availability.Overlaps(tt.start, tt.end, at(9, 0), at(10, 30)))
		})
	}
}

func TestPricing(t *testing.T) {
	assert.InDelta(t, 600.0, availability.SlotPrice(1200), 0.001)
	assert.InDelta(t, 1800.0, availability.BookingPrice(1200, at(9, 0), at(10, 30)), 0.001)
}

func TestWithinOperatingHours(t *testing.T) {
	assert.True(t, availability.WithinOperatingHours(at(8, 0), at(22, 0)))
	assert.True(t, availability.WithinOperatingHours(at(9, 15), at(9, 45)))
	assert.False(t, availability.WithinOperatingHours(at(7, 30), at(9, 0)))
	assert.False(t, availability.WithinOperatingHours(at(21, 30), at(22, 30)))
	assert.False(t, availability.WithinOperatingHours(at(10, 0), at(9, 0)))
	assert.False(t, availability.WithinOperatingHours(at(21, 0), at(9, 0).AddDate(0, 0, 1)))
}
