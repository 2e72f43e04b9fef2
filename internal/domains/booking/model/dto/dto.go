package dto

import (
	"time"
	"turfbook/internal/domains/booking/availability"
	"turfbook/internal/domains/booking/model"
	"turfbook/shared"
	"turfbook/shared/constant"
	gDto "turfbook/shared/dto"
	gModel "turfbook/shared/model"
	"turfbook/shared/timezone"

	"github.com/google/uuid"
)

const (
	EventBookingCreated   = "booking.created"
	EventBookingConfirmed = "booking.confirmed"
	EventBookingCancelled = "booking.cancelled"
	EventBookingExpired   = "booking.expired"
)

type CreateBookingRequest struct {
	TurfID    string `json:"turf_id"    validate:"required,uuid"`
	StartTime string `json:"start_time" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	EndTime   string `json:"end_time"   validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
}

// Interval parses the requested range and converts both ends to the application timezone.
func (c *CreateBookingRequest) Interval() (start, end time.Time, err error) {
	start, err = time.Parse(constant.DateTimeFormat, c.StartTime)
	if err != nil {
		return start, end, err //nolint:wrapcheck
	}

	end, err = time.Parse(constant.DateTimeFormat, c.EndTime)
	if err != nil {
		return start, end, err //nolint:wrapcheck
	}

	return timezone.ToAppTime(start), timezone.ToAppTime(end), nil
}

func (c *CreateBookingRequest) ToModel(user string, start, end time.Time, totalPrice float64) model.Booking {
	return model.Booking{
		ID:         uuid.NewString(),
		TurfID:     c.TurfID,
		UserID:     user,
		StartTime:  start,
		EndTime:    end,
		TotalPrice: totalPrice,
		Status:     model.StatusPending,
		Metadata:   gModel.NewMetadata(user, timezone.Now()),
	}
}

type ConfirmBookingRequest struct {
	PaymentID string `json:"payment_id" validate:"required,max=255"`
}

type BookingResponse struct {
	ID         string  `json:"id"`
	TurfID     string  `json:"turf_id"`
	UserID     string  `json:"user_id"`
	StartTime  string  `json:"start_time"`
	EndTime    string  `json:"end_time"`
	TotalPrice float64 `json:"total_price"`
	Status     string  `json:"status"`
	PaymentID  *string `json:"payment_id,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.TurfID = model.TurfID
	r.UserID = model.UserID
	r.StartTime = timezone.Format(model.StartTime, constant.DateTimeFormat)
	r.EndTime = timezone.Format(model.EndTime, constant.DateTimeFormat)
	r.TotalPrice = model.TotalPrice
	r.Status = string(model.Status)
	r.PaymentID = model.PaymentID
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

type SlotResponse struct {
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	IsAvailable bool   `json:"is_available"`
}

type AvailableSlotsResponse struct {
	TurfID    string         `json:"turf_id"`
	Date      string         `json:"date"`
	SlotPrice float64        `json:"slot_price"`
	Slots     []SlotResponse `json:"slots"`
}

func (r *AvailableSlotsResponse) FromSlots(turfID string, date time.Time, pricePerHour float64, slots []availability.TimeSlot) {
	r.TurfID = turfID
	r.Date = date.Format(constant.DateFormat)
	r.SlotPrice = availability.SlotPrice(pricePerHour)

	r.Slots = make([]SlotResponse, len(slots))
	for i, slot := range slots {
		r.Slots[i] = SlotResponse{
			StartTime:   slot.Start.Format(constant.DateTimeFormat),
			EndTime:     slot.End.Format(constant.DateTimeFormat),
			IsAvailable: slot.IsAvailable,
		}
	}
}

// BookingEvent is the payload published on the booking events topic.
type BookingEvent struct {
	Type       string  `json:"type"`
	BookingID  string  `json:"booking_id"`
	TurfID     string  `json:"turf_id"`
	UserID     string  `json:"user_id"`
	StartTime  string  `json:"start_time"`
	EndTime    string  `json:"end_time"`
	TotalPrice float64 `json:"total_price"`
	Status     string  `json:"status"`
	PaymentID  *string `json:"payment_id,omitempty"`
	OccurredAt string  `json:"occurred_at"`
}

func NewBookingEvent(eventType string, booking model.Booking) BookingEvent {
	return BookingEvent{
		Type:       eventType,
		BookingID:  booking.ID,
		TurfID:     booking.TurfID,
		UserID:     booking.UserID,
		StartTime:  booking.StartTime.Format(constant.DateTimeFormat),
		EndTime:    booking.EndTime.Format(constant.DateTimeFormat),
		TotalPrice: booking.TotalPrice,
		Status:     string(booking.Status),
		PaymentID:  booking.PaymentID,
		OccurredAt: timezone.Now().Format(constant.DateTimeFormat),
	}
}

// UpdateStatusRequest carries the columns touched by a status transition.
type UpdateStatusRequest struct {
	Status    model.Status `db:"status"`
	PaymentID *string      `db:"payment_id"`
}
