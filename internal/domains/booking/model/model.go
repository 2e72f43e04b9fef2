package model

import (
	"time"
	"turfbook/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID         = "id"
	FieldTurfID     = "turf_id"
	FieldUserID     = "user_id"
	FieldStartTime  = "start_time"
	FieldEndTime    = "end_time"
	FieldTotalPrice = "total_price"
	FieldStatus     = "status"
	FieldPaymentID  = "payment_id"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

type Booking struct {
	ID         string    `db:"id"`
	TurfID     string    `db:"turf_id"`
	UserID     string    `db:"user_id"`
	StartTime  time.Time `db:"start_time"`
	EndTime    time.Time `db:"end_time"`
	TotalPrice float64   `db:"total_price"`
	Status     Status    `db:"status"`
	PaymentID  *string   `db:"payment_id"`
	model.Metadata
}

// Active reports whether the booking still holds its time range.
func (b Booking) Active() bool {
	return b.Status != StatusCancelled
}
