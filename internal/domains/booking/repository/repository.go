package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"time"
	"turfbook/infras/otel"
	"turfbook/infras/postgres"
	"turfbook/internal/domains/booking/model"
	"turfbook/shared/constant"
	gDto "turfbook/shared/dto"
	gRepo "turfbook/shared/repository"
)

const (
	ArgCurrentStatus = "current_status"
	ArgDayStart      = "day_start"
	ArgDayEnd        = "day_end"
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

func eq(field string, value any) gDto.Filter {
	return gDto.Filter{Field: field, Operator: gDto.FilterOperatorEq, Value: value, Table: model.TableName}
}

// OfDay matches the turf's non-cancelled bookings starting within [day, day+1).
func OfDay(turfID string, day time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			eq(model.FieldTurfID, turfID),
			gDto.Filter{ArgName: ArgDayStart, Field: model.FieldStartTime, Operator: gDto.FilterOperatorGreaterEq, Value: day, Table: model.TableName},
			gDto.Filter{ArgName: ArgDayEnd, Field: model.FieldStartTime, Operator: gDto.FilterOperatorLess, Value: day.AddDate(0, 0, 1), Table: model.TableName},
			gDto.Filter{Field: model.FieldStatus, Operator: gDto.FilterOperatorNotEq, Value: model.StatusCancelled, Table: model.TableName},
		},
	}
}

// OfUser matches the user's bookings, narrowed to one status when status is set.
func OfUser(userID, status string) gDto.FilterGroup {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{eq(model.FieldUserID, userID)},
	}

	if status != constant.Empty {
		filter.Filters = append(filter.Filters, eq(model.FieldStatus, status))
	}

	return filter
}

func OfTurf(turfID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{eq(model.FieldTurfID, turfID)},
	}
}

// PendingByID guards a status transition: the update only hits a booking that is still pending.
func PendingByID(id string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			eq(model.FieldID, id),
			gDto.Filter{ArgName: ArgCurrentStatus, Field: model.FieldStatus, Operator: gDto.FilterOperatorEq, Value: model.StatusPending, Table: model.TableName},
		},
	}
}

// StalePending matches pending bookings created before cutoff.
func StalePending(cutoff time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{ArgName: ArgCurrentStatus, Field: model.FieldStatus, Operator: gDto.FilterOperatorEq, Value: model.StatusPending, Table: model.TableName},
			gDto.Filter{Field: constant.FieldCreatedAt, Operator: gDto.FilterOperatorLess, Value: cutoff, Table: model.TableName},
		},
	}
}
