package service_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"
	"turfbook/config"
	"turfbook/infras/kafka"
	kafkaMocks "turfbook/infras/kafka/mocks"
	"turfbook/infras/otel/mocks"
	bookingMocks "turfbook/internal/domains/booking/mocks"
	"turfbook/internal/domains/booking/model"
	"turfbook/internal/domains/booking/model/dto"
	"turfbook/internal/domains/booking/service"
	turfMocks "turfbook/internal/domains/turf/mocks"
	turfModel "turfbook/internal/domains/turf/model"
	cacheMocks "turfbook/shared/cache/mocks"
	"turfbook/shared/constant"
	gDto "turfbook/shared/dto"
	"turfbook/shared/failure"
	gRepo "turfbook/shared/repository"
	"turfbook/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	turfID = "5f1c8c1e-0c6b-4a53-9f3e-1f1c2b3d4e5f"
	userID = "user-1"
)

type fixture struct {
	repo  *bookingMocks.MockBooking
	turfs *turfMocks.MockTurf
	cache *cacheMocks.MockRedisCache
	kafka *kafkaMocks.MockClient
	svc   service.Booking
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:  bookingMocks.NewMockBooking(ctrl),
		turfs: turfMocks.NewMockTurf(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
		kafka: kafkaMocks.NewMockClient(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Kafka.Topics.BookingEvents = "booking.events"
	cfg.Booking.PendingExpiryMinutes = 30

	f.svc = service.New(f.repo, f.turfs, cfg, f.cache, f.kafka, mocks.NewOtel())

	return f
}

// expectSideEffects allows the asynchronous cache invalidation and event publishing.
func (f fixture) expectSideEffects() {
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.kafka.EXPECT().SendMessages(gomock.Any(), "booking.events", gomock.Any()).Return(nil).AnyTimes()
}

func userContext(id, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, id)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

// futureAt returns hour:minute two days from now in the application timezone.
func futureAt(hour, minute int) time.Time {
	day := timezone.StartOfDay(timezone.Now().AddDate(0, 0, 2))

	return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func createRequest(start, end time.Time) dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		TurfID:    turfID,
		StartTime: start.Format(time.RFC3339),
		EndTime:   end.Format(time.RFC3339),
	}
}

func TestBookingService_Create(t *testing.T) {
	turf := turfModel.Turf{ID: turfID, PricePerHour: 1200}

	tests := []struct {
		name      string
		req       dto.CreateBookingRequest
		setupMock func(f fixture)
		wantCode  int
		wantPrice float64
	}{
		{
			name: "successful creation",
			req:  createRequest(futureAt(9, 0), futureAt(10, 30)),
			setupMock: func(f fixture) {
				f.turfs.EXPECT().Get(gomock.Any(), gomock.Any()).Return(turf, nil)
				f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Booking{
					{ID: "b-0", TurfID: turfID, StartTime: futureAt(10, 30), EndTime: futureAt(11, 0), Status: model.StatusConfirmed},
				}, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, b model.Booking) error {
					assert.Equal(t, userID, b.UserID)
					assert.Equal(t, model.StatusPending, b.Status)

					return nil
				})
				f.expectSideEffects()
			},
			wantPrice: 1800,
		},
		{
			name:      "end before start",
			req:       createRequest(futureAt(10, 0), futureAt(9, 0)),
			setupMock: func(fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "start in the past",
			req:       createRequest(timezone.Now().AddDate(0, 0, -1), timezone.Now().AddDate(0, 0, -1).Add(time.Hour)),
			setupMock: func(fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "outside operating hours",
			req:       createRequest(futureAt(21, 30), futureAt(22, 30)),
			setupMock: func(fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "turf not found",
			req:  createRequest(futureAt(9, 0), futureAt(10, 0)),
			setupMock: func(f fixture) {
				f.turfs.EXPECT().Get(gomock.Any(), gomock.Any()).Return(turfModel.Turf{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "overlapping booking",
			req:  createRequest(futureAt(9, 0), futureAt(10, 0)),
			setupMock: func(f fixture) {
				f.turfs.EXPECT().Get(gomock.Any(), gomock.Any()).Return(turf, nil)
				f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Booking{
					{ID: "b-0", TurfID: turfID, StartTime: futureAt(9, 15), EndTime: futureAt(9, 45), Status: model.StatusPending},
				}, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "insert error",
			req:  createRequest(futureAt(9, 0), futureAt(10, 0)),
			setupMock: func(f fixture) {
				f.turfs.EXPECT().Get(gomock.Any(), gomock.Any()).Return(turf, nil)
				f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Create(userContext(userID, constant.RoleUser), tt.req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, res.ID)
			assert.Equal(t, "pending", res.Status)
			assert.InDelta(t, tt.wantPrice, res.TotalPrice, 0.001)
		})
	}
}

func TestBookingService_Get(t *testing.T) {
	booking := model.Booking{ID: "b-1", TurfID: turfID, UserID: userID, Status: model.StatusPending}

	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "owner reads from database",
			ctx:  userContext(userID, constant.RoleUser),
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
				f.expectSideEffects()
			},
		},
		{
			name: "cache hit",
			ctx:  userContext(userID, constant.RoleUser),
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, _ string, value any) error {
					res, ok := value.(*dto.BookingResponse)
					require.True(t, ok)
					res.ID = "b-1"
					res.UserID = userID

					return nil
				})
			},
		},
		{
			name: "host may read",
			ctx:  userContext("host-1", constant.RoleHost),
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
				f.expectSideEffects()
			},
		},
		{
			name: "other user is forbidden",
			ctx:  userContext("user-2", constant.RoleUser),
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name: "not found",
			ctx:  userContext(userID, constant.RoleUser),
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Get(tt.ctx, "b-1")

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "b-1", res.ID)
		})
	}
}

func TestBookingService_GetByUser(t *testing.T) {
	f := newFixture(t)
	params := gDto.QueryParams{Page: 1, Limit: 10}

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
		where, args := filter.GetWhereClause()
		assert.Equal(t, "(bookings.user_id = :user_id AND bookings.status = :status)", where)
		assert.Equal(t, userID, args["user_id"])
		assert.Equal(t, "confirmed", args["status"])

		return 1, nil
	})
	f.repo.EXPECT().GetAll(gomock.Any(), params, gomock.Any()).Return([]model.Booking{{ID: "b-1", UserID: userID, Status: model.StatusConfirmed}}, nil)
	f.expectSideEffects()

	res, err := f.svc.GetByUser(userContext(userID, constant.RoleUser), params, "confirmed")

	time.Sleep(10 * time.Millisecond)

	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalData)
	assert.Equal(t, 1, res.TotalPage)
	require.Len(t, res.Bookings, 1)
}

func TestBookingService_GetByTurf(t *testing.T) {
	t.Run("turf not found", func(t *testing.T) {
		f := newFixture(t)
		f.turfs.EXPECT().Get(gomock.Any(), gomock.Any()).Return(turfModel.Turf{}, nil)

		_, err := f.svc.GetByTurf(userContext("host-1", constant.RoleHost), "missing", gDto.QueryParams{})

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("lists bookings", func(t *testing.T) {
		f := newFixture(t)
		f.turfs.EXPECT().Get(gomock.Any(), gomock.Any()).Return(turfModel.Turf{ID: turfID}, nil)
		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Booking{{ID: "b-1"}, {ID: "b-2"}}, nil)
		f.expectSideEffects()

		res, err := f.svc.GetByTurf(userContext("host-1", constant.RoleHost), turfID, gDto.QueryParams{Page: 1, Limit: 1})

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, 2, res.TotalPage)
		assert.Len(t, res.Bookings, 2)
	})
}

func TestBookingService_Confirm(t *testing.T) {
	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "pending booking is confirmed",
			ctx:  userContext(userID, constant.RoleUser),
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{ID: "b-1", UserID: userID, Status: model.StatusPending}, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, fields map[string]any, filter gDto.FilterGroup) error {
					assert.Equal(t, model.StatusConfirmed, fields[model.FieldStatus])

					paymentID, ok := fields[model.FieldPaymentID].(*string)
					require.True(t, ok)
					assert.Equal(t, "pay-1", *paymentID)

					_, args := filter.GetWhereClause()
					assert.Equal(t, model.StatusPending, args["current_status"])

					return nil
				})
				f.expectSideEffects()
			},
		},
		{
			name: "admin confirms someone else's booking",
			ctx:  userContext("admin-1", constant.RoleAdmin),
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{ID: "b-1", UserID: userID, Status: model.StatusPending}, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.expectSideEffects()
			},
		},
		{
			name: "other user cannot confirm",
			ctx:  userContext("user-2", constant.RoleUser),
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{ID: "b-1", UserID: userID, Status: model.StatusPending}, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name: "host cannot confirm a customer's booking",
			ctx:  userContext("host-1", constant.RoleHost),
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{ID: "b-1", UserID: userID, Status: model.StatusPending}, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name: "missing booking",
			ctx:  userContext(userID, constant.RoleUser),
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "already cancelled",
			ctx:  userContext(userID, constant.RoleUser),
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{ID: "b-1", UserID: userID, Status: model.StatusCancelled}, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "already confirmed",
			ctx:  userContext(userID, constant.RoleUser),
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{ID: "b-1", UserID: userID, Status: model.StatusConfirmed}, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "status changed before the update",
			ctx:  userContext(userID, constant.RoleUser),
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{ID: "b-1", UserID: userID, Status: model.StatusPending}, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(gRepo.ErrNoRowsAffected)
			},
			wantCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.Confirm(tt.ctx, "b-1", dto.ConfirmBookingRequest{PaymentID: "pay-1"})

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestBookingService_Cancel(t *testing.T) {
	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "owner cancels pending booking",
			ctx:  userContext(userID, constant.RoleUser),
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{ID: "b-1", UserID: userID, Status: model.StatusPending}, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
					assert.Equal(t, model.StatusCancelled, fields[model.FieldStatus])
					assert.NotContains(t, fields, model.FieldPaymentID)

					return nil
				})
				f.expectSideEffects()
			},
		},
		{
			name: "admin cancels someone else's booking",
			ctx:  userContext("admin-1", constant.RoleAdmin),
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{ID: "b-1", UserID: userID, Status: model.StatusPending}, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.expectSideEffects()
			},
		},
		{
			name: "other user is forbidden",
			ctx:  userContext("user-2", constant.RoleUser),
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{ID: "b-1", UserID: userID, Status: model.StatusPending}, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name: "confirmed booking cannot be cancelled",
			ctx:  userContext(userID, constant.RoleUser),
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{ID: "b-1", UserID: userID, Status: model.StatusConfirmed}, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "missing booking",
			ctx:  userContext(userID, constant.RoleUser),
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.Cancel(tt.ctx, "b-1")

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestBookingService_AvailableSlots(t *testing.T) {
	t.Run("marks booked slots", func(t *testing.T) {
		f := newFixture(t)
		day := time.Date(2024, 6, 1, 0, 0, 0, 0, timezone.GetLocation())

		f.turfs.EXPECT().Get(gomock.Any(), gomock.Any()).Return(turfModel.Turf{ID: turfID, PricePerHour: 1000}, nil)
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
			_, args := filter.GetWhereClause()
			assert.Equal(t, turfID, args["turf_id"])
			assert.Equal(t, day, args["day_start"])
			assert.Equal(t, day.AddDate(0, 0, 1), args["day_end"])

			return []model.Booking{
				{TurfID: turfID, StartTime: day.Add(9 * time.Hour), EndTime: day.Add(10 * time.Hour), Status: model.StatusConfirmed},
			}, nil
		})

		res, err := f.svc.AvailableSlots(context.Background(), turfID, "2024-06-01")
		require.NoError(t, err)

		assert.Equal(t, "2024-06-01", res.Date)
		assert.InDelta(t, 500.0, res.SlotPrice, 0.001)
		require.Len(t, res.Slots, 28)

		unavailable := 0
		for _, slot := range res.Slots {
			if !slot.IsAvailable {
				unavailable++
			}
		}

		assert.Equal(t, 2, unavailable)
		assert.False(t, res.Slots[2].IsAvailable)
		assert.False(t, res.Slots[3].IsAvailable)
	})

	t.Run("invalid date", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.AvailableSlots(context.Background(), turfID, "June 1st")

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("unknown turf", func(t *testing.T) {
		f := newFixture(t)
		f.turfs.EXPECT().Get(gomock.Any(), gomock.Any()).Return(turfModel.Turf{}, nil)

		_, err := f.svc.AvailableSlots(context.Background(), "missing", "2024-06-01")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestBookingService_ExpirePending(t *testing.T) {
	t.Run("nothing to expire", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

		count, err := f.svc.ExpirePending(context.Background())

		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("cancels stale bookings", func(t *testing.T) {
		f := newFixture(t)
		stale := []model.Booking{
			{ID: "b-1", TurfID: turfID, Status: model.StatusPending},
			{ID: "b-2", TurfID: turfID, Status: model.StatusPending},
		}

		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
			where, _ := filter.GetWhereClause()
			assert.Equal(t, "(bookings.status = :current_status AND bookings.created_at < :created_at)", where)

			return stale, nil
		})
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, fields map[string]any, filter gDto.FilterGroup) error {
			assert.Equal(t, model.StatusCancelled, fields[model.FieldStatus])
			assert.Equal(t, constant.ContextSystem, fields[constant.FieldModifiedBy])

			where, args := filter.GetWhereClause()
			assert.Equal(t, "(bookings.id = :id AND bookings.status = :current_status)", where)
			assert.Contains(t, []any{"b-1", "b-2"}, args["id"])

			return nil
		}).Times(2)
		f.expectSideEffects()

		count, err := f.svc.ExpirePending(context.Background())

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("booking confirmed after the read is left alone", func(t *testing.T) {
		f := newFixture(t)
		stale := []model.Booking{
			{ID: "b-1", TurfID: turfID, Status: model.StatusPending},
			{ID: "b-2", TurfID: turfID, Status: model.StatusPending},
		}

		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(stale, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, _ map[string]any, filter gDto.FilterGroup) error {
			_, args := filter.GetWhereClause()
			if args["id"] == "b-1" {
				return gRepo.ErrNoRowsAffected
			}

			return nil
		}).Times(2)

		var published []string
		var mu sync.Mutex

		f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
		f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
		f.kafka.EXPECT().SendMessages(gomock.Any(), "booking.events", gomock.Any()).DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
			mu.Lock()
			defer mu.Unlock()

			for _, message := range messages {
				if event, ok := message.Value.(dto.BookingEvent); assert.True(t, ok) {
					published = append(published, event.BookingID)
				}
			}

			return nil
		}).AnyTimes()

		count, err := f.svc.ExpirePending(context.Background())

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, 1, count)

		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, []string{"b-2"}, published)
	})

	t.Run("update error", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Booking{{ID: "b-1"}}, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("database error"))

		_, err := f.svc.ExpirePending(context.Background())

		assert.Error(t, err)
	})
}
