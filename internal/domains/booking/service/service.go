package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"turfbook/config"
	"turfbook/infras/kafka"
	"turfbook/infras/otel"
	"turfbook/internal/domains/booking/availability"
	"turfbook/internal/domains/booking/model"
	"turfbook/internal/domains/booking/model/dto"
	"turfbook/internal/domains/booking/repository"
	turfModel "turfbook/internal/domains/turf/model"
	turfRepo "turfbook/internal/domains/turf/repository"
	"turfbook/shared"
	"turfbook/shared/cache"
	"turfbook/shared/constant"
	gDto "turfbook/shared/dto"
	"turfbook/shared/failure"
	gRepo "turfbook/shared/repository"
	"turfbook/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	GetByUser(ctx context.Context, req gDto.QueryParams, status string) (dto.GetBookingsResponse, error)
	GetByTurf(ctx context.Context, turfID string, req gDto.QueryParams) (dto.GetBookingsResponse, error)
	Confirm(ctx context.Context, id string, req dto.ConfirmBookingRequest) error
	Cancel(ctx context.Context, id string) error
	AvailableSlots(ctx context.Context, turfID, date string) (dto.AvailableSlotsResponse, error)
	ExpirePending(ctx context.Context) (int, error)
}

type serviceImpl struct {
	repo     repository.Booking
	turfRepo turfRepo.Turf
	cfg      *config.Config
	cache    cache.RedisCache
	kafka    kafka.Client
	otel     otel.Otel
}

func New(repo repository.Booking, turfRepo turfRepo.Turf, cfg *config.Config, cache cache.RedisCache, kafka kafka.Client, otel otel.Otel) Booking {
	return &serviceImpl{
		repo:     repo,
		turfRepo: turfRepo,
		cfg:      cfg,
		cache:    cache,
		kafka:    kafka,
		otel:     otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user := shared.UserIDFromContext(ctx)

	start, end, err := req.Interval()
	if err != nil {
		return res, failure.BadRequestFromString("start_time and end_time must be RFC3339 timestamps") // nolint:wrapcheck
	}

	if !start.Before(end) {
		return res, failure.BadRequestFromString("start_time must be before end_time") // nolint:wrapcheck
	}

	if start.Before(timezone.Now()) {
		return res, failure.BadRequestFromString("start_time must not be in the past") // nolint:wrapcheck
	}

	if !availability.WithinOperatingHours(start, end) {
		return res, failure.BadRequestFromString(fmt.Sprintf("booking must be within operating hours %02d:00-%02d:00 of a single day", availability.OpeningHour, availability.ClosingHour)) // nolint:wrapcheck
	}

	turf, err := s.turfRepo.Get(ctx, shared.FilterByID(req.TurfID, turfModel.FieldID, turfModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get turf")

		return res, fmt.Errorf("failed to get turf: %w", err)
	}

	if turf.ID == constant.Empty {
		return res, failure.NotFound("turf not found") // nolint:wrapcheck
	}

	existing, err := s.bookingsOfDay(ctx, turf.ID, timezone.StartOfDay(start))
	if err != nil {
		return res, err
	}

	for _, booking := range existing {
		if booking.Active() && availability.Overlaps(start, end, booking.StartTime, booking.EndTime) {
			return res, failure.Conflict("selected time overlaps an existing booking") // nolint:wrapcheck
		}
	}

	booking := req.ToModel(user, start, end, availability.BookingPrice(turf.PricePerHour, start, end))

	if err = s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	s.afterChange(ctx, booking, dto.EventBookingCreated)

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		if err = s.authorizeRead(ctx, res.UserID); err != nil {
			return dto.BookingResponse{}, err
		}

		return res, nil
	}

	booking, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	if err = s.authorizeRead(ctx, booking.UserID); err != nil {
		return res, err
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetByUser(ctx context.Context, req gDto.QueryParams, status string) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByUser")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.list(ctx, req, repository.OfUser(shared.UserIDFromContext(ctx), status))
}

func (s *serviceImpl) GetByTurf(ctx context.Context, turfID string, req gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByTurf")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = s.getTurf(ctx, turfID); err != nil {
		return res, err
	}

	return s.list(ctx, req, repository.OfTurf(turfID))
}

func (s *serviceImpl) Confirm(ctx context.Context, id string, req dto.ConfirmBookingRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Confirm")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if err = authorizeChange(ctx, booking, "confirm"); err != nil {
		return err
	}

	if booking.Status != model.StatusPending {
		return failure.Conflict(fmt.Sprintf("booking is %s, only pending bookings can be confirmed", booking.Status)) // nolint:wrapcheck
	}

	paymentID := req.PaymentID

	if err = s.transition(ctx, booking, dto.UpdateStatusRequest{Status: model.StatusConfirmed, PaymentID: &paymentID}); err != nil {
		return err
	}

	booking.Status = model.StatusConfirmed
	booking.PaymentID = &paymentID

	s.afterChange(ctx, booking, dto.EventBookingConfirmed)

	return nil
}

func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if err = authorizeChange(ctx, booking, "cancel"); err != nil {
		return err
	}

	if booking.Status != model.StatusPending {
		return failure.Conflict(fmt.Sprintf("booking is %s, only pending bookings can be cancelled", booking.Status)) // nolint:wrapcheck
	}

	if err = s.transition(ctx, booking, dto.UpdateStatusRequest{Status: model.StatusCancelled}); err != nil {
		return err
	}

	booking.Status = model.StatusCancelled

	s.afterChange(ctx, booking, dto.EventBookingCancelled)

	return nil
}

// AvailableSlots is never cached; every call reads the current bookings.
func (s *serviceImpl) AvailableSlots(ctx context.Context, turfID, date string) (res dto.AvailableSlotsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AvailableSlots")
	defer scope.End()
	defer scope.TraceIfError(err)

	day, err := timezone.ParseDate(date)
	if err != nil {
		return res, failure.BadRequestFromString("date must be YYYY-MM-DD or an RFC3339 timestamp") // nolint:wrapcheck
	}

	turf, err := s.getTurf(ctx, turfID)
	if err != nil {
		return res, err
	}

	bookings, err := s.bookingsOfDay(ctx, turf.ID, day)
	if err != nil {
		return res, err
	}

	res.FromSlots(turf.ID, day, turf.PricePerHour, availability.ComputeAvailableSlots(turf.ID, day, bookings))

	return res, nil
}

// ExpirePending cancels pending bookings created more than the configured number of minutes ago.
func (s *serviceImpl) ExpirePending(ctx context.Context) (expired int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ExpirePending")
	defer scope.End()
	defer scope.TraceIfError(err)

	cutoff := timezone.Now().Add(-time.Duration(s.cfg.Booking.PendingExpiryMinutes) * time.Minute)

	stale, err := s.repo.GetAll(ctx, gDto.QueryParams{}, repository.StalePending(cutoff))
	if err != nil {
		log.Error().Err(err).Msg("failed to get stale pending bookings")

		return 0, fmt.Errorf("failed to get stale pending bookings: %w", err)
	}

	updatedFields := shared.TransformFields(dto.UpdateStatusRequest{Status: model.StatusCancelled}, constant.ContextSystem)

	for _, booking := range stale {
		err = s.repo.Update(ctx, updatedFields, repository.PendingByID(booking.ID))
		if errors.Is(err, gRepo.ErrNoRowsAffected) {
			// confirmed or cancelled since the read
			continue
		}

		if err != nil {
			log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to expire pending booking")

			return expired, fmt.Errorf("failed to expire pending booking %s: %w", booking.ID, err)
		}

		booking.Status = model.StatusCancelled
		s.afterChange(ctx, booking, dto.EventBookingExpired)

		expired++
	}

	if expired == 0 {
		return 0, nil
	}

	log.Info().Int("count", expired).Time("cutoff", cutoff).Msg("expired pending bookings")

	return expired, nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) getTurf(ctx context.Context, id string) (turfModel.Turf, error) {
	turf, err := s.turfRepo.Get(ctx, shared.FilterByID(id, turfModel.FieldID, turfModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get turf")

		return turf, fmt.Errorf("failed to get turf: %w", err)
	}

	if turf.ID == constant.Empty {
		return turf, failure.NotFound("turf not found") // nolint:wrapcheck
	}

	return turf, nil
}

// bookingsOfDay loads the turf's non-cancelled bookings starting on day.
func (s *serviceImpl) bookingsOfDay(ctx context.Context, turfID string, day time.Time) ([]model.Booking, error) {
	params := gDto.QueryParams{SortBy: model.FieldStartTime, SortDir: gDto.SortDirAsc}

	bookings, err := s.repo.GetAll(ctx, params, repository.OfDay(turfID, day))
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings of day")

		return nil, fmt.Errorf("failed to get bookings of day: %w", err)
	}

	return bookings, nil
}

func (s *serviceImpl) list(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

// transition updates the booking only while it is still pending.
func (s *serviceImpl) transition(ctx context.Context, booking model.Booking, req dto.UpdateStatusRequest) error {
	updatedFields := shared.TransformFields(req, shared.UserIDFromContext(ctx))
	err := s.repo.Update(ctx, updatedFields, repository.PendingByID(booking.ID))
	if errors.Is(err, gRepo.ErrNoRowsAffected) {
		return failure.Conflict("booking is no longer pending") // nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to update booking status")

		return fmt.Errorf("failed to update booking status: %w", err)
	}

	return nil
}

// authorizeChange lets only the booking owner or an admin move a booking out of pending.
func authorizeChange(ctx context.Context, booking model.Booking, action string) error {
	if booking.UserID == shared.UserIDFromContext(ctx) || shared.UserRoleFromContext(ctx) == constant.RoleAdmin {
		return nil
	}

	return failure.Forbidden(fmt.Sprintf("only the booking owner can %s it", action)) // nolint:wrapcheck
}

func (s *serviceImpl) authorizeRead(ctx context.Context, owner string) error {
	role := shared.UserRoleFromContext(ctx)
	if owner == shared.UserIDFromContext(ctx) || role == constant.RoleAdmin || role == constant.RoleHost {
		return nil
	}

	return failure.Forbidden("you are not allowed to view this booking") // nolint:wrapcheck
}

// afterChange drops cached reads and publishes the booking event without blocking the caller.
func (s *serviceImpl) afterChange(ctx context.Context, booking model.Booking, eventType string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, booking.ID)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)

		message := kafka.Message{Key: booking.TurfID, Value: dto.NewBookingEvent(eventType, booking)}
		if err := s.kafka.SendMessages(c, s.cfg.Kafka.Topics.BookingEvents, message); err != nil {
			log.Error().Err(err).Str("event", eventType).Str("booking_id", booking.ID).Msg("failed to publish booking event")
		}
	}()
}
