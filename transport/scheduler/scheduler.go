package scheduler

import (
	"context"
	"fmt"
	"turfbook/config"
	"turfbook/infras/otel"
	bookingService "turfbook/internal/domains/booking/service"
	"turfbook/shared/constant"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

type Scheduler struct {
	cfg      *config.Config
	bookings bookingService.Booking
	otel     otel.Otel
	cron     *cron.Cron
}

func New(cfg *config.Config, bookings bookingService.Booking, otel otel.Otel) *Scheduler {
	return &Scheduler{
		cfg:      cfg,
		bookings: bookings,
		otel:     otel,
		cron:     cron.New(cron.WithSeconds()),
	}
}

// Start registers the jobs and runs them in the background. It is a no-op when
// scheduling is disabled.
func (s *Scheduler) Start() error {
	if !s.cfg.Schedule.Enable {
		log.Info().Msg("Scheduler disabled")

		return nil
	}

	if _, err := s.cron.AddFunc(s.cfg.Schedule.BookingExpiration, s.ExpirePendingBookings); err != nil {
		return fmt.Errorf("failed to schedule booking expiration: %w", err)
	}

	s.cron.Start()

	log.Info().Str("cron", s.cfg.Schedule.BookingExpiration).Msg("Scheduler started")

	return nil
}

// Stop waits for running jobs to finish or ctx to end.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}

func (s *Scheduler) ExpirePendingBookings() {
	ctx, scope := s.otel.NewScope(context.Background(), constant.OtelSchedulerScopeName, constant.OtelSchedulerScopeName+".ExpirePendingBookings")
	defer scope.End()

	expired, err := s.bookings.ExpirePending(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to expire pending bookings")

		return
	}

	scope.SetAttribute("bookings.expired", expired)
	log.Info().Int("expired", expired).Msg("expired pending bookings")
}
