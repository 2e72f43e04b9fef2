//go:build wireinject
// +build wireinject

package di

import (
	"turfbook/config"
	"turfbook/infras/jwt"
	"turfbook/infras/kafka"
	"turfbook/infras/otel"
	"turfbook/infras/postgres"
	"turfbook/infras/redis"
	"turfbook/infras/s3"
	"turfbook/permissions"
	"turfbook/shared/cache"
	"turfbook/transport/http"
	"turfbook/transport/http/middleware"
	"turfbook/transport/http/router"
	"turfbook/transport/scheduler"

	authService "turfbook/internal/domains/auth/service"
	bookingRepository "turfbook/internal/domains/booking/repository"
	bookingService "turfbook/internal/domains/booking/service"
	turfRepository "turfbook/internal/domains/turf/repository"
	turfService "turfbook/internal/domains/turf/service"
	userRepository "turfbook/internal/domains/user/repository"
	userService "turfbook/internal/domains/user/service"
	venueRepository "turfbook/internal/domains/venue/repository"
	venueService "turfbook/internal/domains/venue/service"

	authHandler "turfbook/internal/handlers/auth"
	bookingHandler "turfbook/internal/handlers/booking"
	turfHandler "turfbook/internal/handlers/turf"
	userHandler "turfbook/internal/handlers/user"
	venueHandler "turfbook/internal/handlers/venue"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var authDomain = wire.NewSet(
	authService.New,
)

var venueDomain = wire.NewSet(
	venueRepository.New,
	venueService.New,
)

var turfDomain = wire.NewSet(
	turfRepository.New,
	turfService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var domains = wire.NewSet(
	userDomain,
	authDomain,
	venueDomain,
	turfDomain,
	bookingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	venueHandler.New,
	turfHandler.New,
	bookingHandler.New,
	router.New,
)

func InitializeService() *App {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
		scheduler.New,
		wire.Struct(new(App), "*"),
	)

	return &App{}
}
