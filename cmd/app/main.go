package main

import (
	"context"
	"time"
	"turfbook/config"
	"turfbook/di"
	"turfbook/helper"
	"turfbook/shared/logger"

	"github.com/rs/zerolog/log"
)

const closeTimeout = 10 * time.Second

// @title Turfbook API
// @version 1.0
// @description Venue, turf and booking management API.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger()
	logger.Configure(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	app := di.InitializeService()

	if err := app.Scheduler.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start scheduler")
	}

	app.HTTP.Serve()

	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	if err := app.Close(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to release resources")
	}
}
