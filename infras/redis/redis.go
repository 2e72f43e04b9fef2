package redis

import (
	"context"
	"net"
	"time"
	"turfbook/config"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const pingTimeout = 5 * time.Second

// Options maps the primary cache node onto client options shared by the slot cache and the rate limiter.
func Options(cfg *config.Config) *goRedis.Options {
	primary := cfg.Cache.Redis.Primary

	return &goRedis.Options{
		Addr:     net.JoinHostPort(primary.Host, primary.Port),
		Password: primary.Password,
		DB:       primary.DB,
	}
}

func New(cfg *config.Config) *goRedis.Client {
	client := goRedis.NewClient(Options(cfg))

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Str("addr", client.Options().Addr).Msg("Failed to connect to Redis")
	}

	log.Info().
		Str("addr", client.Options().Addr).
		Int("db", cfg.Cache.Redis.Primary.DB).
		Msg("Connected to Redis")

	return client
}
