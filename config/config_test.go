package config_test

import (
	"testing"
	"turfbook/config"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("KAFKA_BROKERS", "broker-1:9092,broker-2:9092")
	t.Setenv("SCHEDULE_ENABLE", "true")

	cfg := config.Get()

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Schedule.Enable)
	assert.Equal(t, "0 */5 * * * *", cfg.Schedule.BookingExpiration)
	assert.Equal(t, 30, cfg.Booking.PendingExpiryMinutes)
	assert.Equal(t, "booking.events", cfg.Kafka.Topics.BookingEvents)
	assert.Same(t, cfg, config.Get())
}
