package kafka_test

import (
	"context"
	"testing"
	"turfbook/config"
	"turfbook/infras/kafka"
	"turfbook/infras/otel/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToKafkaMessage(t *testing.T) {
	msg := kafka.Message{Key: "booking-1", Value: map[string]string{"status": "pending"}}

	got, err := msg.ToKafkaMessage()
	require.NoError(t, err)

	assert.Equal(t, []byte("booking-1"), got.Key)
	assert.JSONEq(t, `{"status":"pending"}`, string(got.Value))

	bad := kafka.Message{Key: "k", Value: make(chan int)}
	_, err = bad.ToKafkaMessage()
	assert.Error(t, err)
}

func TestSendMessagesDisabled(t *testing.T) {
	cfg := &config.Config{}
	cfg.Kafka.Enable = false

	client := kafka.New(cfg, mocks.NewOtel())

	err := client.SendMessages(context.Background(), "booking.events", kafka.Message{Key: "b", Value: "x"})
	assert.NoError(t, err)
}
