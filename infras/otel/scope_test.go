package otel_test

import (
	"context"
	"errors"
	"testing"
	"time"
	"turfbook/infras/otel"
	"turfbook/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func recordSpan(t *testing.T, fn func(otel.Scope)) sdktrace.ReadOnlySpan {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	_, span := provider.Tracer("test").Start(context.Background(), "span")
	scope := otel.NewScope(span)
	fn(scope)
	scope.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)

	return ended[0]
}

func TestScope_TraceError(t *testing.T) {
	t.Run("client failure stays unset", func(t *testing.T) {
		span := recordSpan(t, func(scope otel.Scope) {
			scope.TraceError(failure.Conflict("slot already booked"))
		})

		assert.Equal(t, codes.Unset, span.Status().Code)
		require.Len(t, span.Events(), 1)
		assert.Contains(t, span.Events()[0].Attributes, attribute.Int("error.code", 409))
	})

	t.Run("internal error marks the span", func(t *testing.T) {
		span := recordSpan(t, func(scope otel.Scope) {
			scope.TraceIfError(errors.New("connection reset"))
		})

		assert.Equal(t, codes.Error, span.Status().Code)
		assert.Equal(t, "connection reset", span.Status().Description)
	})
}

func TestScope_SetAttributes(t *testing.T) {
	start := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	span := recordSpan(t, func(scope otel.Scope) {
		scope.SetAttributes(map[string]any{
			"booking.start": start,
			"booking.price": 1500.5,
			"slots":         28,
		})
		scope.SetAttribute("amenities", []string{"Goals", "Nets"})
	})

	attrs := span.Attributes()
	assert.Contains(t, attrs, attribute.String("booking.start", "2024-06-01T09:00:00Z"))
	assert.Contains(t, attrs, attribute.Float64("booking.price", 1500.5))
	assert.Contains(t, attrs, attribute.Int("slots", 28))
	assert.Contains(t, attrs, attribute.StringSlice("amenities", []string{"Goals", "Nets"}))
}
