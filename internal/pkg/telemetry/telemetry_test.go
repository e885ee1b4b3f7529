package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"
)

func TestNewResource(t *testing.T) {
	for _, name := range []string{"carechain", "", "carechain-node_2"} {
		t.Run("service name "+name, func(t *testing.T) {
			res, err := newResource(name)
			require.NoError(t, err)

			value, ok := res.Set().Value(semconv.ServiceNameKey)
			require.True(t, ok)
			if name != "" {
				assert.Equal(t, name, value.AsString())
			}
		})
	}
}

func TestNewProviders(t *testing.T) {
	res, err := newResource("carechain")
	require.NoError(t, err)

	// Exporters connect lazily, so creation succeeds without a collector.
	t.Run("meter provider", func(t *testing.T) {
		mp, err := newMeterProvider(t.Context(), res)
		require.NoError(t, err)
		assert.NotNil(t, mp.Meter("test"))

		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()
		_ = mp.Shutdown(ctx)
	})

	t.Run("logger provider", func(t *testing.T) {
		lp, err := newLoggerProvider(t.Context(), res)
		require.NoError(t, err)
		assert.NotNil(t, lp.Logger("test"))

		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()
		_ = lp.Shutdown(ctx)
	})

	t.Run("tracer provider", func(t *testing.T) {
		tp, err := newTracerProvider(t.Context(), res)
		require.NoError(t, err)

		_, span := tp.Tracer("test").Start(t.Context(), "span")
		assert.True(t, span.SpanContext().IsValid())
		span.End()

		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()
		_ = tp.Shutdown(ctx)
	})
}

func TestInit(t *testing.T) {
	originalMeterProvider := otel.GetMeterProvider()
	originalTracerProvider := otel.GetTracerProvider()
	originalPropagator := otel.GetTextMapPropagator()
	t.Cleanup(func() {
		otel.SetMeterProvider(originalMeterProvider)
		otel.SetTracerProvider(originalTracerProvider)
		otel.SetTextMapPropagator(originalPropagator)
		loggerProvider.Store(nil)
	})

	require.Nil(t, LoggerProvider())

	shutdown, err := Init(t.Context(), "carechain")
	require.NoError(t, err)
	require.NotNil(t, shutdown)

	t.Run("registers global providers", func(t *testing.T) {
		assert.IsType(t, &sdktrace.TracerProvider{}, otel.GetTracerProvider())
		assert.IsType(t, &sdkmetric.MeterProvider{}, otel.GetMeterProvider())
		assert.Contains(t, otel.GetTextMapPropagator().Fields(), "traceparent")
	})

	t.Run("exposes the log provider", func(t *testing.T) {
		assert.NotNil(t, LoggerProvider())
	})

	t.Run("shutdown flushes without a collector", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()

		// Without a collector the flush may time out; it must still return.
		_ = shutdown(ctx)
	})
}

func TestNoop(t *testing.T) {
	assert.NoError(t, Noop(t.Context()))
}
