package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records todo registry metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordCall records a service call with its duration and outcome.
	// kind is the call classification ("query" or "update").
	RecordCall(ctx context.Context, method, kind string, duration time.Duration, err error)

	// RecordRegistrySize records the current number of live items.
	RecordRegistrySize(ctx context.Context, n int64)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	calls       metric.Int64Counter
	callLatency metric.Float64Histogram
	callErrors  metric.Int64Counter
	items       metric.Int64Gauge
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("todoreg")

	calls, err := meter.Int64Counter("todoreg.call.count",
		metric.WithDescription("Number of service calls"),
	)
	if err != nil {
		return nil, err
	}

	callLatency, err := meter.Float64Histogram("todoreg.call.latency_ms",
		metric.WithDescription("Service call latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	callErrors, err := meter.Int64Counter("todoreg.call.errors",
		metric.WithDescription("Number of failed service calls"),
	)
	if err != nil {
		return nil, err
	}

	items, err := meter.Int64Gauge("todoreg.registry.items",
		metric.WithDescription("Number of live todo items"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		calls:       calls,
		callLatency: callLatency,
		callErrors:  callErrors,
		items:       items,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordCall records a service call.
func (m *otelMetrics) RecordCall(ctx context.Context, method, kind string, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("method", method),
		attribute.String("kind", kind),
	}

	m.calls.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.callLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))

	if err != nil {
		m.callErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// RecordRegistrySize records the live item count.
func (m *otelMetrics) RecordRegistrySize(ctx context.Context, n int64) {
	m.items.Record(ctx, n)
}
