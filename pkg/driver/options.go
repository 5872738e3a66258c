package driver

import (
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// DefaultQueueSize is the message queue capacity used when none is set.
const DefaultQueueSize = 256

// Default tracer name for driver spans.
const defaultTracerName = "viewcore"

type options struct {
	logger    *slog.Logger
	metrics   *Metrics
	tracer    trace.Tracer
	queueSize int
}

// Option configures a Driver.
type Option func(*options)

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetrics enables Prometheus metrics.
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithTracer sets the tracer used for pass spans. Default: the global
// provider's "viewcore" tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(o *options) {
		o.tracer = tracer
	}
}

// WithQueueSize sets the message queue capacity.
func WithQueueSize(n int) Option {
	return func(o *options) {
		o.queueSize = n
	}
}

func defaultOptions() options {
	return options{
		logger:    slog.Default(),
		tracer:    otel.Tracer(defaultTracerName),
		queueSize: DefaultQueueSize,
	}
}
