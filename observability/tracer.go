package observability

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/collectionkit/logger"
)

// InstrumentationName is the tracer and meter name used by collectionkit.
const InstrumentationName = "github.com/kbukum/collectionkit"

// InitTracer initializes the OpenTelemetry tracer provider and installs it
// globally. The caller must shut it down on exit.
func InitTracer(ctx context.Context, cfg Config) (*sdktrace.TracerProvider, error) {
	opts := []otlptracehttp.Option{
		otlptracehttp.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating trace exporter: %w", err)
	}

	res, err := newResource(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(samplerFor(cfg.SampleRate)),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	logger.Debug("tracer initialized", logger.Fields(
		"service", cfg.ServiceName,
		"endpoint", cfg.Endpoint,
		"sample_rate", cfg.SampleRate,
	))

	return tp, nil
}

func samplerFor(rate float64) sdktrace.Sampler {
	switch {
	case rate >= 1.0:
		return sdktrace.AlwaysSample()
	case rate <= 0:
		return sdktrace.NeverSample()
	default:
		return sdktrace.TraceIDRatioBased(rate)
	}
}

// newResource creates an OpenTelemetry resource with service metadata.
func newResource(ctx context.Context, cfg Config) (*resource.Resource, error) {
	return resource.New(ctx,
		resource.WithTelemetrySDK(),
		resource.WithAttributes(
			attribute.String("service.name", cfg.ServiceName),
			attribute.String("service.version", cfg.ServiceVersion),
			attribute.String("deployment.environment", cfg.Environment),
		),
	)
}

// Setup initialises tracing and metrics from cfg and returns a function that
// flushes and shuts both down. When cfg.Enabled is false it returns a no-op.
func Setup(ctx context.Context, cfg Config) (func(context.Context) error, error) {
	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}

	tp, err := InitTracer(ctx, cfg)
	if err != nil {
		return nil, err
	}
	mp, err := InitMeter(ctx, cfg)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, err
	}

	return func(ctx context.Context) error {
		return errors.Join(tp.Shutdown(ctx), mp.Shutdown(ctx))
	}, nil
}

// Tracer returns a named tracer from the global provider.
func Tracer(name string) trace.Tracer {
	return otel.Tracer(name)
}

// StartSpan starts a new span using the collectionkit tracer.
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return Tracer(InstrumentationName).Start(ctx, name, opts...)
}

// SpanFromContext returns the span from context.
func SpanFromContext(ctx context.Context) trace.Span {
	return trace.SpanFromContext(ctx)
}

// SetSpanAttribute sets an attribute on the current span in context.
func SetSpanAttribute(ctx context.Context, key string, value any) {
	span := SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	switch v := value.(type) {
	case string:
		span.SetAttributes(attribute.String(key, v))
	case int:
		span.SetAttributes(attribute.Int(key, v))
	case int64:
		span.SetAttributes(attribute.Int64(key, v))
	case float64:
		span.SetAttributes(attribute.Float64(key, v))
	case bool:
		span.SetAttributes(attribute.Bool(key, v))
	case []string:
		span.SetAttributes(attribute.StringSlice(key, v))
	}
}

// SetSpanError records an error on the current span in context and marks the
// span as failed.
func SetSpanError(ctx context.Context, err error) {
	span := SpanFromContext(ctx)
	if span.IsRecording() {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// Span names.
const (
	SpanPrefix = "collection."
)

// Attribute keys set on orchestration spans.
const (
	AttrRunID      = "collection.run_id"
	AttrOperation  = "collection.operation"
	AttrExecutor   = "collection.executor"
	AttrLimit      = "collection.limit"
	AttrTotal      = "collection.total"
	AttrPriority   = "collection.priority"
	AttrLaunched   = "collection.launched"
	AttrSuppressed = "collection.suppressed"
	AttrStatus     = "status"
)
