package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/collectionkit/logger"
)

// InitMeter initializes the OpenTelemetry meter provider and installs it
// globally. The caller must shut it down on exit.
func InitMeter(ctx context.Context, cfg Config) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if cfg.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(cfg.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Debug("meter initialized", logger.Fields(
		"service", cfg.ServiceName,
		"endpoint", cfg.Endpoint,
		"interval", cfg.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metric names.
const (
	MetricRuns              = "collection.runs"
	MetricRunDuration       = "collection.run.duration"
	MetricTasks             = "collection.tasks"
	MetricTaskDuration      = "collection.task.duration"
	MetricTasksActive       = "collection.tasks.active"
	MetricAdmissionRejected = "collection.admission.rejected"
)

// Metrics holds the instruments recorded by collection orchestrations.
type Metrics struct {
	runTotal          metric.Int64Counter
	runDuration       metric.Float64Histogram
	taskTotal         metric.Int64Counter
	taskDuration      metric.Float64Histogram
	taskActive        metric.Int64UpDownCounter
	admissionRejected metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	runTotal, err := meter.Int64Counter(MetricRuns,
		metric.WithDescription("Completed orchestration calls"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricRuns, err)
	}

	runDuration, err := meter.Float64Histogram(MetricRunDuration,
		metric.WithDescription("Wall time of orchestration calls"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricRunDuration, err)
	}

	taskTotal, err := meter.Int64Counter(MetricTasks,
		metric.WithDescription("Per-element operations that finished"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricTasks, err)
	}

	taskDuration, err := meter.Float64Histogram(MetricTaskDuration,
		metric.WithDescription("Duration of per-element operations"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricTaskDuration, err)
	}

	taskActive, err := meter.Int64UpDownCounter(MetricTasksActive,
		metric.WithDescription("Per-element operations currently in flight"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s gauge: %w", MetricTasksActive, err)
	}

	admissionRejected, err := meter.Int64Counter(MetricAdmissionRejected,
		metric.WithDescription("Elements never started because the run had already failed"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricAdmissionRejected, err)
	}

	return &Metrics{
		runTotal:          runTotal,
		runDuration:       runDuration,
		taskTotal:         taskTotal,
		taskDuration:      taskDuration,
		taskActive:        taskActive,
		admissionRejected: admissionRejected,
	}, nil
}

// RecordRun records a finished orchestration call.
func (m *Metrics) RecordRun(ctx context.Context, operation, executor, status string, duration time.Duration) {
	m.runTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("executor", executor),
		attribute.String("status", status),
	))
	m.runDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("executor", executor),
	))
}

// RecordTaskStart increments the in-flight task count.
func (m *Metrics) RecordTaskStart(ctx context.Context, operation string) {
	m.taskActive.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", operation)))
}

// RecordTaskEnd decrements the in-flight count and records the finished task.
func (m *Metrics) RecordTaskEnd(ctx context.Context, operation, status string, duration time.Duration) {
	op := attribute.String("operation", operation)
	m.taskActive.Add(ctx, -1, metric.WithAttributes(op))
	m.taskTotal.Add(ctx, 1, metric.WithAttributes(op, attribute.String("status", status)))
	m.taskDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(op))
}

// RecordRejected records elements that were never launched.
func (m *Metrics) RecordRejected(ctx context.Context, operation string, n int) {
	if n <= 0 {
		return
	}
	m.admissionRejected.Add(ctx, int64(n), metric.WithAttributes(attribute.String("operation", operation)))
}
