// Package observability wires OpenTelemetry tracing and metrics for
// collectionkit.
//
// Tracing and metrics are exported over OTLP/HTTP. When neither is
// initialised, the global no-op providers are used and instrumentation in the
// collection package costs almost nothing.
//
//	shutdown, err := observability.Setup(ctx, cfg)
//	defer shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter(observability.InstrumentationName))
//	collection.ConcurrentMap(ctx, items, fn, collection.WithMetrics(metrics))
package observability
