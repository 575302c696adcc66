// Package otel provides OpenTelemetry metric bindings for cookieauth
// engine counters and the verify latency histogram.
//
// [NewExporter] registers an Int64ObservableCounter per engine counter
// and an Int64ObservableGauge per histogram bucket. A single callback
// reads cookieauth.Engine.MetricsSnapshot on each collection cycle.
//
// # What this package must NOT do
//
//   - Own the OTel MeterProvider — callers supply the Meter.
//   - Mutate engine state.
package otel
