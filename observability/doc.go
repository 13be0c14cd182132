// Package observability wires OpenTelemetry tracing and metrics for the
// credential engine. Both export over OTLP HTTP and are optional: when
// disabled, the otel no-op globals stay in place and instrumented code
// costs nothing.
package observability
