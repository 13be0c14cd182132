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
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment.
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)
	return mp, nil
}

// Metrics holds the engine's metric instruments.
type Metrics struct {
	acquireTotal    metric.Int64Counter
	refreshTotal    metric.Int64Counter
	refreshDuration metric.Float64Histogram
	validateTotal   metric.Int64Counter
	credentialsHeld metric.Int64UpDownCounter
	errorTotal      metric.Int64Counter
}

// NewMetrics creates the engine's metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	acquireTotal, err := meter.Int64Counter("credential.acquire.total",
		metric.WithDescription("Credential acquisitions by auth type and outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating credential.acquire.total counter: %w", err)
	}

	refreshTotal, err := meter.Int64Counter("credential.refresh.total",
		metric.WithDescription("Token refreshes by auth type and outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating credential.refresh.total counter: %w", err)
	}

	refreshDuration, err := meter.Float64Histogram("credential.refresh.duration",
		metric.WithDescription("Duration of token refreshes in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating credential.refresh.duration histogram: %w", err)
	}

	validateTotal, err := meter.Int64Counter("credential.validate.total",
		metric.WithDescription("Credential validations by auth type and outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating credential.validate.total counter: %w", err)
	}

	credentialsHeld, err := meter.Int64UpDownCounter("credential.held",
		metric.WithDescription("Credentials currently acquired and not yet released"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating credential.held gauge: %w", err)
	}

	errorTotal, err := meter.Int64Counter("error.total",
		metric.WithDescription("Total errors by code and component"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating error.total counter: %w", err)
	}

	return &Metrics{
		acquireTotal:    acquireTotal,
		refreshTotal:    refreshTotal,
		refreshDuration: refreshDuration,
		validateTotal:   validateTotal,
		credentialsHeld: credentialsHeld,
		errorTotal:      errorTotal,
	}, nil
}

// NewDefaultMetrics creates the engine's metrics on the global meter. When
// no meter provider is installed this yields no-op instruments.
func NewDefaultMetrics() (*Metrics, error) {
	return NewMetrics(otel.Meter(tracerName))
}

// RecordAcquire records one acquisition attempt.
func (m *Metrics) RecordAcquire(ctx context.Context, authType, status string) {
	m.acquireTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrAuthType, authType),
		attribute.String(AttrStatus, status),
	))
	if status == "ok" {
		m.credentialsHeld.Add(ctx, 1)
	}
}

// RecordRelease records one release of an acquired credential.
func (m *Metrics) RecordRelease(ctx context.Context) {
	m.credentialsHeld.Add(ctx, -1)
}

// RecordRefresh records one refresh attempt with its duration.
func (m *Metrics) RecordRefresh(ctx context.Context, authType, status string, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String(AttrAuthType, authType),
		attribute.String(AttrStatus, status),
	)
	m.refreshTotal.Add(ctx, 1, attrs)
	m.refreshDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String(AttrAuthType, authType),
	))
}

// RecordValidate records one validation attempt.
func (m *Metrics) RecordValidate(ctx context.Context, authType, status string) {
	m.validateTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrAuthType, authType),
		attribute.String(AttrStatus, status),
	))
}

// RecordError records an error by code and component.
func (m *Metrics) RecordError(ctx context.Context, code, component string) {
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("code", code),
		attribute.String("component", component),
	))
}
