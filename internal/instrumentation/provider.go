package instrumentation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/teemow/gtcli/internal/logging"
)

// Provider encapsulates the OpenTelemetry meter provider and the optional
// Prometheus scrape endpoint.
type Provider struct {
	config        Config
	meterProvider *sdkmetric.MeterProvider
	metrics       *Metrics
	metricsServer *http.Server
	logger        *slog.Logger
	enabled       bool
}

// NewProvider creates an OpenTelemetry provider with the given
// configuration. When disabled, the returned provider carries a no-op
// metrics recorder and Shutdown is a no-op.
func NewProvider(ctx context.Context, config Config, logger *slog.Logger) (*Provider, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	if !config.Enabled {
		return &Provider{config: config, metrics: &Metrics{}, logger: logger}, nil
	}

	res, err := resource.New(ctx, resource.WithAttributes(
		semconv.ServiceName(config.ServiceName),
		semconv.ServiceVersion(config.ServiceVersion),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	var reader sdkmetric.Reader
	switch config.MetricsExporter {
	case ExporterPrometheus:
		promExporter, err := prometheus.New()
		if err != nil {
			return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
		}
		reader = promExporter
	case ExporterStdout:
		exporter, err := stdoutmetric.New()
		if err != nil {
			return nil, fmt.Errorf("failed to create stdout exporter: %w", err)
		}
		reader = sdkmetric.NewPeriodicReader(exporter,
			sdkmetric.WithInterval(30*time.Second))
	}

	p := &Provider{
		config: config,
		meterProvider: sdkmetric.NewMeterProvider(
			sdkmetric.WithResource(res),
			sdkmetric.WithReader(reader),
		),
		logger:  logger,
		enabled: true,
	}
	otel.SetMeterProvider(p.meterProvider)

	meter := p.meterProvider.Meter(config.ServiceName)
	p.metrics, err = NewMetrics(meter, config.DetailedLabels)
	if err != nil {
		_ = p.Shutdown(ctx)
		return nil, fmt.Errorf("failed to create metrics recorder: %w", err)
	}

	return p, nil
}

// Metrics returns the metrics recorder. Never nil; a no-op recorder is
// returned when instrumentation is disabled.
func (p *Provider) Metrics() *Metrics {
	return p.metrics
}

// Enabled reports whether instrumentation is active.
func (p *Provider) Enabled() bool {
	return p.enabled
}

// StartMetricsServer starts the Prometheus scrape endpoint in the
// background. It is a no-op unless the prometheus exporter is configured.
func (p *Provider) StartMetricsServer() {
	if !p.enabled || p.config.MetricsExporter != ExporterPrometheus {
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	p.metricsServer = &http.Server{Addr: p.config.MetricsAddr, Handler: mux}

	go func() {
		p.logger.Info("metrics server listening", slog.String("addr", p.config.MetricsAddr))
		if err := p.metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			p.logger.Error("metrics server failed", logging.Err(err))
		}
	}()
}

// Shutdown flushes metrics and stops the meter provider and scrape
// endpoint.
func (p *Provider) Shutdown(ctx context.Context) error {
	if !p.enabled {
		return nil
	}

	var errs []error
	if p.metricsServer != nil {
		if err := p.metricsServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to shutdown metrics server: %w", err))
		}
	}
	if p.meterProvider != nil {
		if err := p.meterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to shutdown meter provider: %w", err))
		}
	}

	return errors.Join(errs...)
}
