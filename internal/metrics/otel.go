package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

const defaultServiceName = "teampanel"

const otlpInterval = 15 * time.Second

// TelemetryConfig controls how metrics are exported
type TelemetryConfig struct {
	Enabled      bool
	ServiceName  string
	OtlpEndpoint string
	OtlpInsecure bool
}

// Setup builds a meter provider exporting to a Prometheus registry and, when an
// endpoint is given, to an OTLP collector. It returns the Recorder, the handler
// serving the registry and a shutdown function.
// When disabled, the Recorder only counts in memory and the handler is nil
func Setup(ctx context.Context, cfg TelemetryConfig) (*Recorder, http.Handler, func(context.Context) error, error) {
	if !cfg.Enabled {
		return NewRecorder(), nil, func(context.Context) error { return nil }, nil
	}

	if cfg.ServiceName == "" {
		cfg.ServiceName = defaultServiceName
	}

	promReader, promHandler, err := prometheusComponents()
	if err != nil {
		return nil, nil, nil, err
	}
	opts := []sdkmetric.Option{sdkmetric.WithReader(promReader)}

	if cfg.OtlpEndpoint != "" {
		otlpReader, err := buildOTLPReader(ctx, cfg.OtlpEndpoint, cfg.OtlpInsecure)
		if err != nil {
			return nil, nil, nil, err
		}
		opts = append(opts, sdkmetric.WithReader(otlpReader))
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(cfg.ServiceName)),
	)
	if err != nil {
		return nil, nil, nil, err
	}
	opts = append(opts, sdkmetric.WithResource(res))

	provider := sdkmetric.NewMeterProvider(opts...)

	instruments, err := newOtelInstruments(provider, cfg.ServiceName)
	if err != nil {
		return nil, nil, nil, err
	}

	shutdown := func(c context.Context) error {
		return provider.Shutdown(c)
	}
	return newRecorder(instruments), promHandler, shutdown, nil
}

func prometheusComponents() (sdkmetric.Reader, http.Handler, error) {
	reg := prometheus.NewRegistry()
	exporter, err := promexporter.New(promexporter.WithRegisterer(reg))
	if err != nil {
		return nil, nil, err
	}
	return exporter, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), nil
}

func buildOTLPReader(ctx context.Context, endpoint string, insecure bool) (sdkmetric.Reader, error) {
	otlpOpts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(endpoint)}
	if insecure {
		otlpOpts = append(otlpOpts, otlpmetrichttp.WithInsecure())
	}
	exporter, err := otlpmetrichttp.New(ctx, otlpOpts...)
	if err != nil {
		return nil, err
	}
	return sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(otlpInterval)), nil
}

type otelInstruments struct {
	ctx              context.Context
	renders          metric.Int64Counter
	renderLatencyMs  metric.Float64Histogram
	commands         metric.Int64Counter
	refreshes        metric.Int64Counter
	requests         metric.Int64Counter
	requestLatencyMs metric.Float64Histogram
}

func newOtelInstruments(provider metric.MeterProvider, name string) (*otelInstruments, error) {
	meter := provider.Meter(name)

	renders, err := meter.Int64Counter("panel_renders_total")
	if err != nil {
		return nil, err
	}
	renderLatency, err := meter.Float64Histogram("panel_render_duration_ms")
	if err != nil {
		return nil, err
	}
	commands, err := meter.Int64Counter("commands_total")
	if err != nil {
		return nil, err
	}
	refreshes, err := meter.Int64Counter("panel_refreshes_total")
	if err != nil {
		return nil, err
	}
	requests, err := meter.Int64Counter("http_requests_total")
	if err != nil {
		return nil, err
	}
	requestLatency, err := meter.Float64Histogram("http_request_duration_ms")
	if err != nil {
		return nil, err
	}

	return &otelInstruments{
		ctx:              context.Background(),
		renders:          renders,
		renderLatencyMs:  renderLatency,
		commands:         commands,
		refreshes:        refreshes,
		requests:         requests,
		requestLatencyMs: requestLatency,
	}, nil
}

func (o *otelInstruments) recordRender(teamId string, duration time.Duration, fallback bool) {
	if o == nil {
		return
	}
	outcome := OutcomeOk
	if fallback {
		outcome = OutcomeFallback
	}
	attrs := []attribute.KeyValue{
		attribute.String(AttrTeam, teamId),
		attribute.String(AttrOutcome, outcome),
	}
	o.recordCounter(o.renders, 1, attrs...)
	o.recordHistogram(o.renderLatencyMs, float64(duration.Milliseconds()), attrs...)
}

func (o *otelInstruments) recordCommand(command string) {
	if o == nil {
		return
	}
	o.recordCounter(o.commands, 1, attribute.String(AttrCommand, command))
}

func (o *otelInstruments) recordRefresh(teamId string, err error) {
	if o == nil {
		return
	}
	outcome := OutcomeOk
	if err != nil {
		outcome = OutcomeError
	}
	o.recordCounter(o.refreshes, 1,
		attribute.String(AttrTeam, teamId),
		attribute.String(AttrOutcome, outcome),
	)
}

func (o *otelInstruments) recordHTTPRequest(method, path string, status int, duration time.Duration) {
	if o == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String(AttrMethod, method),
		attribute.String(AttrPath, path),
		attribute.Int(AttrStatus, status),
	}
	o.recordCounter(o.requests, 1, attrs...)
	o.recordHistogram(o.requestLatencyMs, float64(duration.Milliseconds()), attrs...)
}

func (o *otelInstruments) recordCounter(counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	counter.Add(o.ctx, value, metric.WithAttributes(attrs...))
}

func (o *otelInstruments) recordHistogram(hist metric.Float64Histogram, value float64, attrs ...attribute.KeyValue) {
	hist.Record(o.ctx, value, metric.WithAttributes(attrs...))
}
