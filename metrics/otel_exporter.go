package metrics

import (
	"context"
	"fmt"
	"net/http"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// OTelExporter provides OpenTelemetry metrics export following OTel standards
type OTelExporter struct {
	meterProvider *sdkmetric.MeterProvider
	collector     Collector
	gatherer      promclient.Gatherer

	meter            metric.Meter
	bufferGauge      metric.Int64ObservableGauge
	subscribersGauge metric.Int64ObservableGauge
	clientsGauge     metric.Int64ObservableGauge
	ingestedCounter  metric.Int64ObservableCounter
}

// ExporterOption configures an OTelExporter
type ExporterOption func(*exporterOptions)

type exporterOptions struct {
	registerer promclient.Registerer
	gatherer   promclient.Gatherer
}

// WithRegistry exports into reg instead of the default Prometheus registry
func WithRegistry(reg *promclient.Registry) ExporterOption {
	return func(o *exporterOptions) {
		o.registerer = reg
		o.gatherer = reg
	}
}

// NewOTelExporter creates a new OpenTelemetry metrics exporter with Prometheus format
func NewOTelExporter(collector Collector, opts ...ExporterOption) (*OTelExporter, error) {
	options := exporterOptions{
		registerer: promclient.DefaultRegisterer,
		gatherer:   promclient.DefaultGatherer,
	}
	for _, opt := range opts {
		opt(&options)
	}

	exporter, err := prometheus.New(prometheus.WithRegisterer(options.registerer))
	if err != nil {
		return nil, fmt.Errorf("creating prometheus exporter: %w", err)
	}

	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)
	otel.SetMeterProvider(meterProvider)

	meter := meterProvider.Meter(
		"waha-dashboard",
		metric.WithInstrumentationVersion("1.0.0"),
	)

	oe := &OTelExporter{
		meterProvider: meterProvider,
		collector:     collector,
		gatherer:      options.gatherer,
		meter:         meter,
	}

	if err := oe.registerInstruments(); err != nil {
		return nil, fmt.Errorf("registering instruments: %w", err)
	}

	return oe, nil
}

func (oe *OTelExporter) registerInstruments() error {
	var err error

	oe.bufferGauge, err = oe.meter.Int64ObservableGauge(
		"webhook.buffer.events",
		metric.WithDescription("Number of webhook events retained in the buffer"),
		metric.WithUnit("{events}"),
		metric.WithInt64Callback(oe.observeBuffer),
	)
	if err != nil {
		return fmt.Errorf("creating buffer gauge: %w", err)
	}

	oe.subscribersGauge, err = oe.meter.Int64ObservableGauge(
		"stream.subscribers",
		metric.WithDescription("Number of open live stream connections per transport"),
		metric.WithUnit("{connections}"),
		metric.WithInt64Callback(oe.observeSubscribers),
	)
	if err != nil {
		return fmt.Errorf("creating subscribers gauge: %w", err)
	}

	oe.clientsGauge, err = oe.meter.Int64ObservableGauge(
		"upstream.clients.cached",
		metric.WithDescription("Number of upstream clients cached by credential pair"),
		metric.WithUnit("{clients}"),
		metric.WithInt64Callback(oe.observeClients),
	)
	if err != nil {
		return fmt.Errorf("creating clients gauge: %w", err)
	}

	// Counts are monotonic since process start
	oe.ingestedCounter, err = oe.meter.Int64ObservableCounter(
		"webhook.ingested",
		metric.WithDescription("Number of webhook bodies received per outcome"),
		metric.WithUnit("{webhooks}"),
		metric.WithInt64Callback(oe.observeIngested),
	)
	if err != nil {
		return fmt.Errorf("creating ingested counter: %w", err)
	}

	return nil
}

func (oe *OTelExporter) observeBuffer(ctx context.Context, observer metric.Int64Observer) error {
	buffered, err := oe.collector.GetBufferedEvents(ctx)
	if err != nil {
		return err
	}
	observer.Observe(buffered)
	return nil
}

func (oe *OTelExporter) observeSubscribers(ctx context.Context, observer metric.Int64Observer) error {
	counts, err := oe.collector.GetSubscriberCounts(ctx)
	if err != nil {
		return err
	}

	for transport, count := range counts {
		observer.Observe(count, metric.WithAttributes(
			attribute.String("stream.transport", transport),
		))
	}
	return nil
}

func (oe *OTelExporter) observeClients(ctx context.Context, observer metric.Int64Observer) error {
	clients, err := oe.collector.GetCachedClients(ctx)
	if err != nil {
		return err
	}
	observer.Observe(clients)
	return nil
}

func (oe *OTelExporter) observeIngested(ctx context.Context, observer metric.Int64Observer) error {
	counts, err := oe.collector.GetIngestCounts(ctx)
	if err != nil {
		return err
	}

	for outcome, count := range counts {
		observer.Observe(count, metric.WithAttributes(
			attribute.String("outcome", outcome),
		))
	}
	return nil
}

// Handler serves Prometheus-formatted metrics from the exporter's registry
func (oe *OTelExporter) Handler() http.Handler {
	return promhttp.HandlerFor(oe.gatherer, promhttp.HandlerOpts{})
}

// Shutdown gracefully shuts down the meter provider
func (oe *OTelExporter) Shutdown(ctx context.Context) error {
	if oe.meterProvider != nil {
		return oe.meterProvider.Shutdown(ctx)
	}
	return nil
}
