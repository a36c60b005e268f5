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

var (
	promReaderFactory = prometheusComponents
	otlpReaderFactory = buildOTLPReader
	instrumentFactory = newOtelInstruments
)

// TelemetryConfig controls how metrics are exported.
type TelemetryConfig struct {
	Enabled      bool
	Port         string
	ServiceName  string
	OtlpEndpoint string
	OtlpInsecure bool
}

// Setup configures OpenTelemetry metrics with a Prometheus exporter and
// optional OTLP exporter. It returns a Recorder, the Prometheus HTTP
// handler, and a shutdown function.
func Setup(ctx context.Context, cfg TelemetryConfig) (*Recorder, http.Handler, func(context.Context) error, error) {
	if !cfg.Enabled {
		return NewRecorder(), nil, func(context.Context) error { return nil }, nil
	}

	if cfg.ServiceName == "" {
		cfg.ServiceName = "live-markets-service"
	}

	promReader, promHandler, err := promReaderFactory()
	if err != nil {
		return nil, nil, nil, err
	}

	opts := []sdkmetric.Option{sdkmetric.WithReader(promReader)}

	if cfg.OtlpEndpoint != "" {
		otlpReader, err := otlpReaderFactory(ctx, cfg.OtlpEndpoint, cfg.OtlpInsecure)
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

	otelInst, err := instrumentFactory(provider)
	if err != nil {
		return nil, nil, nil, err
	}

	rec := newRecorder(otelInst)
	shutdown := func(c context.Context) error {
		return provider.Shutdown(c)
	}

	return rec, promHandler, shutdown, nil
}

func buildOTLPReader(ctx context.Context, endpoint string, insecure bool) (sdkmetric.Reader, error) {
	otlpOpts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(endpoint)}
	if insecure {
		otlpOpts = append(otlpOpts, otlpmetrichttp.WithInsecure())
	}
	otlpExp, err := otlpmetrichttp.New(ctx, otlpOpts...)
	if err != nil {
		return nil, err
	}
	return sdkmetric.NewPeriodicReader(otlpExp, sdkmetric.WithInterval(15*time.Second)), nil
}

type otelInstruments struct {
	ctx             context.Context
	meter           metric.Meter
	fetchAttempts   metric.Int64Counter
	fetchErrors     metric.Int64Counter
	fetchLatencyMs  metric.Float64Histogram
	cycles          metric.Int64Counter
	cycleErrors     metric.Int64Counter
	cycleLatencyMs  metric.Float64Histogram
	recordsWritten  metric.Int64Counter
	persistErrors   metric.Int64Counter
	integrityIssues metric.Int64Counter
	evictedRecords  metric.Int64Counter
}

func prometheusComponents() (sdkmetric.Reader, http.Handler, error) {
	reg := prometheus.NewRegistry()
	promExp, err := promexporter.New(promexporter.WithRegisterer(reg))
	if err != nil {
		return nil, nil, err
	}
	return promExp, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), nil
}

func newOtelInstruments(provider metric.MeterProvider) (*otelInstruments, error) {
	meter := provider.Meter("live-markets-service")
	ctx := context.Background()

	fetchAttempts, err := meter.Int64Counter("feed_fetch_attempts_total")
	if err != nil {
		return nil, err
	}
	fetchErrors, err := meter.Int64Counter("feed_fetch_errors_total")
	if err != nil {
		return nil, err
	}
	fetchLatency, err := meter.Float64Histogram("feed_fetch_duration_ms")
	if err != nil {
		return nil, err
	}
	cycles, err := meter.Int64Counter("refresh_cycles_total")
	if err != nil {
		return nil, err
	}
	cycleErrors, err := meter.Int64Counter("refresh_cycle_errors_total")
	if err != nil {
		return nil, err
	}
	cycleLatency, err := meter.Float64Histogram("refresh_cycle_duration_ms")
	if err != nil {
		return nil, err
	}
	recordsWritten, err := meter.Int64Counter("records_persisted_total")
	if err != nil {
		return nil, err
	}
	persistErrors, err := meter.Int64Counter("persist_errors_total")
	if err != nil {
		return nil, err
	}
	integrityIssues, err := meter.Int64Counter("integrity_issues_total")
	if err != nil {
		return nil, err
	}
	evictedRecords, err := meter.Int64Counter("evicted_records_total")
	if err != nil {
		return nil, err
	}

	return &otelInstruments{
		ctx:             ctx,
		meter:           meter,
		fetchAttempts:   fetchAttempts,
		fetchErrors:     fetchErrors,
		fetchLatencyMs:  fetchLatency,
		cycles:          cycles,
		cycleErrors:     cycleErrors,
		cycleLatencyMs:  cycleLatency,
		recordsWritten:  recordsWritten,
		persistErrors:   persistErrors,
		integrityIssues: integrityIssues,
		evictedRecords:  evictedRecords,
	}, nil
}

func (o *otelInstruments) recordFetchAttempt(endpoint string, duration time.Duration, err error) {
	if o == nil {
		return
	}
	attrs := []attribute.KeyValue{attribute.String(AttrEndpoint, endpoint)}
	o.recordCounter(o.fetchAttempts, 1, attrs...)
	o.recordHistogram(o.fetchLatencyMs, float64(duration.Milliseconds()), attrs...)
	if err != nil {
		o.recordCounter(o.fetchErrors, 1, attrs...)
	}
}

func (o *otelInstruments) recordCycle(duration time.Duration, err error) {
	if o == nil {
		return
	}
	o.recordCounter(o.cycles, 1)
	o.recordHistogram(o.cycleLatencyMs, float64(duration.Milliseconds()))
	if err != nil {
		o.recordCounter(o.cycleErrors, 1)
	}
}

func (o *otelInstruments) recordPersisted(sport, kind string, count int) {
	if o == nil || count <= 0 {
		return
	}
	o.recordCounter(o.recordsWritten, int64(count),
		attribute.String(AttrSport, sport),
		attribute.String(AttrKind, kind))
}

func (o *otelInstruments) recordPersistError(sink string) {
	if o == nil {
		return
	}
	o.recordCounter(o.persistErrors, 1, attribute.String(AttrSink, sink))
}

func (o *otelInstruments) recordIntegrityIssues(sport string, count int) {
	if o == nil {
		return
	}
	o.recordCounter(o.integrityIssues, int64(count), attribute.String(AttrSport, sport))
}

func (o *otelInstruments) recordEviction(target string, count int) {
	if o == nil {
		return
	}
	o.recordCounter(o.evictedRecords, int64(count), attribute.String(AttrTarget, target))
}

func (o *otelInstruments) recordCounter(counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if o == nil {
		return
	}
	counter.Add(o.ctx, value, metric.WithAttributes(attrs...))
}

func (o *otelInstruments) recordHistogram(hist metric.Float64Histogram, value float64, attrs ...attribute.KeyValue) {
	if o == nil {
		return
	}
	hist.Record(o.ctx, value, metric.WithAttributes(attrs...))
}
