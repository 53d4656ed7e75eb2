// Package observetest provides in-memory telemetry providers for tests.
package observetest

import (
	"context"
	"sync"
	"testing"

	"go.opentelemetry.io/otel/log"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/jonwraymond/pagetel/observe"
)

// LogExporter keeps exported log records in memory.
type LogExporter struct {
	mu      sync.Mutex
	records []sdklog.Record
}

// Export implements sdklog.Exporter.
func (e *LogExporter) Export(_ context.Context, records []sdklog.Record) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, r := range records {
		e.records = append(e.records, r.Clone())
	}
	return nil
}

func (e *LogExporter) Shutdown(context.Context) error   { return nil }
func (e *LogExporter) ForceFlush(context.Context) error { return nil }

// Records returns a copy of everything exported so far.
func (e *LogExporter) Records() []sdklog.Record {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]sdklog.Record, len(e.records))
	copy(out, e.records)
	return out
}

// Providers is an observe.Providers backed by in-memory SDK components.
// Spans are recorded synchronously, metrics are read on demand and log
// records are exported through a simple processor.
type Providers struct {
	observe.ProviderSet

	Spans   *tracetest.SpanRecorder
	Metrics *sdkmetric.ManualReader
	Logs    *LogExporter

	tracerProvider *sdktrace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
	loggerProvider *sdklog.LoggerProvider
}

// New creates in-memory providers sharing res. A nil res uses the SDK default.
func New(res *resource.Resource) *Providers {
	if res == nil {
		res = resource.Default()
	}

	spans := tracetest.NewSpanRecorder()
	reader := sdkmetric.NewManualReader()
	logs := &LogExporter{}

	tp := sdktrace.NewTracerProvider(sdktrace.WithResource(res), sdktrace.WithSpanProcessor(spans))
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithResource(res), sdkmetric.WithReader(reader))
	lp := sdklog.NewLoggerProvider(sdklog.WithResource(res), sdklog.WithProcessor(sdklog.NewSimpleProcessor(logs)))

	return &Providers{
		ProviderSet: observe.ProviderSet{
			Tracers:     tp,
			Meters:      mp,
			Loggers:     lp,
			Propagation: observe.NewPropagator(),
		},
		Spans:          spans,
		Metrics:        reader,
		Logs:           logs,
		tracerProvider: tp,
		meterProvider:  mp,
		loggerProvider: lp,
	}
}

// Shutdown stops the three providers.
func (p *Providers) Shutdown(ctx context.Context) {
	_ = p.tracerProvider.Shutdown(ctx)
	_ = p.meterProvider.Shutdown(ctx)
	_ = p.loggerProvider.Shutdown(ctx)
}

// Collect reads the current metric state.
func (p *Providers) Collect(tb testing.TB) metricdata.ResourceMetrics {
	tb.Helper()
	var rm metricdata.ResourceMetrics
	if err := p.Metrics.Collect(context.Background(), &rm); err != nil {
		tb.Fatalf("failed to collect metrics: %v", err)
	}
	return rm
}

// SpanByName returns the first ended span named name, or nil.
func (p *Providers) SpanByName(name string) sdktrace.ReadOnlySpan {
	for _, span := range p.Spans.Ended() {
		if span.Name() == name {
			return span
		}
	}
	return nil
}

// FindMetric finds a metric by name in the collected resource metrics.
func FindMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

// FindScope returns the scope name owning metric name, or "".
func FindScope(rm metricdata.ResourceMetrics, name string) string {
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == name {
				return sm.Scope.Name
			}
		}
	}
	return ""
}

// RecordAttr returns the value of the log record attribute key.
func RecordAttr(r sdklog.Record, key string) (log.Value, bool) {
	var (
		found log.Value
		ok    bool
	)
	r.WalkAttributes(func(kv log.KeyValue) bool {
		if kv.Key == key {
			found, ok = kv.Value, true
			return false
		}
		return true
	})
	return found, ok
}

// RecordAttrKeys returns the record's attribute keys in emission order.
func RecordAttrKeys(r sdklog.Record) []string {
	var keys []string
	r.WalkAttributes(func(kv log.KeyValue) bool {
		keys = append(keys, kv.Key)
		return true
	})
	return keys
}
