package observe

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/jonwraymond/pagetel/page"
)

// Defaults applied to zero-valued configuration fields.
const (
	DefaultMetricInterval     = 60 * time.Second
	DefaultBatchTimeout       = 5 * time.Second
	DefaultMaxQueueSize       = 2048
	DefaultMaxExportBatchSize = 512
	DefaultExportTimeout      = 10 * time.Second

	DefaultRetryInitialInterval = 5 * time.Second
	DefaultRetryMaxInterval     = 30 * time.Second
	DefaultRetryMaxElapsedTime  = time.Minute
)

// Config holds all configuration for the telemetry pipeline.
type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string // deployment.environment.name, e.g. production
	UserAgent      string
	Navigator      page.Navigator

	// Origin is the page origin; collector endpoints are mounted on it.
	Origin string
	// APIKey is sent as a bearer token when non-empty.
	APIKey string

	Traces  BatchConfig
	Logs    BatchConfig
	Metrics MetricsConfig
	Retry   RetryConfig
}

// BatchConfig configures a batching export pipeline.
type BatchConfig struct {
	Exporter           string // otlp|console|stdout|none
	Timeout            time.Duration
	MaxQueueSize       int
	MaxExportBatchSize int
	ExportTimeout      time.Duration
}

// MetricsConfig configures the metric pipeline.
type MetricsConfig struct {
	Exporter      string // otlp|console|stdout|prometheus|none
	Interval      time.Duration
	ExportTimeout time.Duration
}

// RetryConfig configures exporter retries. The zero value retries with the
// default intervals.
type RetryConfig struct {
	Disabled        bool
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
}

// DefaultConfig returns a Config with every tuning value set. Identity,
// origin and key are left empty.
func DefaultConfig() Config {
	var c Config
	c.applyDefaults()
	return c
}

// Identity returns the resource identity described by c.
func (c Config) Identity() Identity {
	return Identity{
		ServiceName:    c.ServiceName,
		ServiceVersion: c.ServiceVersion,
		Environment:    c.Environment,
		UserAgent:      c.UserAgent,
	}
}

func (c *Config) applyDefaults() {
	applyBatchDefaults(&c.Traces)
	applyBatchDefaults(&c.Logs)

	if c.Metrics.Exporter == "" {
		c.Metrics.Exporter = "otlp"
	}
	if c.Metrics.Interval == 0 {
		c.Metrics.Interval = DefaultMetricInterval
	}
	if c.Metrics.ExportTimeout == 0 {
		c.Metrics.ExportTimeout = DefaultExportTimeout
	}

	if c.Retry.InitialInterval == 0 {
		c.Retry.InitialInterval = DefaultRetryInitialInterval
	}
	if c.Retry.MaxInterval == 0 {
		c.Retry.MaxInterval = DefaultRetryMaxInterval
	}
	if c.Retry.MaxElapsedTime == 0 {
		c.Retry.MaxElapsedTime = DefaultRetryMaxElapsedTime
	}
}

func applyBatchDefaults(b *BatchConfig) {
	if b.Exporter == "" {
		b.Exporter = "otlp"
	}
	if b.Timeout == 0 {
		b.Timeout = DefaultBatchTimeout
	}
	if b.MaxQueueSize == 0 {
		b.MaxQueueSize = DefaultMaxQueueSize
	}
	if b.MaxExportBatchSize == 0 {
		b.MaxExportBatchSize = DefaultMaxExportBatchSize
	}
	if b.ExportTimeout == 0 {
		b.ExportTimeout = DefaultExportTimeout
	}
}

// Validate validates the configuration. Zero-valued tuning fields are
// accepted; they are defaulted by New.
func (c *Config) Validate() error {
	if err := c.Identity().Validate(); err != nil {
		return err
	}

	if c.Traces.Exporter != "" && !slices.Contains(ValidTracesExporters, c.Traces.Exporter) {
		return fmt.Errorf("%w: %q", ErrInvalidTracesExporter, c.Traces.Exporter)
	}
	if c.Metrics.Exporter != "" && !slices.Contains(ValidMetricsExporters, c.Metrics.Exporter) {
		return fmt.Errorf("%w: %q", ErrInvalidMetricsExporter, c.Metrics.Exporter)
	}
	if c.Logs.Exporter != "" && !slices.Contains(ValidLogsExporters, c.Logs.Exporter) {
		return fmt.Errorf("%w: %q", ErrInvalidLogsExporter, c.Logs.Exporter)
	}

	for name, b := range map[string]BatchConfig{"traces": c.Traces, "logs": c.Logs} {
		if b.Timeout < 0 || b.ExportTimeout < 0 || b.MaxQueueSize < 0 || b.MaxExportBatchSize < 0 {
			return fmt.Errorf("%w: %s values must not be negative", ErrInvalidBatchConfig, name)
		}
		if b.MaxQueueSize > 0 && b.MaxExportBatchSize > b.MaxQueueSize {
			return fmt.Errorf("%w: %s batch size exceeds queue size", ErrInvalidBatchConfig, name)
		}
	}
	if c.Metrics.Interval < 0 || c.Metrics.ExportTimeout < 0 {
		return fmt.Errorf("%w: metrics values must not be negative", ErrInvalidBatchConfig)
	}

	return nil
}

// Telemetry owns the three SDK providers built from one resource and one
// transport.
//
// Contract:
// - Concurrency: safe for concurrent use.
// - Context: ForceFlush and Shutdown honor cancellation/deadlines.
// - Errors: Shutdown is idempotent and returns the first error encountered.
type Telemetry struct {
	resource       *resource.Resource
	transport      Transport
	tracerProvider *sdktrace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
	loggerProvider *sdklog.LoggerProvider
	propagator     propagation.TextMapPropagator
	logger         Logger

	shutdownOnce sync.Once
	shutdownErr  error
}

// Option customizes New.
type Option func(*options)

type options struct {
	spanExporter   sdktrace.SpanExporter
	spanProcessors []sdktrace.SpanProcessor
	metricReader   sdkmetric.Reader
	logExporter    sdklog.Exporter
	logProcessors  []sdklog.Processor
	detectors      []resource.Detector
	logger         Logger
}

// WithSpanExporter replaces the exporter chosen by Config.Traces.Exporter.
func WithSpanExporter(exp sdktrace.SpanExporter) Option {
	return func(o *options) { o.spanExporter = exp }
}

// WithSpanProcessor registers an additional span processor.
func WithSpanProcessor(sp sdktrace.SpanProcessor) Option {
	return func(o *options) { o.spanProcessors = append(o.spanProcessors, sp) }
}

// WithMetricReader replaces the reader chosen by Config.Metrics.Exporter.
func WithMetricReader(r sdkmetric.Reader) Option {
	return func(o *options) { o.metricReader = r }
}

// WithLogExporter replaces the exporter chosen by Config.Logs.Exporter.
func WithLogExporter(exp sdklog.Exporter) Option {
	return func(o *options) { o.logExporter = exp }
}

// WithLogProcessor registers an additional log processor.
func WithLogProcessor(p sdklog.Processor) Option {
	return func(o *options) { o.logProcessors = append(o.logProcessors, p) }
}

// WithDetector adds a resource detector run after the browser detector.
func WithDetector(d resource.Detector) Option {
	return func(o *options) { o.detectors = append(o.detectors, d) }
}

// WithLogger sets the diagnostic logger receiving SDK errors.
func WithLogger(l Logger) Option {
	return func(o *options) { o.logger = l }
}

// New builds the resource, the transport and the three signal pipelines, in
// that order. Nothing is registered globally.
func New(ctx context.Context, cfg Config, opts ...Option) (*Telemetry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	o := options{logger: NopLogger()}
	for _, opt := range opts {
		opt(&o)
	}

	detectors := append([]resource.Detector{BrowserDetector(cfg.Navigator, cfg.UserAgent)}, o.detectors...)
	res, err := NewResource(ctx, cfg.Identity(), detectors...)
	if err != nil {
		return nil, err
	}

	tr, err := NewTransport(cfg.Origin, cfg.APIKey)
	if err != nil {
		return nil, err
	}

	t := &Telemetry{
		resource:   res,
		transport:  tr,
		propagator: NewPropagator(),
		logger:     o.logger,
	}

	t.tracerProvider, err = setupTracing(ctx, cfg, res, tr, o)
	if err != nil {
		return nil, fmt.Errorf("failed to setup tracing: %w", err)
	}

	t.meterProvider, err = setupMetrics(ctx, cfg, res, tr, o)
	if err != nil {
		_ = t.Shutdown(ctx)
		return nil, fmt.Errorf("failed to setup metrics: %w", err)
	}

	t.loggerProvider, err = setupLogs(ctx, cfg, res, tr, o)
	if err != nil {
		_ = t.Shutdown(ctx)
		return nil, fmt.Errorf("failed to setup logs: %w", err)
	}

	return t, nil
}

// Resource returns the resource shared by all three providers.
func (t *Telemetry) Resource() *resource.Resource {
	return t.resource
}

// Transport returns the export transport.
func (t *Telemetry) Transport() Transport {
	return t.transport
}

func (t *Telemetry) TracerProvider() trace.TracerProvider {
	return t.tracerProvider
}

func (t *Telemetry) MeterProvider() metric.MeterProvider {
	return t.meterProvider
}

func (t *Telemetry) LoggerProvider() log.LoggerProvider {
	return t.loggerProvider
}

func (t *Telemetry) Propagator() propagation.TextMapPropagator {
	return t.propagator
}

// Logger returns the diagnostic logger.
func (t *Telemetry) Logger() Logger {
	return t.logger
}

// ForceFlush exports everything buffered by the three providers concurrently.
func (t *Telemetry) ForceFlush(ctx context.Context) error {
	var g errgroup.Group
	if t.tracerProvider != nil {
		g.Go(func() error { return wrap("tracer flush", t.tracerProvider.ForceFlush(ctx)) })
	}
	if t.meterProvider != nil {
		g.Go(func() error { return wrap("meter flush", t.meterProvider.ForceFlush(ctx)) })
	}
	if t.loggerProvider != nil {
		g.Go(func() error { return wrap("logger flush", t.loggerProvider.ForceFlush(ctx)) })
	}
	return g.Wait()
}

// Shutdown flushes and stops the three providers concurrently.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	t.shutdownOnce.Do(func() {
		var g errgroup.Group
		if t.tracerProvider != nil {
			g.Go(func() error { return wrap("tracer shutdown", t.tracerProvider.Shutdown(ctx)) })
		}
		if t.meterProvider != nil {
			g.Go(func() error { return wrap("meter shutdown", t.meterProvider.Shutdown(ctx)) })
		}
		if t.loggerProvider != nil {
			g.Go(func() error { return wrap("logger shutdown", t.loggerProvider.Shutdown(ctx)) })
		}
		t.shutdownErr = g.Wait()
	})
	return t.shutdownErr
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}
