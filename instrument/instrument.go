package instrument

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jonwraymond/pagetel/observe"
)

// ScopeName is the instrumentation scope for spans, metrics and bridged logs.
const ScopeName = "github.com/jonwraymond/pagetel/instrument"

// Instrumentation is the set of instrumentation bound to one Providers.
//
// Contract:
// - Concurrency: safe for concurrent use.
// - Ownership: providers stay owned by the caller of Register.
type Instrumentation struct {
	providers observe.Providers
	tracer    trace.Tracer
	longTasks metric.Float64Histogram
	logger    *zap.Logger
	userAgent string
}

// Option customizes Register.
type Option func(*config)

type config struct {
	base      *zap.Logger
	userAgent string
}

// WithLogger sets the zap logger that is teed into the log pipeline.
func WithLogger(z *zap.Logger) Option {
	return func(c *config) { c.base = z }
}

// WithUserAgent sets the user agent recorded on document load spans.
func WithUserAgent(ua string) Option {
	return func(c *config) { c.userAgent = ua }
}

// Register binds instrumentation to p. Call it once per page load, after the
// providers are fully constructed.
func Register(p observe.Providers, opts ...Option) (*Instrumentation, error) {
	if p == nil {
		return nil, ErrNilProviders
	}
	cfg := config{base: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.base == nil {
		cfg.base = zap.NewNop()
	}

	meter := p.MeterProvider().Meter(ScopeName)
	longTasks, err := meter.Float64Histogram("browser.long_task.duration",
		metric.WithDescription("Duration of main-thread tasks longer than 50ms"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("instrument: create long task histogram: %w", err)
	}

	bridge := otelzap.NewCore(ScopeName, otelzap.WithLoggerProvider(p.LoggerProvider()))
	logger := cfg.base.WithOptions(zap.WrapCore(func(c zapcore.Core) zapcore.Core {
		return zapcore.NewTee(c, bridge)
	}))

	return &Instrumentation{
		providers: p,
		tracer:    p.TracerProvider().Tracer(ScopeName),
		longTasks: longTasks,
		logger:    logger,
		userAgent: cfg.userAgent,
	}, nil
}

// Tracer returns the tracer used for page spans.
func (in *Instrumentation) Tracer() trace.Tracer {
	return in.tracer
}

// Logger returns the zap logger whose entries are also emitted as log records.
func (in *Instrumentation) Logger() *zap.Logger {
	return in.logger
}

// Transport wraps base so every request gets a client span, HTTP client
// metrics and propagated trace context. Requests to the collector paths pass
// through untraced. A nil base uses http.DefaultTransport.
func (in *Instrumentation) Transport(base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return otelhttp.NewTransport(base,
		otelhttp.WithTracerProvider(in.providers.TracerProvider()),
		otelhttp.WithMeterProvider(in.providers.MeterProvider()),
		otelhttp.WithPropagators(in.providers.Propagator()),
		otelhttp.WithFilter(func(r *http.Request) bool {
			return !observe.IsExportPath(r.URL.Path)
		}),
	)
}

// Client returns a shallow copy of base with an instrumented transport. A
// nil base starts from an empty client.
func (in *Instrumentation) Client(base *http.Client) *http.Client {
	c := &http.Client{}
	if base != nil {
		*c = *base
	}
	c.Transport = in.Transport(c.Transport)
	return c
}

// LongTask records one main-thread task that blocked for d.
func (in *Instrumentation) LongTask(ctx context.Context, d time.Duration) {
	in.longTasks.Record(ctx, float64(d)/float64(time.Millisecond))
}
