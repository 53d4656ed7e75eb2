package session

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/jonwraymond/pagetel/config"
	"github.com/jonwraymond/pagetel/errreport"
	"github.com/jonwraymond/pagetel/instrument"
	"github.com/jonwraymond/pagetel/observe"
	"github.com/jonwraymond/pagetel/page"
	"github.com/jonwraymond/pagetel/vitals"
)

// Session is one started telemetry pipeline bound to one page load.
//
// Contract:
// - Concurrency: safe for concurrent use.
// - Ownership: the session owns its providers; Close releases them.
// - Errors: Close is idempotent and returns the first error encountered.
type Session struct {
	telemetry *observe.Telemetry
	instr     *instrument.Instrumentation
	tracker   *page.Tracker
	bus       *vitals.Bus
	recorder  *vitals.Recorder
	errors    *errreport.Dispatcher
	reporter  *errreport.Reporter
	logger    observe.Logger
	subs      page.Subscriptions

	closed    atomic.Bool
	closeOnce sync.Once
	closeErr  error
}

// Option customizes Start.
type Option func(*options)

type options struct {
	zap        *zap.Logger
	globals    bool
	telemetry  []observe.Option
	vitalsSrc  []vitals.Source
	errTargets []errreport.Target
}

// WithZap sets the diagnostic zap logger. By default one is built from
// LOG_LEVEL and LOG_FORMAT writing to stderr.
func WithZap(z *zap.Logger) Option {
	return func(o *options) { o.zap = z }
}

// WithoutGlobals skips process-wide registration. The session still works
// through the providers it hands to its consumers.
func WithoutGlobals() Option {
	return func(o *options) { o.globals = false }
}

// WithTelemetryOptions forwards opts to observe.New.
func WithTelemetryOptions(opts ...observe.Option) Option {
	return func(o *options) { o.telemetry = append(o.telemetry, opts...) }
}

// WithVitalsSource subscribes the recorder to src in addition to the
// session's own bus.
func WithVitalsSource(src vitals.Source) Option {
	return func(o *options) { o.vitalsSrc = append(o.vitalsSrc, src) }
}

// WithErrorTarget installs the reporter on t in addition to the session's own
// dispatcher.
func WithErrorTarget(t errreport.Target) Option {
	return func(o *options) { o.errTargets = append(o.errTargets, t) }
}

// TelemetryConfig maps the environment and the page onto an observe.Config.
func TelemetryConfig(env config.Env, pg page.Page) observe.Config {
	batch := func(exporter string) observe.BatchConfig {
		return observe.BatchConfig{
			Exporter:           exporter,
			Timeout:            env.BatchTimeout,
			MaxQueueSize:       env.MaxQueueSize,
			MaxExportBatchSize: env.MaxExportBatchSize,
			ExportTimeout:      env.ExportTimeout,
		}
	}
	return observe.Config{
		ServiceName:    env.AppName,
		ServiceVersion: env.AppVersion,
		Environment:    env.BuildMode,
		UserAgent:      pg.UserAgent,
		Navigator:      pg.Navigator,
		Origin:         pg.Location.Origin,
		APIKey:         env.APIKey,
		Traces:         batch(env.TracesExporter),
		Logs:           batch(env.LogsExporter),
		Metrics: observe.MetricsConfig{
			Exporter:      env.MetricsExporter,
			Interval:      env.MetricInterval,
			ExportTimeout: env.ExportTimeout,
		},
	}
}

// Start validates env, builds the pipelines for pg and attaches every
// consumer. On error nothing is left running.
func Start(ctx context.Context, env config.Env, pg page.Page, opts ...Option) (*Session, error) {
	o := options{globals: true}
	for _, opt := range opts {
		opt(&o)
	}

	if err := env.Validate(); err != nil {
		return nil, err
	}

	z := o.zap
	if z == nil {
		z = observe.NewZap(env.LogLevel, env.LogFormat, os.Stderr)
	}
	diag := observe.FromZap(z)

	telOpts := append([]observe.Option{observe.WithLogger(diag)}, o.telemetry...)
	tel, err := observe.New(ctx, TelemetryConfig(env, pg), telOpts...)
	if err != nil {
		return nil, fmt.Errorf("session: start telemetry: %w", err)
	}

	s := &Session{
		telemetry: tel,
		tracker:   page.NewTracker(pg.Location),
		bus:       vitals.NewBus(),
		errors:    &errreport.Dispatcher{},
		logger:    diag,
	}

	if err := s.attach(z, pg, o); err != nil {
		s.abort(ctx)
		return nil, err
	}

	// Globals go last so a failed Start never leaves them pointing at
	// providers it shut down. Consumers already hold the providers directly.
	if o.globals {
		if err := tel.RegisterGlobal(); err != nil {
			s.abort(ctx)
			return nil, fmt.Errorf("session: register globals: %w", err)
		}
	}

	diag.Info(ctx, "telemetry started",
		observe.Field{Key: "service.name", Value: env.AppName},
		observe.Field{Key: "service.version", Value: env.AppVersion},
		observe.Field{Key: "origin", Value: tel.Transport().Origin()},
		observe.Field{Key: "globals", Value: o.globals},
	)
	return s, nil
}

// attach runs the steps that need fully constructed providers.
func (s *Session) attach(z *zap.Logger, pg page.Page, o options) error {
	instr, err := instrument.Register(s.telemetry,
		instrument.WithLogger(z),
		instrument.WithUserAgent(pg.UserAgent),
	)
	if err != nil {
		return fmt.Errorf("session: register instrumentation: %w", err)
	}
	s.instr = instr

	s.recorder, err = vitals.NewRecorder(s.telemetry.MeterProvider())
	if err != nil {
		return fmt.Errorf("session: create vitals recorder: %w", err)
	}
	s.subs = append(s.subs, s.recorder.Subscribe(s.bus))
	for _, src := range o.vitalsSrc {
		s.subs = append(s.subs, s.recorder.Subscribe(src))
	}

	s.reporter, err = errreport.NewReporter(s.telemetry.LoggerProvider(), s.tracker,
		errreport.WithDiagnostics(s.logger),
	)
	if err != nil {
		return fmt.Errorf("session: create error reporter: %w", err)
	}
	s.subs = append(s.subs, s.reporter.Listen(s.errors))
	for _, t := range o.errTargets {
		s.subs = append(s.subs, s.reporter.Listen(t))
	}

	return nil
}

// abort undoes a partial Start.
func (s *Session) abort(ctx context.Context) {
	s.subs.Unsubscribe()
	_ = s.telemetry.Shutdown(ctx)
}

// Telemetry returns the owned providers.
func (s *Session) Telemetry() *observe.Telemetry { return s.telemetry }

// Instrumentation returns the instrumentation bound to the providers.
func (s *Session) Instrumentation() *instrument.Instrumentation { return s.instr }

// Tracker returns the current page location.
func (s *Session) Tracker() *page.Tracker { return s.tracker }

// Vitals returns the bus the recorder listens on.
func (s *Session) Vitals() *vitals.Bus { return s.bus }

// Recorder returns the web vitals recorder.
func (s *Session) Recorder() *vitals.Recorder { return s.recorder }

// Errors returns the dispatcher the reporter listens on.
func (s *Session) Errors() *errreport.Dispatcher { return s.errors }

// Reporter returns the uncaught error reporter.
func (s *Session) Reporter() *errreport.Reporter { return s.reporter }

// Logger returns the diagnostic logger.
func (s *Session) Logger() observe.Logger { return s.logger }

// Navigate moves the tracked location, so later error records carry the new
// URL.
func (s *Session) Navigate(href string) error {
	return s.tracker.Navigate(href)
}

// Flush exports everything buffered so far.
func (s *Session) Flush(ctx context.Context) error {
	if s.closed.Load() {
		return ErrClosed
	}
	return s.telemetry.ForceFlush(ctx)
}

// Close removes every listener and shuts the providers down, flushing what
// is buffered.
func (s *Session) Close(ctx context.Context) error {
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		s.subs.Unsubscribe()
		s.closeErr = s.telemetry.Shutdown(ctx)
	})
	return s.closeErr
}
