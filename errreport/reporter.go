package errreport

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/log"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/jonwraymond/pagetel/observe"
	"github.com/jonwraymond/pagetel/page"
)

// ScopeName is the logger scope used for error records.
const ScopeName = "logs"

// ErrorType is the fixed error.type classifier on every record.
const ErrorType = "500"

// ErrorEvent is an uncaught error delivered by the page.
type ErrorEvent struct {
	// Message is the human-readable event message, used as the record body.
	Message string
	// Error is the thrown value; it may be anything, including nil.
	Error any

	Filename string
	Line     int
	Column   int
}

// Target delivers uncaught error events.
type Target interface {
	OnError(fn func(ErrorEvent)) page.Subscription
}

// Dispatcher is an in-process Target.
type Dispatcher struct {
	d page.Dispatcher[ErrorEvent]
}

// OnError implements Target.
func (d *Dispatcher) OnError(fn func(ErrorEvent)) page.Subscription {
	return d.d.Subscribe(fn)
}

// Dispatch delivers ev to every listener.
func (d *Dispatcher) Dispatch(ev ErrorEvent) {
	d.d.Dispatch(ev)
}

// Listeners returns the number of installed listeners.
func (d *Dispatcher) Listeners() int {
	return d.d.Len()
}

// Reporter emits uncaught errors as log records.
//
// Contract:
// - Concurrency: safe for concurrent use.
// - Errors: Report never panics and never returns an error.
type Reporter struct {
	logger  log.Logger
	locator page.Locator
	diag    observe.Logger
	now     func() time.Time
}

// Option customizes a Reporter.
type Option func(*Reporter)

// WithDiagnostics sets the logger that also receives every event.
func WithDiagnostics(l observe.Logger) Option {
	return func(r *Reporter) {
		if l != nil {
			r.diag = l
		}
	}
}

// WithClock overrides the record timestamp source.
func WithClock(now func() time.Time) Option {
	return func(r *Reporter) {
		if now != nil {
			r.now = now
		}
	}
}

// NewReporter creates a reporter emitting on the logs scope of lp. URL
// attributes are read from loc when each record is emitted.
func NewReporter(lp log.LoggerProvider, loc page.Locator, opts ...Option) (*Reporter, error) {
	if lp == nil {
		return nil, ErrNilLoggerProvider
	}
	if loc == nil {
		return nil, ErrNilLocator
	}
	r := &Reporter{
		logger:  lp.Logger(ScopeName),
		locator: loc,
		diag:    observe.NopLogger(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Listen installs the reporter as a listener on target.
func (r *Reporter) Listen(target Target) page.Subscription {
	return target.OnError(func(ev ErrorEvent) {
		r.Report(context.Background(), ev)
	})
}

// Report emits one ERROR record for ev.
func (r *Reporter) Report(ctx context.Context, ev ErrorEvent) {
	thrown := Classify(ev.Error)
	exc := exceptionAttributes(thrown)

	r.diag.Error(ctx, "uncaught error", diagnosticFields(ev, exc)...)

	loc := r.locator.Location()

	var rec log.Record
	rec.SetTimestamp(r.now())
	rec.SetSeverity(log.SeverityError)
	rec.SetSeverityText("ERROR")
	rec.SetBody(log.StringValue(ev.Message))
	rec.AddAttributes(log.String(string(semconv.ErrorTypeKey), ErrorType))
	rec.AddAttributes(exc...)
	rec.AddAttributes(
		log.String(string(semconv.URLFullKey), loc.Href),
		log.String(string(semconv.URLPathKey), loc.Pathname),
		log.String(string(semconv.URLQueryKey), loc.Search),
		log.String(string(semconv.URLFragmentKey), loc.Hash),
	)

	r.logger.Emit(ctx, rec)
}

// exceptionAttributes returns the optional exception.* attributes for t.
func exceptionAttributes(t Thrown) []log.KeyValue {
	switch x := t.(type) {
	case Structured:
		attrs := []log.KeyValue{}
		if x.Name != "" {
			attrs = append(attrs, log.String(string(semconv.ExceptionTypeKey), x.Name))
		}
		attrs = append(attrs, log.String(string(semconv.ExceptionMessageKey), x.Message))
		if x.Stack != "" {
			attrs = append(attrs, log.String(string(semconv.ExceptionStacktraceKey), x.Stack))
		}
		return attrs
	case StringLike:
		return []log.KeyValue{log.String(string(semconv.ExceptionMessageKey), x.Value)}
	default:
		return nil
	}
}

func diagnosticFields(ev ErrorEvent, exc []log.KeyValue) []observe.Field {
	fields := []observe.Field{{Key: "message", Value: ev.Message}}
	if ev.Filename != "" {
		fields = append(fields,
			observe.Field{Key: "filename", Value: ev.Filename},
			observe.Field{Key: "line", Value: ev.Line},
			observe.Field{Key: "column", Value: ev.Column},
		)
	}
	for _, kv := range exc {
		if kv.Key == string(semconv.ExceptionStacktraceKey) {
			continue
		}
		fields = append(fields, observe.Field{Key: kv.Key, Value: kv.Value.AsString()})
	}
	return fields
}
