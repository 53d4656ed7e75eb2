package observe

import (
	"context"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/log/global"
)

// globals guards the process-wide provider slots.
var globals = &registry{install: installGlobal}

type registry struct {
	registered atomic.Bool
	install    func(*Telemetry)
}

func (r *registry) register(t *Telemetry) error {
	if t == nil {
		return ErrNilTelemetry
	}
	if !r.registered.CompareAndSwap(false, true) {
		return ErrAlreadyRegistered
	}
	r.install(t)
	return nil
}

// RegisterGlobal installs the propagator, the three providers and the SDK
// error handler as process globals in one step. It succeeds once per
// process; later calls return ErrAlreadyRegistered and change nothing.
func (t *Telemetry) RegisterGlobal() error {
	return globals.register(t)
}

func installGlobal(t *Telemetry) {
	otel.SetTextMapPropagator(t.propagator)
	otel.SetTracerProvider(t.tracerProvider)
	otel.SetMeterProvider(t.meterProvider)
	global.SetLoggerProvider(t.loggerProvider)
	otel.SetErrorHandler(errorHandler(t.logger))
}

// errorHandler routes SDK errors such as failed exports to the diagnostic
// logger. They are never surfaced to callers.
func errorHandler(l Logger) otel.ErrorHandler {
	return otel.ErrorHandlerFunc(func(err error) {
		l.Warn(context.Background(), "telemetry error", Field{Key: "error", Value: err.Error()})
	})
}
