package observe

import (
	"go.opentelemetry.io/otel/log"
	lognoop "go.opentelemetry.io/otel/log/noop"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// Providers is the set of telemetry providers handed to every consumer.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Ownership: consumers must not shut providers down; the creator owns them.
// - Nil: methods never return nil.
type Providers interface {
	TracerProvider() trace.TracerProvider
	MeterProvider() metric.MeterProvider
	LoggerProvider() log.LoggerProvider
	Propagator() propagation.TextMapPropagator
}

// ProviderSet is a Providers built from explicit values. Nil fields fall back
// to no-op implementations.
type ProviderSet struct {
	Tracers     trace.TracerProvider
	Meters      metric.MeterProvider
	Loggers     log.LoggerProvider
	Propagation propagation.TextMapPropagator
}

func (p ProviderSet) TracerProvider() trace.TracerProvider {
	if p.Tracers == nil {
		return tracenoop.NewTracerProvider()
	}
	return p.Tracers
}

func (p ProviderSet) MeterProvider() metric.MeterProvider {
	if p.Meters == nil {
		return metricnoop.NewMeterProvider()
	}
	return p.Meters
}

func (p ProviderSet) LoggerProvider() log.LoggerProvider {
	if p.Loggers == nil {
		return lognoop.NewLoggerProvider()
	}
	return p.Loggers
}

func (p ProviderSet) Propagator() propagation.TextMapPropagator {
	if p.Propagation == nil {
		return propagation.NewCompositeTextMapPropagator()
	}
	return p.Propagation
}

// Noop returns providers that record nothing and propagate nothing. They
// stand in for providers that have not been constructed yet.
func Noop() Providers {
	return ProviderSet{}
}

// NewPropagator returns the W3C trace-context plus baggage propagator.
func NewPropagator() propagation.TextMapPropagator {
	return propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	)
}

var (
	_ Providers = ProviderSet{}
	_ Providers = (*Telemetry)(nil)
)
