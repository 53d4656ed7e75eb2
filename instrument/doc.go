// Package instrument attaches automatic instrumentation to an injected set
// of telemetry providers: outgoing HTTP calls, document load timing, user
// interactions, long tasks and a zap logger bridged into the log pipeline.
//
// Instrumentation binds to whatever providers it is given. Registering
// against observe.Noop() yields uncorrelated no-op instrumentation, so the
// real providers must be built first.
package instrument
