// Package session runs the startup sequence of the page telemetry pipeline.
//
// Start performs every step in a fixed order: configuration checks, the
// resource and transport, the three signal pipelines, instrumentation, the
// web vitals recorder and the uncaught error reporter, and finally one-time
// global registration. Every consumer receives the providers directly, so
// instrumentation never sees a provider that is not fully constructed, and a
// failed Start leaves the process globals untouched.
//
// A Session owns what it starts. Close removes its listeners and shuts the
// providers down.
package session
