// Package observe builds the telemetry pipeline for a page-hosted application.
//
// It merges the resource descriptor shared by all signals, derives the
// same-origin export transport, and constructs the trace, metric and log
// providers on top of the OpenTelemetry SDK. The resulting Telemetry value is
// handed to consumers as a Providers object; global registration is an
// explicit, one-time step.
package observe
