// Package config loads the build-time environment that identifies a page
// application to its telemetry collector.
//
// Required variables are APP_NAME, APP_VERSION and BUILD_MODE. OTLP_API_KEY
// is optional; when set, every exporter sends it as a bearer token. The
// remaining variables tune exporter selection and batching and all have
// defaults.
//
// OTLP_API_KEY may be a secret reference such as
// secretref:file:/run/secrets/otlp_api_key; it is resolved before
// validation.
//
// Load reads the process environment. FromMap is used by builds that have
// no process environment (WebAssembly) and by tests.
package config
