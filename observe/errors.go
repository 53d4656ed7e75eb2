package observe

import "errors"

// Resource errors.
var (
	// ErrMissingServiceName indicates Identity.ServiceName is empty.
	ErrMissingServiceName = errors.New("observe: service name is required")

	// ErrMissingServiceVersion indicates Identity.ServiceVersion is empty.
	ErrMissingServiceVersion = errors.New("observe: service version is required")

	// ErrMissingEnvironment indicates Identity.Environment is empty.
	ErrMissingEnvironment = errors.New("observe: deployment environment is required")

	// ErrMissingUserAgent indicates Identity.UserAgent is empty.
	ErrMissingUserAgent = errors.New("observe: user agent is required")
)

// Configuration errors.
var (
	// ErrInvalidOrigin indicates the page origin is not an absolute http(s) origin.
	ErrInvalidOrigin = errors.New("observe: invalid origin")

	// ErrInvalidTracesExporter indicates an unknown trace exporter name.
	ErrInvalidTracesExporter = errors.New("observe: invalid traces exporter")

	// ErrInvalidMetricsExporter indicates an unknown metrics exporter name.
	ErrInvalidMetricsExporter = errors.New("observe: invalid metrics exporter")

	// ErrInvalidLogsExporter indicates an unknown logs exporter name.
	ErrInvalidLogsExporter = errors.New("observe: invalid logs exporter")

	// ErrInvalidBatchConfig indicates a negative or inconsistent batch setting.
	ErrInvalidBatchConfig = errors.New("observe: invalid batch configuration")

	// ErrInvalidLogLevel indicates an unknown log level.
	ErrInvalidLogLevel = errors.New("observe: invalid log level")
)

// Runtime errors.
var (
	// ErrAlreadyRegistered indicates global providers were already installed
	// by an earlier RegisterGlobal call.
	ErrAlreadyRegistered = errors.New("observe: global providers already registered")

	// ErrNilTelemetry indicates a nil Telemetry was provided.
	ErrNilTelemetry = errors.New("observe: telemetry is nil")
)

// ValidTracesExporters lists valid trace exporter names.
var ValidTracesExporters = []string{"otlp", "console", "stdout", "none"}

// ValidMetricsExporters lists valid metrics exporter names.
var ValidMetricsExporters = []string{"otlp", "console", "stdout", "prometheus", "none"}

// ValidLogsExporters lists valid log exporter names.
var ValidLogsExporters = []string{"otlp", "console", "stdout", "none"}

// ValidLogLevels lists valid log level names.
var ValidLogLevels = []string{"debug", "info", "warn", "error", ""}

// RedactedFields lists field keys that are automatically redacted in logs.
// These fields may contain credentials sent to the collector.
var RedactedFields = []string{
	"authorization",
	"password",
	"secret",
	"token",
	"api_key",
	"apiKey",
	"credential",
	"headers",
}
