package config

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"

	"github.com/jonwraymond/pagetel/observe"
	"github.com/jonwraymond/pagetel/secret"
)

// Variable names.
const (
	VarAppName    = "APP_NAME"
	VarAppVersion = "APP_VERSION"
	VarBuildMode  = "BUILD_MODE"
	VarAPIKey     = "OTLP_API_KEY"
)

var (
	appNamePattern    = regexp.MustCompile(`^[a-zA-Z0-9-_]+$`)
	appVersionPattern = regexp.MustCompile(`^\d+\.\d+\.\d+$`)
	apiKeyPattern     = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
)

// Env is the application environment read once at startup.
type Env struct {
	AppName    string `env:"APP_NAME"`
	AppVersion string `env:"APP_VERSION"`
	BuildMode  string `env:"BUILD_MODE"`
	APIKey     string `env:"OTLP_API_KEY"`

	TracesExporter  string `env:"OTEL_TRACES_EXPORTER" envDefault:"otlp"`
	MetricsExporter string `env:"OTEL_METRICS_EXPORTER" envDefault:"otlp"`
	LogsExporter    string `env:"OTEL_LOGS_EXPORTER" envDefault:"otlp"`

	MetricInterval     time.Duration `env:"PAGETEL_METRIC_INTERVAL" envDefault:"60s"`
	BatchTimeout       time.Duration `env:"PAGETEL_BATCH_TIMEOUT" envDefault:"5s"`
	MaxQueueSize       int           `env:"PAGETEL_MAX_QUEUE_SIZE" envDefault:"2048"`
	MaxExportBatchSize int           `env:"PAGETEL_MAX_EXPORT_BATCH_SIZE" envDefault:"512"`
	ExportTimeout      time.Duration `env:"PAGETEL_EXPORT_TIMEOUT" envDefault:"10s"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
}

// Load reads and validates the process environment.
func Load() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("config: parse environment: %w", err)
	}
	if err := e.resolveSecrets(os.LookupEnv); err != nil {
		return Env{}, err
	}
	if err := e.Validate(); err != nil {
		return Env{}, err
	}
	return e, nil
}

// FromMap reads and validates an explicit variable set instead of the
// process environment.
func FromMap(vars map[string]string) (Env, error) {
	var e Env
	if vars == nil {
		vars = map[string]string{}
	}
	if err := env.ParseWithOptions(&e, env.Options{Environment: vars}); err != nil {
		return Env{}, fmt.Errorf("config: parse environment: %w", err)
	}
	lookup := func(k string) (string, bool) {
		v, ok := vars[k]
		return v, ok
	}
	if err := e.resolveSecrets(lookup); err != nil {
		return Env{}, err
	}
	if err := e.Validate(); err != nil {
		return Env{}, err
	}
	return e, nil
}

// resolveSecrets replaces a secretref reference in OTLP_API_KEY with the
// value it points at.
func (e *Env) resolveSecrets(lookup secret.LookupFunc) error {
	if e.APIKey == "" {
		return nil
	}
	key, err := secret.Default(lookup).Resolve(context.Background(), e.APIKey)
	if err != nil {
		return fmt.Errorf("config: resolve %s: %w", VarAPIKey, err)
	}
	e.APIKey = key
	return nil
}

// Validate checks required identity variables in a fixed order and then the
// format of every set value.
func (e *Env) Validate() error {
	e.AppName = strings.TrimSpace(e.AppName)
	e.AppVersion = strings.TrimSpace(e.AppVersion)
	e.BuildMode = strings.TrimSpace(e.BuildMode)
	e.APIKey = strings.TrimSpace(e.APIKey)

	required := []struct {
		name  string
		value string
	}{
		{VarAppName, e.AppName},
		{VarAppVersion, e.AppVersion},
		{VarBuildMode, e.BuildMode},
	}
	for _, r := range required {
		if r.value == "" {
			return &MissingEnvError{Name: r.name}
		}
	}

	if !appNamePattern.MatchString(e.AppName) {
		return &InvalidEnvError{Name: VarAppName, Reason: "must contain only letters, digits, '-' and '_'"}
	}
	if !appVersionPattern.MatchString(e.AppVersion) {
		return &InvalidEnvError{Name: VarAppVersion, Reason: "must be MAJOR.MINOR.PATCH"}
	}
	if e.APIKey != "" && !apiKeyPattern.MatchString(e.APIKey) {
		return &InvalidEnvError{Name: VarAPIKey, Reason: "must contain only letters and digits"}
	}

	if err := observe.ValidateLogLevel(e.LogLevel); err != nil {
		return &InvalidEnvError{Name: "LOG_LEVEL", Reason: "must be one of debug, info, warn or error", Err: err}
	}

	if e.MetricInterval <= 0 {
		return &InvalidEnvError{Name: "PAGETEL_METRIC_INTERVAL", Reason: "must be positive"}
	}
	if e.BatchTimeout <= 0 {
		return &InvalidEnvError{Name: "PAGETEL_BATCH_TIMEOUT", Reason: "must be positive"}
	}
	if e.ExportTimeout <= 0 {
		return &InvalidEnvError{Name: "PAGETEL_EXPORT_TIMEOUT", Reason: "must be positive"}
	}
	if e.MaxQueueSize <= 0 {
		return &InvalidEnvError{Name: "PAGETEL_MAX_QUEUE_SIZE", Reason: "must be positive"}
	}
	if e.MaxExportBatchSize <= 0 || e.MaxExportBatchSize > e.MaxQueueSize {
		return &InvalidEnvError{Name: "PAGETEL_MAX_EXPORT_BATCH_SIZE", Reason: "must be positive and not exceed the queue size"}
	}

	return nil
}
