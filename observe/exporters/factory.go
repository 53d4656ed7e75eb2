// Package exporters provides factory functions for creating OpenTelemetry exporters.
package exporters

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutlog"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// ErrEndpointNotConfigured indicates an otlp exporter was requested without a URL.
var ErrEndpointNotConfigured = errors.New("exporters: endpoint not configured")

// Retry configures exporter retries for transient failures.
type Retry struct {
	Enabled         bool
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
}

// Target describes where and how a signal is exported.
type Target struct {
	// URL is the full OTLP/HTTP endpoint, e.g. https://example.com/otlp/v1/traces.
	URL string

	// Headers are sent with every export request.
	Headers map[string]string

	// Timeout bounds a single export request. Zero keeps the exporter default.
	Timeout time.Duration

	Retry Retry

	// Writer receives console output. Defaults to os.Stdout.
	Writer io.Writer
}

// headers is never nil so the OTEL_EXPORTER_OTLP_*_HEADERS environment
// variables cannot add to or replace the configured set.
func (t Target) headers() map[string]string {
	h := make(map[string]string, len(t.Headers))
	for k, v := range t.Headers {
		h[k] = v
	}
	return h
}

func (t Target) writer() io.Writer {
	if t.Writer != nil {
		return t.Writer
	}
	return os.Stdout
}

// NewSpanExporter creates a span exporter based on the exporter name.
// Supported exporters: otlp, console, stdout, none
func NewSpanExporter(ctx context.Context, name string, target Target) (sdktrace.SpanExporter, error) {
	switch name {
	case "otlp":
		if target.URL == "" {
			return nil, fmt.Errorf("traces: %w", ErrEndpointNotConfigured)
		}
		opts := []otlptracehttp.Option{
			otlptracehttp.WithEndpointURL(target.URL),
			otlptracehttp.WithHeaders(target.headers()),
			otlptracehttp.WithRetry(otlptracehttp.RetryConfig{
				Enabled:         target.Retry.Enabled,
				InitialInterval: target.Retry.InitialInterval,
				MaxInterval:     target.Retry.MaxInterval,
				MaxElapsedTime:  target.Retry.MaxElapsedTime,
			}),
		}
		if target.Timeout > 0 {
			opts = append(opts, otlptracehttp.WithTimeout(target.Timeout))
		}
		return otlptracehttp.New(ctx, opts...)

	case "console", "stdout":
		return stdouttrace.New(stdouttrace.WithWriter(target.writer()))

	case "none", "":
		// Discard everything; the provider still produces valid span contexts.
		return stdouttrace.New(stdouttrace.WithWriter(io.Discard))

	default:
		return nil, fmt.Errorf("unknown exporter: %q", name)
	}
}

// NewMetricReader creates a metric reader based on the exporter name.
// Push exporters are wrapped in a periodic reader with the given interval.
// Supported exporters: otlp, console, stdout, prometheus, none
func NewMetricReader(ctx context.Context, name string, target Target, interval time.Duration) (sdkmetric.Reader, error) {
	var readerOpts []sdkmetric.PeriodicReaderOption
	if interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(interval))
	}
	if target.Timeout > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithTimeout(target.Timeout))
	}

	switch name {
	case "otlp":
		if target.URL == "" {
			return nil, fmt.Errorf("metrics: %w", ErrEndpointNotConfigured)
		}
		opts := []otlpmetrichttp.Option{
			otlpmetrichttp.WithEndpointURL(target.URL),
			otlpmetrichttp.WithHeaders(target.headers()),
			otlpmetrichttp.WithRetry(otlpmetrichttp.RetryConfig{
				Enabled:         target.Retry.Enabled,
				InitialInterval: target.Retry.InitialInterval,
				MaxInterval:     target.Retry.MaxInterval,
				MaxElapsedTime:  target.Retry.MaxElapsedTime,
			}),
		}
		if target.Timeout > 0 {
			opts = append(opts, otlpmetrichttp.WithTimeout(target.Timeout))
		}
		exp, err := otlpmetrichttp.New(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP metrics exporter: %w", err)
		}
		return sdkmetric.NewPeriodicReader(exp, readerOpts...), nil

	case "console", "stdout":
		exp, err := stdoutmetric.New(stdoutmetric.WithWriter(target.writer()))
		if err != nil {
			return nil, fmt.Errorf("failed to create stdout metrics exporter: %w", err)
		}
		return sdkmetric.NewPeriodicReader(exp, readerOpts...), nil

	case "prometheus":
		exp, err := prometheus.New()
		if err != nil {
			return nil, fmt.Errorf("failed to create Prometheus exporter: %w", err)
		}
		return exp, nil

	case "none", "":
		exp, err := stdoutmetric.New(stdoutmetric.WithWriter(io.Discard))
		if err != nil {
			return nil, err
		}
		return sdkmetric.NewPeriodicReader(exp, readerOpts...), nil

	default:
		return nil, fmt.Errorf("unknown metrics exporter: %q", name)
	}
}

// NewLogExporter creates a log record exporter based on the exporter name.
// Supported exporters: otlp, console, stdout, none
func NewLogExporter(ctx context.Context, name string, target Target) (sdklog.Exporter, error) {
	switch name {
	case "otlp":
		if target.URL == "" {
			return nil, fmt.Errorf("logs: %w", ErrEndpointNotConfigured)
		}
		opts := []otlploghttp.Option{
			otlploghttp.WithEndpointURL(target.URL),
			otlploghttp.WithHeaders(target.headers()),
			otlploghttp.WithRetry(otlploghttp.RetryConfig{
				Enabled:         target.Retry.Enabled,
				InitialInterval: target.Retry.InitialInterval,
				MaxInterval:     target.Retry.MaxInterval,
				MaxElapsedTime:  target.Retry.MaxElapsedTime,
			}),
		}
		if target.Timeout > 0 {
			opts = append(opts, otlploghttp.WithTimeout(target.Timeout))
		}
		return otlploghttp.New(ctx, opts...)

	case "console", "stdout":
		return stdoutlog.New(stdoutlog.WithWriter(target.writer()))

	case "none", "":
		return stdoutlog.New(stdoutlog.WithWriter(io.Discard))

	default:
		return nil, fmt.Errorf("unknown logs exporter: %q", name)
	}
}
