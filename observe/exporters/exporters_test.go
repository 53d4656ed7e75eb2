package exporters

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func otlpTarget(path string) Target {
	return Target{
		URL:     "https://example.com/otlp/v1/" + path,
		Headers: map[string]string{"Authorization": "Bearer abc123"},
		Timeout: 10 * time.Second,
		Retry: Retry{
			Enabled:         true,
			InitialInterval: 5 * time.Second,
			MaxInterval:     30 * time.Second,
			MaxElapsedTime:  time.Minute,
		},
	}
}

// TestExporter_InvalidName verifies unknown exporter name returns error.
func TestExporter_InvalidName(t *testing.T) {
	_, err := NewSpanExporter(context.Background(), "jaeger", Target{})
	if err == nil {
		t.Fatal("expected error for invalid exporter name")
	}
	if !strings.Contains(strings.ToLower(err.Error()), "unknown exporter") {
		t.Errorf("expected error to contain 'unknown exporter', got: %v", err)
	}
}

// TestExporter_ConsoleTracing verifies console tracing exporter.
func TestExporter_ConsoleTracing(t *testing.T) {
	for _, name := range []string{"console", "stdout"} {
		exp, err := NewSpanExporter(context.Background(), name, Target{Writer: &bytes.Buffer{}})
		if err != nil {
			t.Fatalf("failed to create %s tracing exporter: %v", name, err)
		}
		if exp == nil {
			t.Fatal("expected non-nil exporter")
		}
	}
}

// TestExporter_ConsoleMetrics verifies console metrics reader.
func TestExporter_ConsoleMetrics(t *testing.T) {
	reader, err := NewMetricReader(context.Background(), "console", Target{Writer: &bytes.Buffer{}}, time.Minute)
	if err != nil {
		t.Fatalf("failed to create console metrics reader: %v", err)
	}
	if reader == nil {
		t.Fatal("expected non-nil reader")
	}
}

// TestExporter_OtlpMissingEndpoint verifies OTLP without a URL fails for every signal.
func TestExporter_OtlpMissingEndpoint(t *testing.T) {
	ctx := context.Background()

	if _, err := NewSpanExporter(ctx, "otlp", Target{}); !errors.Is(err, ErrEndpointNotConfigured) {
		t.Errorf("traces: expected ErrEndpointNotConfigured, got %v", err)
	}
	if _, err := NewMetricReader(ctx, "otlp", Target{}, time.Minute); !errors.Is(err, ErrEndpointNotConfigured) {
		t.Errorf("metrics: expected ErrEndpointNotConfigured, got %v", err)
	}
	if _, err := NewLogExporter(ctx, "otlp", Target{}); !errors.Is(err, ErrEndpointNotConfigured) {
		t.Errorf("logs: expected ErrEndpointNotConfigured, got %v", err)
	}
}

// TestExporter_OtlpWithEndpoint verifies OTLP exporters are built from a target.
func TestExporter_OtlpWithEndpoint(t *testing.T) {
	ctx := context.Background()

	exp, err := NewSpanExporter(ctx, "otlp", otlpTarget("traces"))
	if err != nil {
		t.Fatalf("failed to create OTLP span exporter: %v", err)
	}
	if exp == nil {
		t.Fatal("expected non-nil exporter")
	}
	_ = exp.Shutdown(ctx)

	reader, err := NewMetricReader(ctx, "otlp", otlpTarget("metrics"), time.Minute)
	if err != nil {
		t.Fatalf("failed to create OTLP metric reader: %v", err)
	}
	if reader == nil {
		t.Fatal("expected non-nil reader")
	}

	logExp, err := NewLogExporter(ctx, "otlp", otlpTarget("logs"))
	if err != nil {
		t.Fatalf("failed to create OTLP log exporter: %v", err)
	}
	if logExp == nil {
		t.Fatal("expected non-nil log exporter")
	}
	_ = logExp.Shutdown(ctx)
}

// TestExporter_PrometheusReturnsReader verifies Prometheus metrics reader.
func TestExporter_PrometheusReturnsReader(t *testing.T) {
	reader, err := NewMetricReader(context.Background(), "prometheus", Target{}, 0)
	if err != nil {
		t.Fatalf("failed to create Prometheus reader: %v", err)
	}
	if reader == nil {
		t.Fatal("expected non-nil reader")
	}
}

// TestExporter_NoneReturnsDiscard verifies 'none' returns discarding exporters.
func TestExporter_NoneReturnsDiscard(t *testing.T) {
	ctx := context.Background()

	if exp, err := NewSpanExporter(ctx, "none", Target{}); err != nil || exp == nil {
		t.Fatalf("none span exporter: %v, %v", exp, err)
	}
	if reader, err := NewMetricReader(ctx, "none", Target{}, time.Minute); err != nil || reader == nil {
		t.Fatalf("none metric reader: %v, %v", reader, err)
	}
	if exp, err := NewLogExporter(ctx, "none", Target{}); err != nil || exp == nil {
		t.Fatalf("none log exporter: %v, %v", exp, err)
	}
}

// TestExporter_MetricsInvalidName verifies unknown metrics exporter returns error.
func TestExporter_MetricsInvalidName(t *testing.T) {
	_, err := NewMetricReader(context.Background(), "badvalue", Target{}, time.Minute)
	if err == nil {
		t.Fatal("expected error for invalid metrics exporter name")
	}
	if !strings.Contains(strings.ToLower(err.Error()), "unknown") {
		t.Errorf("expected error to contain 'unknown', got: %v", err)
	}
}

// TestExporter_LogsInvalidName verifies unknown log exporter returns error.
func TestExporter_LogsInvalidName(t *testing.T) {
	_, err := NewLogExporter(context.Background(), "prometheus", Target{})
	if err == nil {
		t.Fatal("expected error for invalid logs exporter name")
	}
}
