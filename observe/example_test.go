package observe_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/jonwraymond/pagetel/observe"
)

func ExampleNew() {
	cfg := observe.Config{
		ServiceName:    "example-app",
		ServiceVersion: "1.0.0",
		Environment:    "development",
		UserAgent:      "Mozilla/5.0",
		Origin:         "https://app.example.com",
		Traces:         observe.BatchConfig{Exporter: "none"},
		Metrics:        observe.MetricsConfig{Exporter: "none"},
		Logs:           observe.BatchConfig{Exporter: "none"},
	}

	ctx := context.Background()
	tel, err := observe.New(ctx, cfg)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	defer func() {
		_ = tel.Shutdown(ctx)
	}()

	fmt.Println(tel.Transport().Endpoint(observe.SignalTraces))
	// Output:
	// https://app.example.com/otlp/v1/traces
}

func ExampleNew_validation() {
	// Missing user agent triggers validation error
	cfg := observe.Config{
		ServiceName:    "example-app",
		ServiceVersion: "1.0.0",
		Environment:    "development",
		Origin:         "https://app.example.com",
	}

	_, err := observe.New(context.Background(), cfg)
	if errors.Is(err, observe.ErrMissingUserAgent) {
		fmt.Println("Caught: missing user agent")
	}
	// Output:
	// Caught: missing user agent
}

func ExampleNewTransport() {
	tr, err := observe.NewTransport("https://app.example.com", "abc123")
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Println(tr.Endpoint(observe.SignalMetrics))
	fmt.Println(tr.Headers()["Authorization"])
	// Output:
	// https://app.example.com/otlp/v1/metrics
	// Bearer abc123
}

func ExampleConfig_Validate() {
	cfg := observe.Config{
		ServiceName:    "my-app",
		ServiceVersion: "1.0.0",
		Environment:    "production",
		UserAgent:      "Mozilla/5.0",
		Metrics:        observe.MetricsConfig{Exporter: "zipkin"},
	}

	if err := cfg.Validate(); errors.Is(err, observe.ErrInvalidMetricsExporter) {
		fmt.Println("Invalid:", err)
	}
	// Output:
	// Invalid: observe: invalid metrics exporter: "zipkin"
}

func ExampleNewLoggerWithWriter() {
	var buf bytes.Buffer
	logger := observe.NewLoggerWithWriter("info", "json", &buf)

	ctx := context.Background()
	logger.Info(ctx, "application started", observe.Field{Key: "version", Value: "1.0.0"})

	fmt.Println("Logged message contains 'application started':", bytes.Contains(buf.Bytes(), []byte("application started")))
	// Output:
	// Logged message contains 'application started': true
}

func ExampleParseLogLevel() {
	levels := []string{"debug", "info", "warn", "error", "unknown"}
	for _, s := range levels {
		level := observe.ParseLogLevel(s)
		fmt.Printf("%s -> %s\n", s, level)
	}
	// Output:
	// debug -> debug
	// info -> info
	// warn -> warn
	// error -> error
	// unknown -> info
}

func ExampleNoop() {
	p := observe.Noop()
	fmt.Println(len(p.Propagator().Fields()))
	// Output:
	// 0
}
