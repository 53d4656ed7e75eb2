package observe

import (
	"context"
	"io"
	"testing"

	"github.com/jonwraymond/pagetel/page"
)

// BenchmarkLogger_Info measures logging throughput.
func BenchmarkLogger_Info(b *testing.B) {
	logger := NewLoggerWithWriter("info", "json", io.Discard)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info(ctx, "benchmark message", Field{Key: "iteration", Value: i})
	}
}

// BenchmarkLogger_Info_Redacted measures logging with a redacted field.
func BenchmarkLogger_Info_Redacted(b *testing.B) {
	logger := NewLoggerWithWriter("info", "json", io.Discard)
	ctx := context.Background()
	fields := []Field{
		{Key: "endpoint", Value: "https://example.com/otlp/v1/logs"},
		{Key: "authorization", Value: "Bearer abc123"},
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info(ctx, "benchmark message", fields...)
	}
}

// BenchmarkNewResource measures resource construction with browser detection.
func BenchmarkNewResource(b *testing.B) {
	ctx := context.Background()
	id := testIdentity()
	det := BrowserDetector(page.Navigator{Platform: "macOS", Brands: []string{"Chromium"}}, id.UserAgent)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := NewResource(ctx, id, det); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkTransport_Headers measures header copies handed to exporters.
func BenchmarkTransport_Headers(b *testing.B) {
	tr, err := NewTransport("https://example.com", "abc123")
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = tr.Headers()
	}
}
