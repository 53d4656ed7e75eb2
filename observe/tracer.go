package observe

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/jonwraymond/pagetel/observe/exporters"
)

// setupTracing builds the tracer provider with a batching span processor
// bound to the traces endpoint.
func setupTracing(ctx context.Context, cfg Config, res *resource.Resource, tr Transport, o options) (*sdktrace.TracerProvider, error) {
	exporter := o.spanExporter
	if exporter == nil {
		var err error
		target := tr.target(SignalTraces, cfg.Traces.ExportTimeout, cfg.Retry)
		exporter, err = exporters.NewSpanExporter(ctx, cfg.Traces.Exporter, target)
		if err != nil {
			return nil, fmt.Errorf("failed to create trace exporter: %w", err)
		}
	}

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithBatcher(exporter,
			sdktrace.WithBatchTimeout(cfg.Traces.Timeout),
			sdktrace.WithMaxQueueSize(cfg.Traces.MaxQueueSize),
			sdktrace.WithMaxExportBatchSize(cfg.Traces.MaxExportBatchSize),
			sdktrace.WithExportTimeout(cfg.Traces.ExportTimeout),
		),
	}
	for _, sp := range o.spanProcessors {
		opts = append(opts, sdktrace.WithSpanProcessor(sp))
	}

	return sdktrace.NewTracerProvider(opts...), nil
}
