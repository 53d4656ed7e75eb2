package observe

import (
	"context"
	"fmt"

	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"

	"github.com/jonwraymond/pagetel/observe/exporters"
)

// setupLogs builds the logger provider with a batching processor bound to
// the logs endpoint.
func setupLogs(ctx context.Context, cfg Config, res *resource.Resource, tr Transport, o options) (*sdklog.LoggerProvider, error) {
	exporter := o.logExporter
	if exporter == nil {
		var err error
		target := tr.target(SignalLogs, cfg.Logs.ExportTimeout, cfg.Retry)
		exporter, err = exporters.NewLogExporter(ctx, cfg.Logs.Exporter, target)
		if err != nil {
			return nil, fmt.Errorf("failed to create log exporter: %w", err)
		}
	}

	opts := []sdklog.LoggerProviderOption{
		sdklog.WithResource(res),
		sdklog.WithProcessor(sdklog.NewBatchProcessor(exporter,
			sdklog.WithExportInterval(cfg.Logs.Timeout),
			sdklog.WithMaxQueueSize(cfg.Logs.MaxQueueSize),
			sdklog.WithExportMaxBatchSize(cfg.Logs.MaxExportBatchSize),
			sdklog.WithExportTimeout(cfg.Logs.ExportTimeout),
		)),
	}
	for _, p := range o.logProcessors {
		opts = append(opts, sdklog.WithProcessor(p))
	}

	return sdklog.NewLoggerProvider(opts...), nil
}
