package observe

import (
	"context"
	"fmt"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"

	"github.com/jonwraymond/pagetel/observe/exporters"
)

// setupMetrics builds the meter provider. Push exporters are read
// periodically at cfg.Metrics.Interval.
func setupMetrics(ctx context.Context, cfg Config, res *resource.Resource, tr Transport, o options) (*sdkmetric.MeterProvider, error) {
	reader := o.metricReader
	if reader == nil {
		var err error
		target := tr.target(SignalMetrics, cfg.Metrics.ExportTimeout, cfg.Retry)
		reader, err = exporters.NewMetricReader(ctx, cfg.Metrics.Exporter, target, cfg.Metrics.Interval)
		if err != nil {
			return nil, fmt.Errorf("failed to create metrics reader: %w", err)
		}
	}

	return sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(reader),
	), nil
}
