// Package health probes the collector endpoints a telemetry session exports
// to.
//
// An EndpointChecker posts an empty OTLP/HTTP export request for one signal
// to its endpoint, with the same headers the exporters send, and maps the
// response onto a Status. An Aggregator runs several checkers concurrently
// under one deadline.
//
//	tr, _ := observe.NewTransport("https://shop.example.com", apiKey)
//	agg := health.ForTransport(tr, nil)
//	results := agg.CheckAll(ctx)
//	if health.Overall(results) == health.StatusUnhealthy {
//	    // collector unreachable or key rejected
//	}
package health
