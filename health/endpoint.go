package health

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	collogspb "go.opentelemetry.io/proto/otlp/collector/logs/v1"
	colmetricpb "go.opentelemetry.io/proto/otlp/collector/metrics/v1"
	coltracepb "go.opentelemetry.io/proto/otlp/collector/trace/v1"
	"google.golang.org/protobuf/proto"

	"github.com/jonwraymond/pagetel/observe"
)

// EndpointChecker probes the collector endpoint of one signal.
type EndpointChecker struct {
	signal  observe.Signal
	url     string
	headers map[string]string
	client  *http.Client
}

// NewEndpointChecker probes tr's endpoint for sig. A nil client uses a
// client with a 10 second timeout.
func NewEndpointChecker(tr observe.Transport, sig observe.Signal, client *http.Client) *EndpointChecker {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &EndpointChecker{
		signal:  sig,
		url:     tr.Endpoint(sig),
		headers: tr.Headers(),
		client:  client,
	}
}

// ForTransport returns an aggregator probing the three signal endpoints of tr.
func ForTransport(tr observe.Transport, client *http.Client) *Aggregator {
	agg := NewAggregator(DefaultTimeout)
	for _, sig := range []observe.Signal{observe.SignalTraces, observe.SignalMetrics, observe.SignalLogs} {
		agg.Register(NewEndpointChecker(tr, sig, client))
	}
	return agg
}

// Name returns the signal name.
func (c *EndpointChecker) Name() string {
	return string(c.signal)
}

// Check posts an empty export request and classifies the answer.
func (c *EndpointChecker) Check(ctx context.Context) Result {
	body, err := proto.Marshal(emptyRequest(c.signal))
	if err != nil {
		return Unhealthy("failed to encode request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return Unhealthy("invalid endpoint", err)
	}
	req.Header.Set("Content-Type", "application/x-protobuf")
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return Unhealthy("collector unreachable", err)
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	_ = resp.Body.Close()

	return classify(resp.StatusCode).WithDetails(map[string]any{
		"endpoint":    c.url,
		"status_code": resp.StatusCode,
	})
}

func classify(code int) Result {
	switch {
	case code >= 200 && code < 300:
		return Healthy("collector accepted export")
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return Unhealthy("collector rejected credentials", fmt.Errorf("%w: %d", ErrUnauthorized, code))
	case code == http.StatusNotFound:
		return Unhealthy("endpoint not found", fmt.Errorf("%w: %d", ErrUnexpectedStatus, code))
	case code == http.StatusTooManyRequests || code == http.StatusServiceUnavailable:
		return Degraded("collector is throttling", fmt.Errorf("%w: %d", ErrUnexpectedStatus, code))
	case code >= 400 && code < 500:
		return Degraded("collector rejected request", fmt.Errorf("%w: %d", ErrUnexpectedStatus, code))
	default:
		return Unhealthy("collector error", fmt.Errorf("%w: %d", ErrUnexpectedStatus, code))
	}
}

func emptyRequest(sig observe.Signal) proto.Message {
	switch sig {
	case observe.SignalMetrics:
		return &colmetricpb.ExportMetricsServiceRequest{}
	case observe.SignalLogs:
		return &collogspb.ExportLogsServiceRequest{}
	default:
		return &coltracepb.ExportTraceServiceRequest{}
	}
}
