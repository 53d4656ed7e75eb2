package observe

import (
	"fmt"
	"maps"
	"net/url"
	"strings"
	"time"

	"github.com/jonwraymond/pagetel/observe/exporters"
)

// Signal names one of the three exported telemetry signals.
type Signal string

const (
	SignalTraces  Signal = "traces"
	SignalMetrics Signal = "metrics"
	SignalLogs    Signal = "logs"
)

// endpointPrefix is the collector path mounted on the page origin.
const endpointPrefix = "/otlp/v1/"

// Transport is the export destination shared by all three signals: the page
// origin plus an optional authorization header.
//
// Contract:
// - Immutability: a Transport never changes after NewTransport returns.
// - Ownership: Headers returns a fresh copy on every call.
type Transport struct {
	origin  string
	headers map[string]string
}

// NewTransport validates origin and derives the header set from apiKey.
// An empty key yields no headers; otherwise a single bearer Authorization
// header is produced.
func NewTransport(origin, apiKey string) (Transport, error) {
	u, err := url.Parse(origin)
	if err != nil {
		return Transport{}, fmt.Errorf("%w: %v", ErrInvalidOrigin, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Transport{}, fmt.Errorf("%w: scheme must be http or https, got %q", ErrInvalidOrigin, u.Scheme)
	}
	if u.Host == "" {
		return Transport{}, fmt.Errorf("%w: host is required", ErrInvalidOrigin)
	}
	if (u.Path != "" && u.Path != "/") || u.RawQuery != "" || u.Fragment != "" || u.User != nil {
		return Transport{}, fmt.Errorf("%w: origin must not carry credentials, path, query or fragment", ErrInvalidOrigin)
	}

	t := Transport{
		origin:  u.Scheme + "://" + u.Host,
		headers: map[string]string{},
	}
	if apiKey != "" {
		t.headers["Authorization"] = "Bearer " + apiKey
	}
	return t, nil
}

// Origin returns the normalized page origin.
func (t Transport) Origin() string {
	return t.origin
}

// Headers returns a copy of the export headers.
func (t Transport) Headers() map[string]string {
	return maps.Clone(t.headers)
}

// Endpoint returns the collector URL for sig.
func (t Transport) Endpoint(sig Signal) string {
	return t.origin + endpointPrefix + string(sig)
}

// IsExportPath reports whether path is under the collector prefix. Requests
// to it are never traced so exports do not generate further telemetry.
func IsExportPath(path string) bool {
	return strings.HasPrefix(path, endpointPrefix)
}

// target builds the exporter target for sig.
func (t Transport) target(sig Signal, timeout time.Duration, retry RetryConfig) exporters.Target {
	return exporters.Target{
		URL:     t.Endpoint(sig),
		Headers: t.Headers(),
		Timeout: timeout,
		Retry: exporters.Retry{
			Enabled:         !retry.Disabled,
			InitialInterval: retry.InitialInterval,
			MaxInterval:     retry.MaxInterval,
			MaxElapsedTime:  retry.MaxElapsedTime,
		},
	}
}
