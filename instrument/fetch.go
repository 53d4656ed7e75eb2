package instrument

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/jonwraymond/pagetel/observe"
)

// Fetch describes a network request issued by page script.
type Fetch struct {
	// Method defaults to GET.
	Method string
	// URL is the request URL resolved against the page location.
	URL string
}

// StartFetch starts a client span for f and returns the trace context
// headers to add to the request. ok is false for requests to the collector
// paths; those get no span and no headers.
func (in *Instrumentation) StartFetch(ctx context.Context, f Fetch) (span trace.Span, headers map[string]string, ok bool) {
	u, err := url.Parse(f.URL)
	if err == nil && observe.IsExportPath(u.Path) {
		return nil, nil, false
	}

	method := strings.ToUpper(f.Method)
	if method == "" {
		method = http.MethodGet
	}
	attrs := []trace.SpanStartOption{
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			semconv.HTTPRequestMethodKey.String(method),
			semconv.URLFull(f.URL),
		),
	}
	if err == nil && u.Hostname() != "" {
		attrs = append(attrs, trace.WithAttributes(semconv.ServerAddress(u.Hostname())))
	}

	ctx, span = in.tracer.Start(ctx, method, attrs...)
	carrier := propagation.MapCarrier{}
	in.providers.Propagator().Inject(ctx, carrier)
	return span, carrier, true
}

// EndFetch records the outcome of a request started with StartFetch and ends
// span. A zero status with a nil err means no response was observed.
func EndFetch(span trace.Span, status int, err error) {
	if status > 0 {
		span.SetAttributes(semconv.HTTPResponseStatusCode(status))
	}
	switch {
	case err != nil:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	case status >= http.StatusBadRequest:
		span.SetStatus(codes.Error, http.StatusText(status))
	}
	span.End()
}
