package instrument

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// Span names produced for a page load.
const (
	SpanDocumentLoad  = "documentLoad"
	SpanDocumentFetch = "documentFetch"
)

// NavigationTiming carries the navigation timestamps reported by the page.
// Zero timestamps are skipped.
type NavigationTiming struct {
	URL string

	FetchStart        time.Time
	DomainLookupStart time.Time
	DomainLookupEnd   time.Time
	ConnectStart      time.Time
	ConnectEnd        time.Time
	RequestStart      time.Time
	ResponseStart     time.Time
	ResponseEnd       time.Time

	DOMInteractive             time.Time
	DOMContentLoadedEventStart time.Time
	DOMContentLoadedEventEnd   time.Time
	DOMComplete                time.Time
	LoadEventStart             time.Time
	LoadEventEnd               time.Time
}

type timingEvent struct {
	name string
	at   time.Time
}

func (nt NavigationTiming) fetchEvents() []timingEvent {
	return []timingEvent{
		{"fetchStart", nt.FetchStart},
		{"domainLookupStart", nt.DomainLookupStart},
		{"domainLookupEnd", nt.DomainLookupEnd},
		{"connectStart", nt.ConnectStart},
		{"connectEnd", nt.ConnectEnd},
		{"requestStart", nt.RequestStart},
		{"responseStart", nt.ResponseStart},
		{"responseEnd", nt.ResponseEnd},
	}
}

func (nt NavigationTiming) loadEvents() []timingEvent {
	return []timingEvent{
		{"fetchStart", nt.FetchStart},
		{"domInteractive", nt.DOMInteractive},
		{"domContentLoadedEventStart", nt.DOMContentLoadedEventStart},
		{"domContentLoadedEventEnd", nt.DOMContentLoadedEventEnd},
		{"domComplete", nt.DOMComplete},
		{"loadEventStart", nt.LoadEventStart},
		{"loadEventEnd", nt.LoadEventEnd},
	}
}

// lastOf returns the latest timestamp, falling back to start.
func lastOf(start time.Time, candidates ...time.Time) time.Time {
	end := start
	for _, c := range candidates {
		if c.After(end) {
			end = c
		}
	}
	return end
}

// DocumentLoad records the page load as a documentLoad span with a
// documentFetch child, both timed from the navigation timestamps. It returns
// a context carrying the documentLoad span.
func (in *Instrumentation) DocumentLoad(ctx context.Context, nt NavigationTiming) context.Context {
	start := nt.FetchStart
	if start.IsZero() {
		start = time.Now()
	}

	attrs := []attribute.KeyValue{semconv.URLFull(nt.URL)}
	if in.userAgent != "" {
		attrs = append(attrs, semconv.UserAgentOriginal(in.userAgent))
	}

	loadCtx, load := in.tracer.Start(ctx, SpanDocumentLoad,
		trace.WithTimestamp(start),
		trace.WithAttributes(attrs...),
	)

	_, fetch := in.tracer.Start(loadCtx, SpanDocumentFetch,
		trace.WithTimestamp(start),
		trace.WithAttributes(attrs...),
	)
	addEvents(fetch, nt.fetchEvents())
	fetch.End(trace.WithTimestamp(lastOf(start, nt.ResponseEnd)))

	addEvents(load, nt.loadEvents())
	load.End(trace.WithTimestamp(lastOf(start, nt.ResponseEnd, nt.DOMComplete, nt.LoadEventEnd)))

	return loadCtx
}

func addEvents(span trace.Span, events []timingEvent) {
	for _, ev := range events {
		if ev.at.IsZero() {
			continue
		}
		span.AddEvent(ev.name, trace.WithTimestamp(ev.at))
	}
}
