package instrument

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// Interaction attribute keys.
const (
	AttrEventType     = attribute.Key("event_type")
	AttrTargetElement = attribute.Key("target_element")
	AttrTargetXPath   = attribute.Key("target_xpath")
)

// Interaction describes a user event on a page element.
type Interaction struct {
	// EventType is the DOM event name, e.g. click. It names the span.
	EventType string
	// Target is the element tag name, e.g. BUTTON.
	Target string
	// XPath locates the element in the document.
	XPath string
	// URL is the page URL when the event fired.
	URL string
	// At is the event time. Zero means now.
	At time.Time
}

// Interaction starts a span for a user event. Requests issued with the
// returned context are children of the interaction. The caller ends the span.
func (in *Instrumentation) Interaction(ctx context.Context, it Interaction) (context.Context, trace.Span) {
	name := it.EventType
	if name == "" {
		name = "interaction"
	}

	opts := []trace.SpanStartOption{
		trace.WithAttributes(
			AttrEventType.String(it.EventType),
			AttrTargetElement.String(it.Target),
			AttrTargetXPath.String(it.XPath),
			semconv.URLFull(it.URL),
		),
	}
	if !it.At.IsZero() {
		opts = append(opts, trace.WithTimestamp(it.At))
	}

	return in.tracer.Start(ctx, name, opts...)
}
