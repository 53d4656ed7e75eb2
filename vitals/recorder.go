package vitals

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/jonwraymond/pagetel/page"
)

// ScopeName is the meter scope owning every vital instrument.
const ScopeName = "web-vitals"

// Attribute keys attached to every observation.
const (
	AttrID         = attribute.Key("id")
	AttrDelta      = attribute.Key("delta")
	AttrRating     = attribute.Key("rating")
	AttrNavigation = attribute.Key("navigation")
)

// Instrument describes the metric instrument dedicated to one vital.
type Instrument struct {
	Kind        Kind
	Name        string
	Unit        string
	Description string
	Gauge       bool
}

var instruments = []Instrument{
	{Kind: LCP, Name: "web_vitals.lcp", Unit: "ms", Description: "Largest Contentful Paint"},
	{Kind: CLS, Name: "web_vitals.cls", Unit: "score", Description: "Cumulative Layout Shift", Gauge: true},
	{Kind: TTFB, Name: "web_vitals.ttfb", Unit: "ms", Description: "Time to First Byte"},
	{Kind: FCP, Name: "web_vitals.fcp", Unit: "ms", Description: "First Contentful Paint"},
	{Kind: INP, Name: "web_vitals.inp", Unit: "ms", Description: "Interaction to Next Paint"},
}

// Instruments returns the instrument table.
func Instruments() []Instrument {
	out := make([]Instrument, len(instruments))
	copy(out, instruments)
	return out
}

// Source delivers vital reports per kind.
//
// Contract:
// - Delivery: fn may be called zero or more times per kind.
// - Ownership: the returned handle removes fn; it is safe to call twice.
type Source interface {
	Subscribe(kind Kind, fn func(Metric)) page.Subscription
}

// recordFunc is implemented by metric.Float64Histogram and metric.Float64Gauge.
type recordFunc func(ctx context.Context, v float64, opts ...metric.RecordOption)

// Recorder records vital reports on their dedicated instruments.
//
// Contract:
//   - Concurrency: safe for concurrent use.
//   - Errors: Record only fails for unknown kinds; the SDK never surfaces
//     export errors here.
type Recorder struct {
	record map[Kind]recordFunc
}

// NewRecorder creates the five instruments under the web-vitals scope of mp.
func NewRecorder(mp metric.MeterProvider) (*Recorder, error) {
	if mp == nil {
		return nil, ErrNilMeterProvider
	}
	meter := mp.Meter(ScopeName)

	r := &Recorder{record: make(map[Kind]recordFunc, len(instruments))}
	for _, inst := range instruments {
		if inst.Gauge {
			g, err := meter.Float64Gauge(inst.Name,
				metric.WithDescription(inst.Description),
				metric.WithUnit(inst.Unit),
			)
			if err != nil {
				return nil, fmt.Errorf("vitals: create %s: %w", inst.Name, err)
			}
			r.record[inst.Kind] = g.Record
			continue
		}
		h, err := meter.Float64Histogram(inst.Name,
			metric.WithDescription(inst.Description),
			metric.WithUnit(inst.Unit),
		)
		if err != nil {
			return nil, fmt.Errorf("vitals: create %s: %w", inst.Name, err)
		}
		r.record[inst.Kind] = h.Record
	}
	return r, nil
}

// Record appends one observation of m to the instrument for kind.
func (r *Recorder) Record(ctx context.Context, kind Kind, m Metric) error {
	rec, ok := r.record[kind]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	rec(ctx, m.Value, metric.WithAttributes(
		AttrID.String(m.ID),
		AttrDelta.Float64(m.Delta),
		AttrRating.String(string(m.Rating)),
		AttrNavigation.String(string(m.NavigationType)),
	))
	return nil
}

// Subscribe attaches one callback per vital kind to src. Each callback
// invocation records exactly one observation on that kind's instrument.
func (r *Recorder) Subscribe(src Source) page.Subscription {
	subs := make(page.Subscriptions, 0, len(instruments))
	for _, inst := range instruments {
		kind := inst.Kind
		subs = append(subs, src.Subscribe(kind, func(m Metric) {
			_ = r.Record(context.Background(), kind, m)
		}))
	}
	return subs
}
