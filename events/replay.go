package events

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jonwraymond/pagetel/errreport"
	"github.com/jonwraymond/pagetel/instrument"
	"github.com/jonwraymond/pagetel/page"
	"github.com/jonwraymond/pagetel/vitals"
)

const maxLineSize = 1 << 20

// Decoder reads events from a JSON-lines stream. Blank lines are skipped.
type Decoder struct {
	scanner *bufio.Scanner
	line    int
}

// NewDecoder returns a decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &Decoder{scanner: s}
}

// Next returns the next event, or io.EOF at the end of the stream.
func (d *Decoder) Next() (Event, error) {
	for d.scanner.Scan() {
		d.line++
		b := bytes.TrimSpace(d.scanner.Bytes())
		if len(b) == 0 {
			continue
		}
		var ev Event
		if err := json.Unmarshal(b, &ev); err != nil {
			return Event{}, &LineError{Line: d.line, Err: err}
		}
		if ev.Type == "" {
			return Event{}, &LineError{Line: d.line, Err: ErrMissingType}
		}
		return ev, nil
	}
	if err := d.scanner.Err(); err != nil {
		return Event{}, fmt.Errorf("events: read: %w", err)
	}
	return Event{}, io.EOF
}

// Line returns the line number of the last event returned by Next.
func (d *Decoder) Line() int {
	return d.line
}

// Session is what a replay drives. *session.Session implements it.
type Session interface {
	Vitals() *vitals.Bus
	Errors() *errreport.Dispatcher
	Tracker() *page.Tracker
	Instrumentation() *instrument.Instrumentation
}

// Stats counts replayed events per type.
type Stats map[string]int

// Total returns the number of replayed events.
func (s Stats) Total() int {
	n := 0
	for _, c := range s {
		n += c
	}
	return n
}

// Replay decodes r and delivers every event to s in order. It stops at the
// first malformed or unknown event and reports its line.
func Replay(ctx context.Context, r io.Reader, s Session) (Stats, error) {
	stats := Stats{}
	dec := NewDecoder(r)
	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		ev, err := dec.Next()
		if err == io.EOF {
			return stats, nil
		}
		if err != nil {
			return stats, err
		}
		if err := Apply(ctx, s, ev); err != nil {
			return stats, &LineError{Line: dec.Line(), Err: err}
		}
		stats[ev.Type]++
	}
}

// Apply delivers one event to s.
func Apply(ctx context.Context, s Session, ev Event) error {
	switch ev.Type {
	case TypeVital:
		m, err := ev.Vital()
		if err != nil {
			return err
		}
		return s.Vitals().Publish(m)
	case TypeError:
		e, err := ev.ErrorEvent()
		if err != nil {
			return fmt.Errorf("decode error value: %w", err)
		}
		s.Errors().Dispatch(e)
		return nil
	case TypeNavigate:
		return s.Tracker().Navigate(ev.Href)
	case TypeInteraction:
		_, span := s.Instrumentation().Interaction(ctx, instrument.Interaction{
			EventType: ev.EventType,
			Target:    ev.Target,
			XPath:     ev.XPath,
			URL:       s.Tracker().Location().Href,
		})
		span.End()
		return nil
	case TypeLongTask:
		s.Instrumentation().LongTask(ctx, ev.LongTask())
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownType, ev.Type)
	}
}
