package events

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/jonwraymond/pagetel/errreport"
	"github.com/jonwraymond/pagetel/vitals"
)

// Event types.
const (
	TypeVital       = "vital"
	TypeError       = "error"
	TypeNavigate    = "navigate"
	TypeInteraction = "interaction"
	TypeLongTask    = "longtask"
)

// Event is one decoded line. Only the fields of its Type are meaningful.
type Event struct {
	Type string `json:"type"`

	// vital
	Name           string  `json:"name,omitempty"`
	Value          float64 `json:"value,omitempty"`
	ID             string  `json:"id,omitempty"`
	Delta          float64 `json:"delta,omitempty"`
	Rating         string  `json:"rating,omitempty"`
	NavigationType string  `json:"navigationType,omitempty"`

	// error
	Message  string          `json:"message,omitempty"`
	Error    json.RawMessage `json:"error,omitempty"`
	Filename string          `json:"filename,omitempty"`
	Line     int             `json:"lineno,omitempty"`
	Column   int             `json:"colno,omitempty"`

	// navigate
	Href string `json:"href,omitempty"`

	// interaction
	EventType string `json:"event,omitempty"`
	Target    string `json:"target,omitempty"`
	XPath     string `json:"xpath,omitempty"`

	// longtask, in milliseconds
	Duration float64 `json:"duration,omitempty"`
}

// Vital converts a vital event.
func (e Event) Vital() (vitals.Metric, error) {
	kind, err := vitals.ParseKind(e.Name)
	if err != nil {
		return vitals.Metric{}, err
	}
	return vitals.Metric{
		Name:           kind,
		Value:          e.Value,
		ID:             e.ID,
		Delta:          e.Delta,
		Rating:         vitals.Rating(e.Rating),
		NavigationType: vitals.NavigationType(e.NavigationType),
	}, nil
}

// ErrorEvent converts an error event.
func (e Event) ErrorEvent() (errreport.ErrorEvent, error) {
	thrown, err := decodeThrown(e.Error)
	if err != nil {
		return errreport.ErrorEvent{}, err
	}
	return errreport.ErrorEvent{
		Message:  e.Message,
		Error:    thrown,
		Filename: e.Filename,
		Line:     e.Line,
		Column:   e.Column,
	}, nil
}

// LongTask returns the duration of a longtask event.
func (e Event) LongTask() time.Duration {
	return time.Duration(e.Duration * float64(time.Millisecond))
}

// thrownObject is the JSON shape of a serialized Error. Name and Message
// are pointers so a plain object without either decodes as opaque.
type thrownObject struct {
	Name    *string `json:"name"`
	Message *string `json:"message"`
	Stack   string  `json:"stack"`
}

// decodeThrown maps the "error" field onto the value a page would throw.
func decodeThrown(raw json.RawMessage) (any, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, nil
	}

	switch raw[0] {
	case '{':
		var obj thrownObject
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil, err
		}
		if obj.Name == nil && obj.Message == nil {
			var m map[string]any
			if err := json.Unmarshal(raw, &m); err != nil {
				return nil, err
			}
			return m, nil
		}
		return &errreport.Exception{Name: deref(obj.Name), Message: deref(obj.Message), Stack: obj.Stack}, nil
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		return s, nil
	default:
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		return v, nil
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
