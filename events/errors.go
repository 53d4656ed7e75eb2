package events

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingType indicates an event without a "type" field.
	ErrMissingType = errors.New("events: missing type")

	// ErrUnknownType indicates an event type this package does not replay.
	ErrUnknownType = errors.New("events: unknown type")
)

// LineError reports which input line failed.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("events: line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}
