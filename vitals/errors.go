package vitals

import "errors"

var (
	// ErrUnknownKind indicates a vital name outside LCP, CLS, TTFB, FCP and INP.
	ErrUnknownKind = errors.New("vitals: unknown vital kind")

	// ErrNilMeterProvider indicates NewRecorder was given a nil provider.
	ErrNilMeterProvider = errors.New("vitals: meter provider is nil")
)
