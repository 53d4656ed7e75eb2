package errreport

import "errors"

var (
	// ErrNilLoggerProvider indicates NewReporter was given a nil provider.
	ErrNilLoggerProvider = errors.New("errreport: logger provider is nil")

	// ErrNilLocator indicates NewReporter was given a nil locator.
	ErrNilLocator = errors.New("errreport: locator is nil")
)
