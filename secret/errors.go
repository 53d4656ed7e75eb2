package secret

import "errors"

var (
	// ErrUnknownProvider indicates a reference names no registered provider.
	ErrUnknownProvider = errors.New("secret: unknown provider")

	// ErrNotFound indicates a provider has no value for a reference.
	ErrNotFound = errors.New("secret: not found")

	// ErrEmpty indicates a provider resolved a reference to an empty value.
	ErrEmpty = errors.New("secret: empty value")

	// ErrMissingVariable indicates a ${VAR} placeholder with no value.
	ErrMissingVariable = errors.New("secret: missing variable")
)
