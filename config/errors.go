package config

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingEnv indicates a required variable is unset or empty.
	ErrMissingEnv = errors.New("config: required environment variable is missing")

	// ErrInvalidEnv indicates a variable does not match its expected format.
	ErrInvalidEnv = errors.New("config: environment variable is invalid")
)

// MissingEnvError names the required variable that was empty.
type MissingEnvError struct {
	Name string
}

// Error implements the error interface.
func (e *MissingEnvError) Error() string {
	return fmt.Sprintf("config: required environment variable %s is missing", e.Name)
}

// Is reports whether target is ErrMissingEnv.
func (e *MissingEnvError) Is(target error) bool {
	return target == ErrMissingEnv
}

// InvalidEnvError names a variable whose value failed validation. The value
// itself is not retained so secrets never reach error output.
type InvalidEnvError struct {
	Name   string
	Reason string
	// Err is the underlying validation error, if any.
	Err error
}

// Error implements the error interface.
func (e *InvalidEnvError) Error() string {
	return fmt.Sprintf("config: environment variable %s is invalid: %s", e.Name, e.Reason)
}

// Is reports whether target is ErrInvalidEnv.
func (e *InvalidEnvError) Is(target error) bool {
	return target == ErrInvalidEnv
}

// Unwrap returns the underlying validation error.
func (e *InvalidEnvError) Unwrap() error {
	return e.Err
}
