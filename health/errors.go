package health

import "errors"

var (
	// ErrCheckTimeout indicates a check did not finish before the deadline.
	ErrCheckTimeout = errors.New("health: check timeout")

	// ErrCheckerNotFound indicates no checker is registered under a name.
	ErrCheckerNotFound = errors.New("health: checker not found")

	// ErrUnauthorized indicates the collector rejected the credentials.
	ErrUnauthorized = errors.New("health: unauthorized")

	// ErrUnexpectedStatus indicates the collector answered with an error status.
	ErrUnexpectedStatus = errors.New("health: unexpected status")
)
