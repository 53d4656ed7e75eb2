package page

import "errors"

var (
	// ErrEmptyHref indicates a location was parsed from an empty string.
	ErrEmptyHref = errors.New("page: href is empty")

	// ErrRelativeHref indicates a location without scheme or host.
	ErrRelativeHref = errors.New("page: href must be absolute")
)
