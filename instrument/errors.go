package instrument

import "errors"

// ErrNilProviders indicates Register was given nil providers.
var ErrNilProviders = errors.New("instrument: providers are nil")
