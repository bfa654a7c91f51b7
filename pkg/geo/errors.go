package geo

import "errors"

var (
	ErrNoClientIP        = errors.New("geo: client ip unknown")
	ErrLookupFailed      = errors.New("geo: location lookup failed")
	ErrCountryNotPresent = errors.New("geo: location response has no country")
)
