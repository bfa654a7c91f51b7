package currency

import "errors"

var (
	ErrUnsupportedCurrency = errors.New("currency: unsupported currency")
	ErrInvalidBillingCycle = errors.New("currency: invalid billing cycle")
	ErrLocationUnavailable = errors.New("currency: location unavailable")
	ErrPreferenceStore     = errors.New("currency: preference store failure")
)
