package binder

import "errors"

var (
	// ErrBindFailed is in the chain of every binding error.
	ErrBindFailed = errors.New("request binding failed")

	ErrInvalidTarget        = errors.New("binding target must be a non-nil pointer to struct")
	ErrInvalidPath          = errors.New("invalid path parameter")
	ErrInvalidQuery         = errors.New("invalid query parameter")
	ErrInvalidJSON          = errors.New("invalid JSON")
	ErrMissingContentType   = errors.New("missing content type")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
)
