package usage

import "errors"

var (
	ErrTrackerClosed   = errors.New("usage: tracker is closed")
	ErrNilSink         = errors.New("usage: sink cannot be nil")
	ErrFailedToInsert  = errors.New("usage: failed to insert event")
	ErrInvalidEvent    = errors.New("usage: invalid event")
	ErrDeliveryTimeout = errors.New("usage: delivery timed out")
)

var (
	ErrCounterStore    = errors.New("usage: counter store failure")
	ErrNegativeCounter = errors.New("usage: counter cannot be negative")
)
