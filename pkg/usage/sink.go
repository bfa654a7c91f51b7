package usage

import "context"

// Sink persists usage events. Implementations must be safe for concurrent use.
type Sink interface {
	Insert(ctx context.Context, event Event) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, event Event) error

// Insert calls f(ctx, event).
func (f SinkFunc) Insert(ctx context.Context, event Event) error {
	return f(ctx, event)
}
