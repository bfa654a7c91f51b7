package entitlement

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// CounterFunc returns the current usage of a quota for a user.
// Should be fast: cache or aggregate at repository level.
type CounterFunc func(ctx context.Context, userID uuid.UUID) (int64, error)

// CounterRegistry maps a quota path to its CounterFunc.
// Not thread-safe: register all counters at startup only.
type CounterRegistry map[Path]CounterFunc

// NewRegistry returns an empty CounterRegistry.
func NewRegistry() CounterRegistry {
	return make(CounterRegistry)
}

// Register sets or replaces the CounterFunc for path. Panics if fn is nil.
func (r CounterRegistry) Register(path Path, fn CounterFunc) {
	if fn == nil {
		panic(fmt.Sprintf("entitlement: CounterFunc for %q cannot be nil", path))
	}
	r[path] = fn
}
