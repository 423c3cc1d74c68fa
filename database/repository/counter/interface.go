// File: database/repository/counter/interface.go
package counterRepo

import "context"

// CounterStore hands out monotonically increasing integers per scope key.
// The token allocator is the sole writer; nothing else mutates counters.
type CounterStore interface {
	// Next atomically increments the counter for the scope and returns the
	// new value. The first call for a scope returns 1.
	Next(ctx context.Context, scope string) (int64, error)
	// Peek returns the current counter value without incrementing (0 when
	// the scope has never been incremented).
	Peek(ctx context.Context, scope string) (int64, error)
}
