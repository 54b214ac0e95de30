package ports

import "context"

// Port: tracks which analysis keys currently have a computation in
// flight. The coordinator acquires a key before any I/O on the launch
// path, so at most one computation runs per key. Implementations must
// make TryAcquire atomic (check-and-set in one step).
type InflightRegistry interface {
	// Mark the key in flight. Returns false without side effects if
	// the key is already held.
	TryAcquire(ctx context.Context, key string) (bool, error)
	// Clear the key. Releasing an unheld key is a no-op.
	Release(ctx context.Context, key string) error
	// Report whether the key is currently in flight.
	Contains(ctx context.Context, key string) (bool, error)
}
