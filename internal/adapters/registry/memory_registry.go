package registry

import (
	"context"
	"sync"
)

// MemoryRegistry tracks in-flight keys in process memory. The mutex
// makes TryAcquire a single check-and-set step. State does not
// survive a restart; the coordinator's orphan detection covers that.
type MemoryRegistry struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{keys: make(map[string]struct{})}
}

func (r *MemoryRegistry) TryAcquire(_ context.Context, key string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, held := r.keys[key]; held {
		return false, nil
	}
	r.keys[key] = struct{}{}
	return true, nil
}

func (r *MemoryRegistry) Release(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.keys, key)
	return nil
}

func (r *MemoryRegistry) Contains(_ context.Context, key string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, held := r.keys[key]
	return held, nil
}
