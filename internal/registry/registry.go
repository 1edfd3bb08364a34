package registry

import (
	"fmt"
	"sort"
	"sync"
)

type Registry[E any] struct {
	mu      sync.RWMutex
	entries map[string]E
}

func New[E any]() *Registry[E] {
	return &Registry[E]{
		entries: make(map[string]E),
	}
}

func (r *Registry[E]) Register(key string, entry E) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[key]; exists {
		return fmt.Errorf("already registered: %s", key)
	}

	r.entries[key] = entry
	return nil
}

func (r *Registry[E]) Has(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.entries[key]
	return exists
}

func (r *Registry[E]) Get(key string) (E, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, exists := r.entries[key]
	return entry, exists
}

func (r *Registry[E]) Remove(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, key)
}

// Keys returns the registered keys in lexical order.
func (r *Registry[E]) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.entries))
	for key := range r.entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
