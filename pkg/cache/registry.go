package cache

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Registry maps string keys to values of type V with sliding expiration.
type Registry[V any] struct {
	mu    sync.Mutex
	items *gocache.Cache
	ttl   time.Duration
}

// NewRegistry creates a registry whose entries expire ttl after last use.
// Expired entries are purged every cleanupInterval. A non-positive ttl panics.
func NewRegistry[V any](ttl, cleanupInterval time.Duration) *Registry[V] {
	if ttl <= 0 {
		panic("cache: registry ttl must be positive")
	}
	return &Registry[V]{
		items: gocache.New(ttl, cleanupInterval),
		ttl:   ttl,
	}
}

// OnEvicted registers fn to run when an entry is removed or expires.
func (r *Registry[V]) OnEvicted(fn func(key string, value V)) {
	r.items.OnEvicted(func(key string, v any) {
		if val, ok := v.(V); ok {
			fn(key, val)
		}
	})
}

// Get returns the value for key and refreshes its expiry.
func (r *Registry[V]) Get(key string) (V, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.getLocked(key)
}

func (r *Registry[V]) getLocked(key string) (V, bool) {
	v, ok := r.items.Get(key)
	if !ok {
		var zero V
		return zero, false
	}
	val, ok := v.(V)
	if ok {
		r.items.Set(key, val, r.ttl)
	}
	return val, ok
}

// GetOrCreate returns the value for key, calling create exactly once per key
// when it is missing.
func (r *Registry[V]) GetOrCreate(key string, create func() V) V {
	r.mu.Lock()
	defer r.mu.Unlock()

	if val, ok := r.getLocked(key); ok {
		return val
	}
	val := create()
	r.items.Set(key, val, r.ttl)
	return val
}

// Put stores value under key.
func (r *Registry[V]) Put(key string, value V) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items.Set(key, value, r.ttl)
}

// Remove deletes key. OnEvicted callbacks run.
func (r *Registry[V]) Remove(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items.Delete(key)
}

// Len counts entries, including expired ones not yet purged.
func (r *Registry[V]) Len() int {
	return r.items.ItemCount()
}

// Purge removes expired entries now.
func (r *Registry[V]) Purge() {
	r.items.DeleteExpired()
}
