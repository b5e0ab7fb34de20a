package cache

import (
	"sync"
	"sync/atomic"
)

// Cache is a thread-safe, generic key/value store. The pipeline uses one per
// run to retain each completed step's context record; entries live for the
// duration of the run, so there is no expiration machinery.
type Cache[K comparable, V any] struct {
	store     sync.Map
	itemCount atomic.Int64
}

// NewCache creates a new Cache instance.
func NewCache[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{}
}

// Set adds or updates an item in the cache.
func (c *Cache[K, V]) Set(k K, v V) {
	if _, loaded := c.store.Load(k); !loaded {
		c.itemCount.Add(1)
	}
	c.store.Store(k, v)
}

// Get retrieves an item from the cache. It returns the value and true if the
// item exists, otherwise the zero value for V and false.
func (c *Cache[K, V]) Get(k K) (V, bool) {
	var zeroV V
	loaded, ok := c.store.Load(k)
	if !ok {
		return zeroV, false
	}
	v, ok := loaded.(V)
	if !ok {
		// Should not happen if Set is used correctly; remove the
		// malformed entry.
		c.store.Delete(k)
		c.itemCount.Add(-1)
		return zeroV, false
	}
	return v, true
}

// GetOrSet returns the existing value for the key if present. Otherwise it
// stores and returns the given value. The loaded result is true if the value
// was loaded, false if stored.
func (c *Cache[K, V]) GetOrSet(k K, v V) (V, bool) {
	if existing, found := c.Get(k); found {
		return existing, true
	}
	c.Set(k, v)
	return v, false
}

// Delete removes an item from the cache.
func (c *Cache[K, V]) Delete(k K) {
	if _, loaded := c.store.LoadAndDelete(k); loaded {
		c.itemCount.Add(-1)
	}
}

// Range iterates over the cache items, calling f for each key and value. If
// f returns false, range stops the iteration. Iteration order is not
// guaranteed.
func (c *Cache[K, V]) Range(f func(key K, value V) bool) {
	c.store.Range(func(key, value interface{}) bool {
		k, ok := key.(K)
		if !ok {
			return true
		}
		v, ok := value.(V)
		if !ok {
			return true
		}
		return f(k, v)
	})
}

// Clean removes all items from the cache.
func (c *Cache[K, V]) Clean() {
	c.store = sync.Map{}
	c.itemCount.Store(0)
}

// Len returns the current number of items in the cache.
func (c *Cache[K, V]) Len() int64 {
	return c.itemCount.Load()
}

// GetTyped retrieves an item and asserts it to type T. Useful when V is an
// interface type such as any.
func GetTyped[T any, K comparable, V any](c *Cache[K, V], k K) (T, bool) {
	var zeroT T
	val, ok := c.Get(k)
	if !ok {
		return zeroT, false
	}
	typedVal, typeOk := any(val).(T)
	if !typeOk {
		return zeroT, false
	}
	return typedVal, true
}
