// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package cache provides a generic least-recently-used cache.
//
//	c := cache.New[glyphKey, *outline](256)
//	o := c.GetOrCreate(k, func() *outline { return load(k) })
//
// Cache is safe for concurrent use. It must not be copied after creation.
package cache

import "sync"

// Cache is a thread-safe LRU cache holding at most Capacity entries.
type Cache[K comparable, V any] struct {
	mu       sync.Mutex
	entries  map[K]*node[K, V]
	lru      list[K, V]
	capacity int
	onEvict  func(K, V)

	hits, misses, evictions uint64
}

// New creates a cache holding at most capacity entries.
// A capacity of 0 means unlimited.
func New[K comparable, V any](capacity int) *Cache[K, V] {
	return &Cache[K, V]{
		entries:  make(map[K]*node[K, V]),
		capacity: capacity,
	}
}

// OnEvict registers f to run for every entry dropped by eviction, Delete
// or Clear. f runs with the cache unlocked.
func (c *Cache[K, V]) OnEvict(f func(K, V)) {
	c.mu.Lock()
	c.onEvict = f
	c.mu.Unlock()
}

// Get returns the value for key and marks it most recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.entries[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	c.hits++
	c.lru.moveToFront(n)
	return n.value, true
}

// Set stores value under key, evicting the least recently used entries
// when the cache is full.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	evicted := c.set(key, value)
	f := c.onEvict
	c.mu.Unlock()
	c.notify(f, evicted)
}

// GetOrCreate returns the cached value for key or stores the result of
// create. create runs without the lock held; when two callers race, the
// first stored value wins.
func (c *Cache[K, V]) GetOrCreate(key K, create func() V) V {
	if v, ok := c.Get(key); ok {
		return v
	}
	v := create()

	c.mu.Lock()
	if n, ok := c.entries[key]; ok {
		c.lru.moveToFront(n)
		c.mu.Unlock()
		return n.value
	}
	evicted := c.set(key, v)
	f := c.onEvict
	c.mu.Unlock()
	c.notify(f, evicted)
	return v
}

// Delete removes key and reports whether it was present.
func (c *Cache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	n, ok := c.entries[key]
	if ok {
		c.lru.remove(n)
		delete(c.entries, key)
	}
	f := c.onEvict
	c.mu.Unlock()
	if ok {
		c.notify(f, []*node[K, V]{n})
	}
	return ok
}

// Clear removes every entry.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	var all []*node[K, V]
	for n := c.lru.head; n != nil; n = n.next {
		all = append(all, n)
	}
	c.entries = make(map[K]*node[K, V])
	c.lru = list[K, V]{}
	f := c.onEvict
	c.mu.Unlock()
	c.notify(f, all)
}

// Len returns the number of entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns a snapshot of the cache counters.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Len:       len(c.entries),
		Capacity:  c.capacity,
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
	}
}

// set stores the entry and returns the evicted nodes. c.mu must be held.
func (c *Cache[K, V]) set(key K, value V) []*node[K, V] {
	if n, ok := c.entries[key]; ok {
		n.value = value
		c.lru.moveToFront(n)
		return nil
	}
	n := &node[K, V]{key: key, value: value}
	c.entries[key] = n
	c.lru.pushFront(n)

	var evicted []*node[K, V]
	for c.capacity > 0 && len(c.entries) > c.capacity {
		old := c.lru.tail
		c.lru.remove(old)
		delete(c.entries, old.key)
		c.evictions++
		evicted = append(evicted, old)
	}
	return evicted
}

func (c *Cache[K, V]) notify(f func(K, V), nodes []*node[K, V]) {
	if f == nil {
		return
	}
	for _, n := range nodes {
		f(n.key, n.value)
	}
}

// Stats contains cache statistics.
type Stats struct {
	// Len is the current number of entries.
	Len int
	// Capacity is the maximum number of entries, 0 for unlimited.
	Capacity int
	// Hits is the number of successful lookups.
	Hits uint64
	// Misses is the number of failed lookups.
	Misses uint64
	// Evictions is the number of entries dropped to respect Capacity.
	Evictions uint64
}

// HitRate returns hits / (hits + misses), or 0 before any lookup.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}
