package cache

import (
	"container/list"
	"fmt"
)

// Entry is a single key/value pair held by the cache.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// Cache is a capacity-bounded associative store with LRU eviction.
//
// A map gives O(1) key lookup, and a doubly-linked list maintains recency
// order: front = most recently used (MRU), back = least recently used (LRU).
// Each map slot holds a pointer to its list element, so move-to-front and
// evict-from-back are both O(1).
//
// Cache is not safe for concurrent use. It assumes a single logical owner
// operating on it synchronously; owners that share an instance across
// goroutines must serialize access externally.
type Cache[K comparable, V any] struct {
	capacity int
	items    map[K]*list.Element
	order    *list.List
}

// New constructs a cache with the given capacity.
//
// Capacity below 1 makes the eviction invariant unsatisfiable, so New
// rejects it instead of clamping. Initial entries are applied in order as
// ordinary Set calls: duplicates overwrite, and entries beyond capacity
// evict earlier ones just like at runtime.
func New[K comparable, V any](capacity int, initial ...Entry[K, V]) (*Cache[K, V], error) {
	if capacity < 1 {
		return nil, fmt.Errorf("cache: capacity must be at least 1, got %d", capacity)
	}

	c := &Cache[K, V]{
		capacity: capacity,
		items:    make(map[K]*list.Element, capacity),
		order:    list.New(),
	}
	for _, e := range initial {
		c.Set(e.Key, e.Value)
	}
	return c, nil
}

// Get returns the value stored under key.
//
// A hit counts as a touch: the entry moves to MRU while every other entry
// keeps its relative order. A miss returns (zero value, false) and leaves
// the cache untouched. The boolean is the only presence signal; a stored
// zero value is a legitimate hit.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	el, ok := c.items[key]
	if !ok {
		var zero V
		return zero, false
	}

	c.order.MoveToFront(el)
	return el.Value.(*Entry[K, V]).Value, true
}

// Set stores value under key and makes it the most recently used entry.
//
// An existing key is overwritten in place and moved to MRU; re-setting the
// current MRU key still runs the recency bookkeeping. A new key is inserted
// at MRU, and if that pushes the cache over capacity the entry at the LRU
// end is evicted. Capacity is at least 1, so the key just set always
// survives its own insertion.
func (c *Cache[K, V]) Set(key K, value V) {
	if el, ok := c.items[key]; ok {
		el.Value.(*Entry[K, V]).Value = value
		c.order.MoveToFront(el)
		return
	}

	c.items[key] = c.order.PushFront(&Entry[K, V]{Key: key, Value: value})

	if c.order.Len() > c.capacity {
		c.removeElement(c.order.Back())
	}
}

// Delete removes key if present. Deleting an absent key is a no-op, never
// an error.
func (c *Cache[K, V]) Delete(key K) {
	if el, ok := c.items[key]; ok {
		c.removeElement(el)
	}
}

// Clear removes every entry. Capacity is unaffected.
func (c *Cache[K, V]) Clear() {
	clear(c.items)
	c.order.Init()
}

// Entries returns a fresh snapshot of all entries ordered most recently
// used first. It never mutates recency, and later cache mutations do not
// affect a previously returned slice.
func (c *Cache[K, V]) Entries() []Entry[K, V] {
	out := make([]Entry[K, V], 0, c.order.Len())
	for el := c.order.Front(); el != nil; el = el.Next() {
		out = append(out, *el.Value.(*Entry[K, V]))
	}
	return out
}

// Len returns the number of entries currently stored.
func (c *Cache[K, V]) Len() int {
	return len(c.items)
}

// Cap returns the capacity fixed at construction.
func (c *Cache[K, V]) Cap() int {
	return c.capacity
}

// removeElement drops a list element from both the queue and the index.
func (c *Cache[K, V]) removeElement(el *list.Element) {
	c.order.Remove(el)
	delete(c.items, el.Value.(*Entry[K, V]).Key)
}
