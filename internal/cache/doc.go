// Package cache implements a fixed-capacity, generic key-value store with
// least-recently-used eviction.
//
// Design goals:
//   - Make the core data structures explicit (map + doubly-linked list)
//   - O(1) Get/Set/Delete via map index + recency pointers
//   - No hidden goroutines, no locking: a cache instance has exactly one
//     logical owner, and shared use must be serialized by that owner
//   - Out-of-band presence reporting, so zero values are storable values
package cache
