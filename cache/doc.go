// Package cache implements a single-process, in-memory key–value cache
// with LRU eviction and per-entry TTL.
//
// Goals for this package:
//   - Make the core data structures explicit (map + doubly-linked list)
//   - Provide O(1) Get/Set/Delete via map index + LRU pointers
//   - Bound memory by entry count, evicting the least recently used entry
//   - Support per-entry TTL with both lazy and active expiration
//   - Be concurrency-safe (single mutex) with correctness as the primary goal
//   - Track operational statistics (hits, misses, evictions, expirations)
//   - Own and cleanly stop its background goroutine (no leaks on shutdown)
package cache
