package cache

import (
	"container/list"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// NoExpiration can be passed to SetTTL to store an entry without a deadline
// even when the cache was built with a default TTL.
const NoExpiration time.Duration = -1

var (
	// ErrInvalidKey is returned by Get, Set, SetTTL and Delete when the key
	// is empty. The check runs before any state is touched.
	ErrInvalidKey = errors.New("cache: key must not be empty")

	// ErrInvalidConfig is returned by New for a non-positive capacity or a
	// negative duration. Configuration is validated once, at construction.
	ErrInvalidConfig = errors.New("cache: invalid configuration")
)

// Config controls cache capacity, default expiration and maintenance behavior.
//
//   - Capacity is required and must be positive; it bounds the entry count.
//   - DefaultTTL == 0 means entries never expire unless SetTTL says otherwise.
//   - CleanupInterval == 0 disables the background reaper (lazy expiration
//     on Get still works).
//
// The background reaper exists to bound memory growth when keys are written
// once and never read again. Lazy expiration alone can leave dead entries in
// memory indefinitely.
type Config struct {
	Capacity        int
	DefaultTTL      time.Duration
	CleanupInterval time.Duration
}

// Cache is a concurrency-safe in-memory key–value cache with TTL and LRU
// eviction.
//
// The core design is intentionally explicit and "mechanical":
// a map gives O(1) key lookup, and a doubly-linked list maintains recency
// ordering. Both are mutated together under one mutex, so they are always in
// 1:1 correspondence whenever the lock is not held.
//
// Ownership model:
// Cache owns its internal goroutine. Call Start to launch the reaper and
// Stop to release it; the cache itself stays usable after Stop.
type Cache struct {
	mu sync.Mutex

	capacity   int
	defaultTTL time.Duration
	items      map[string]*list.Element
	lru        *list.List // Front = most recently used (MRU), Back = least recently used (LRU)

	// Counters live behind mu: every mutation already happens inside a
	// critical section, so atomics would buy nothing.
	hits            uint64
	misses          uint64
	evictions       uint64
	expiredRemovals uint64

	// Reaper ownership. lifecycle serializes Start/Stop; it is never taken
	// by the reaper itself, so Stop can join the goroutine while holding it.
	lifecycle    sync.Mutex
	cancel       context.CancelFunc
	wg           sync.WaitGroup
	cleanupEvery time.Duration
}

// entry is the value stored in the LRU list elements.
// We keep the key here because eviction starts from list nodes.
//
// expiresAt is optional: hasExpiry=false means "never expires".
type entry struct {
	key       string
	value     any
	expiresAt time.Time
	hasExpiry bool
}

func (e *entry) expired(now time.Time) bool {
	return e.hasExpiry && !e.expiresAt.After(now)
}

// New constructs a cache. The background reaper is not running yet; call
// Start to launch it.
func New(cfg Config) (*Cache, error) {
	if cfg.Capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidConfig, cfg.Capacity)
	}
	if cfg.DefaultTTL < 0 {
		return nil, fmt.Errorf("%w: default TTL must not be negative, got %s", ErrInvalidConfig, cfg.DefaultTTL)
	}
	if cfg.CleanupInterval < 0 {
		return nil, fmt.Errorf("%w: cleanup interval must not be negative, got %s", ErrInvalidConfig, cfg.CleanupInterval)
	}

	return &Cache{
		capacity:     cfg.Capacity,
		defaultTTL:   cfg.DefaultTTL,
		items:        make(map[string]*list.Element),
		lru:          list.New(),
		cleanupEvery: cfg.CleanupInterval,
	}, nil
}

// Set writes/overwrites a key using the cache's default TTL (no expiration
// when none was configured).
func (c *Cache) Set(key string, value any) error {
	if c.defaultTTL > 0 {
		return c.SetTTL(key, value, c.defaultTTL)
	}
	return c.SetTTL(key, value, NoExpiration)
}

// SetTTL writes/overwrites a key with an explicit TTL.
//
// ttl semantics:
//   - NoExpiration means the entry never expires
//   - any other value, zero and negatives included, sets the absolute
//     deadline now+ttl; SetTTL(k, v, 0) therefore stores an entry that is
//     already expired
//
// Overwriting an existing key replaces its value and deadline in place and
// refreshes its recency position. That counts as use, not as a hit or miss.
//
// Complexity:
//   - O(1) to locate/insert
//   - O(1) eviction when a new key arrives at capacity
func (c *Cache) SetTTL(key string, value any, ttl time.Duration) error {
	if key == "" {
		return ErrInvalidKey
	}

	var expiresAt time.Time
	hasExpiry := ttl != NoExpiration
	if hasExpiry {
		expiresAt = time.Now().Add(ttl)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		e := el.Value.(*entry)
		e.value = value
		e.expiresAt = expiresAt
		e.hasExpiry = hasExpiry
		c.lru.MoveToFront(el)
		return nil
	}

	// A new key at capacity displaces the least recently used entry first,
	// so the size bound holds after every operation.
	if len(c.items) >= c.capacity {
		c.evictLocked()
	}

	e := &entry{
		key:       key,
		value:     value,
		expiresAt: expiresAt,
		hasExpiry: hasExpiry,
	}
	c.items[key] = c.lru.PushFront(e)
	return nil
}

// Get reads a key. The second return reports whether a live value was found.
//
// It performs lazy TTL expiration: an expired key is removed on access and
// behaves exactly like a miss (one miss plus one expired removal, never an
// error). A live hit refreshes the entry to most recently used.
func (c *Cache) Get(key string) (any, bool, error) {
	if key == "" {
		return nil, false, ErrInvalidKey
	}

	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		c.misses++
		return nil, false, nil
	}

	e := el.Value.(*entry)
	if e.expired(now) {
		c.removeElementLocked(el)
		c.expiredRemovals++
		c.misses++
		return nil, false, nil
	}

	c.lru.MoveToFront(el)
	c.hits++
	return e.value, true, nil
}

// Delete removes a key if present and reports whether it was found.
// Deleting an absent key is not an error and changes nothing.
func (c *Cache) Delete(key string) (bool, error) {
	if key == "" {
		return false, ErrInvalidKey
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		return false, nil
	}
	c.removeElementLocked(el)
	return true, nil
}

// Clear removes all entries. Cumulative statistics survive; only the live
// entry set is reset.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*list.Element)
	c.lru.Init()
}

// Len returns the number of currently stored entries.
//
// Note: Len includes entries that have expired but haven't been reaped yet.
// Lazy expiration removes them when accessed; the reaper removes them over
// time.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Keys returns keys in MRU -> LRU order.
//
// This is a debug helper used by the demo and tests.
func (c *Cache) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]string, 0, c.lru.Len())
	for el := c.lru.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value.(*entry).key)
	}
	return out
}

// evictLocked removes the least recently used entry. Recency is a total
// order (every access moves an entry to a unique front position), so the
// victim is always unambiguous.
func (c *Cache) evictLocked() {
	el := c.lru.Back()
	if el == nil {
		return
	}
	c.removeElementLocked(el)
	c.evictions++
}

// removeElementLocked unlinks an element from both structures in one step,
// keeping map and list consistent.
func (c *Cache) removeElementLocked(el *list.Element) {
	e := el.Value.(*entry)
	delete(c.items, e.key)
	c.lru.Remove(el)
}

// removeExpiredLocked removes all expired keys and counts each removal.
//
// This is O(n) and intentionally simple. More complex designs can track
// expirations in a min-heap or timing wheel, but that trades simplicity for
// performance, and n is bounded by capacity here.
func (c *Cache) removeExpiredLocked(now time.Time) int {
	removed := 0
	for _, el := range c.items {
		if el.Value.(*entry).expired(now) {
			c.removeElementLocked(el)
			c.expiredRemovals++
			removed++
		}
	}
	return removed
}
