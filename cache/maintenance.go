package cache

import (
	"context"
	"time"
)

// Start launches the background reaper that periodically removes expired
// entries. It is a no-op when the cache was built without a cleanup interval
// or when the reaper is already running.
func (c *Cache) Start() {
	c.lifecycle.Lock()
	defer c.lifecycle.Unlock()

	if c.cleanupEvery <= 0 || c.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.wg.Add(1)
	go c.reapLoop(ctx)
}

// Stop signals the reaper and waits for it to exit. An in-flight sweep runs
// to completion first; nothing is left running when Stop returns.
//
// Stop is safe to call multiple times, and before Start. The cache itself
// remains fully usable afterwards — stopping only releases the reaper.
func (c *Cache) Stop() {
	c.lifecycle.Lock()
	defer c.lifecycle.Unlock()

	if c.cancel == nil {
		return
	}
	c.cancel()
	c.wg.Wait()
	c.cancel = nil
}

// reapLoop periodically scans and removes expired entries.
//
// Why a ticker-based full scan?
//   - It's easy to reason about (correctness-first)
//   - It avoids per-entry goroutines/timers (which are expensive and hard to own)
//   - Ticker delivery coalesces, so a slow sweep skips ticks instead of
//     queueing them; a sweep never runs concurrently with itself
//
// Cancellation is observed only between sweeps, never mid-sweep.
func (c *Cache) reapLoop(ctx context.Context) {
	defer c.wg.Done()

	ticker := time.NewTicker(c.cleanupEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			c.reap(now)
		}
	}
}

// reap runs a single sweep. A panicking sweep must not kill the periodic
// schedule, so it is captured here and the next tick proceeds normally.
func (c *Cache) reap(now time.Time) {
	defer func() {
		_ = recover()
	}()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeExpiredLocked(now)
}
