package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/jedisct1/dlog"

	"lrucache/cache"
)

func main() {
	dlog.Init("cachedemo", dlog.SeverityInfo, "")

	// Signal-aware context is the root of ownership for long-lived background
	// work. When SIGINT/SIGTERM arrives, ctx is canceled and we stop early.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	basicOperationsDemo()
	evictionDemo()
	expirationDemo(ctx)
	concurrentAccessDemo()

	fmt.Println("Done.")
}

func basicOperationsDemo() {
	dlog.Notice("=== Basic operations ===")

	c, err := cache.New(cache.Config{Capacity: 1000, DefaultTTL: 5 * time.Minute})
	if err != nil {
		dlog.Fatal(err)
	}

	must(c.Set("config:db_host", "localhost:5432"))
	must(c.SetTTL("config:api_key", "abc123", time.Minute))

	if v, ok, _ := c.Get("config:db_host"); ok {
		dlog.Infof("GET config:db_host = %v", v)
	}
	if v, ok, _ := c.Get("config:api_key"); ok {
		dlog.Infof("GET config:api_key = %v", v)
	}

	if found, _ := c.Delete("config:db_host"); found {
		dlog.Info("DELETE config:db_host")
	}
	if _, ok, _ := c.Get("config:db_host"); !ok {
		dlog.Info("GET config:db_host: missing (deleted)")
	}

	must(c.Set("temp_key", "temp_value"))
	c.Clear()
	if _, ok, _ := c.Get("temp_key"); !ok {
		dlog.Infof("after clear: temp_key missing, size=%d", c.Len())
	}
}

func evictionDemo() {
	dlog.Notice("=== LRU eviction ===")

	c, err := cache.New(cache.Config{Capacity: 10})
	if err != nil {
		dlog.Fatal(err)
	}

	for i := 0; i < 10; i++ {
		must(c.Set(fmt.Sprintf("key%d", i), fmt.Sprintf("value%d", i)))
	}

	// Touch the first three so key3 becomes the eviction victim.
	for i := 0; i < 3; i++ {
		if _, ok, _ := c.Get(fmt.Sprintf("key%d", i)); ok {
			dlog.Infof("GET key%d (touches it -> MRU)", i)
		}
	}

	must(c.Set("new_key", "new_value"))

	for i := 0; i < 10; i++ {
		key := fmt.Sprintf("key%d", i)
		if _, ok, _ := c.Get(key); !ok {
			dlog.Infof("GET %s: missing (evicted as LRU)", key)
		}
	}
	dlog.Infof("keys after eviction (MRU->LRU): %v", c.Keys())

	logStats(c)
}

func expirationDemo(ctx context.Context) {
	dlog.Notice("=== TTL expiration (background reaper) ===")

	c, err := cache.New(cache.Config{Capacity: 100, CleanupInterval: 100 * time.Millisecond})
	if err != nil {
		dlog.Fatal(err)
	}
	c.Start()
	defer c.Stop()

	// Add a short-lived key. We intentionally do NOT call Get() after it
	// expires; the reaper should remove it during its periodic scan.
	must(c.SetTTL("temp_data", "expires_soon", 200*time.Millisecond))
	dlog.Infof("keys after set (MRU->LRU): %v", c.Keys())

	// Wait long enough for expiry + at least one reaper tick.
	wait := time.NewTimer(500 * time.Millisecond)
	defer wait.Stop()

	select {
	case <-ctx.Done():
		dlog.Notice("received shutdown signal")
		return
	case <-wait.C:
	}

	dlog.Infof("keys after ttl + reaper sweep: %v", c.Keys())
	logStats(c)
}

func concurrentAccessDemo() {
	dlog.Notice("=== Concurrent access ===")

	c, err := cache.New(cache.Config{Capacity: 1000})
	if err != nil {
		dlog.Fatal(err)
	}

	var wg sync.WaitGroup
	for w := 0; w < 5; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				must(c.Set(fmt.Sprintf("worker_%d:item_%d", id, i), fmt.Sprintf("data_%d", i)))
				_, _, _ = c.Get(fmt.Sprintf("worker_%d:item_%d", id, i/2))
			}
		}(w)
	}
	wg.Wait()

	dlog.Info("all workers completed")
	logStats(c)
}

func logStats(c *cache.Cache) {
	s := c.Stats()
	dlog.Infof("stats: hits=%d misses=%d hit_rate=%.2f requests=%d size=%d evictions=%d expired=%d",
		s.Hits, s.Misses, s.HitRate, s.TotalRequests, s.CurrentSize, s.Evictions, s.ExpiredRemovals)
}

func must(err error) {
	if err != nil {
		dlog.Fatal(err)
	}
}
