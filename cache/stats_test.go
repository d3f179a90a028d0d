package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStatsInitiallyZero(t *testing.T) {
	r := require.New(t)
	c, err := New(Config{Capacity: 10})
	r.NoError(err)

	s := c.Stats()
	r.Zero(s.Hits)
	r.Zero(s.Misses)
	r.Zero(s.Evictions)
	r.Zero(s.ExpiredRemovals)
	r.Zero(s.TotalRequests)
	r.Zero(s.HitRate, "hit rate is defined as 0 when nothing was requested")
	r.Equal(0, s.CurrentSize)
}

func TestStatsHitsAndMisses(t *testing.T) {
	r := require.New(t)
	c, err := New(Config{Capacity: 10})
	r.NoError(err)

	r.NoError(c.Set("key1", "value1"))
	_, _, err = c.Get("key1") // hit
	r.NoError(err)
	_, _, err = c.Get("key1") // hit
	r.NoError(err)
	_, _, err = c.Get("missing") // miss
	r.NoError(err)

	s := c.Stats()
	r.Equal(uint64(2), s.Hits)
	r.Equal(uint64(1), s.Misses)
	r.Equal(uint64(3), s.TotalRequests)
	r.InDelta(2.0/3.0, s.HitRate, 1e-9)
	r.Equal(1, s.CurrentSize)
}

func TestStatsUpdateIsNotARequest(t *testing.T) {
	r := require.New(t)
	c, err := New(Config{Capacity: 10})
	r.NoError(err)

	r.NoError(c.Set("k", 1))
	r.NoError(c.Set("k", 2)) // refresh, not a hit or miss

	s := c.Stats()
	r.Zero(s.TotalRequests)
	r.Equal(1, s.CurrentSize)
}

func TestStatsEvictions(t *testing.T) {
	r := require.New(t)
	c, err := New(Config{Capacity: 3})
	r.NoError(err)

	// Five inserts into a 3-slot cache cause exactly two evictions.
	for i := 0; i < 5; i++ {
		r.NoError(c.Set(fmt.Sprintf("key%d", i), i))
	}

	s := c.Stats()
	r.Equal(uint64(2), s.Evictions)
	r.Equal(3, s.CurrentSize)
}

func TestStatsExpiredRemovals(t *testing.T) {
	r := require.New(t)
	c, err := New(Config{Capacity: 10, DefaultTTL: 20 * time.Millisecond})
	r.NoError(err)

	r.NoError(c.Set("temp1", "value1"))
	r.NoError(c.Set("temp2", "value2"))

	time.Sleep(50 * time.Millisecond)

	// Lazy expiration: each lookup removes one dead entry and counts a miss.
	_, ok, err := c.Get("temp1")
	r.NoError(err)
	r.False(ok)
	_, ok, err = c.Get("temp2")
	r.NoError(err)
	r.False(ok)

	s := c.Stats()
	r.Equal(uint64(2), s.ExpiredRemovals)
	r.Equal(uint64(2), s.Misses)
	r.Equal(0, s.CurrentSize)
}
