package cache

// Stats is a point-in-time snapshot of the cache's operational counters.
//
// The counters are cumulative for the cache's lifetime: Clear empties the
// entry set but does not reset them. TotalRequests is always Hits+Misses,
// and HitRate is Hits/TotalRequests (0 when nothing was requested yet).
type Stats struct {
	Hits            uint64
	Misses          uint64
	Evictions       uint64
	ExpiredRemovals uint64
	TotalRequests   uint64
	HitRate         float64
	CurrentSize     int
}

// Stats returns a consistent snapshot of all counters plus the current entry
// count. The snapshot is taken under the cache lock, so it reflects a single
// coherent state rather than counters sampled mid-operation.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{
		Hits:            c.hits,
		Misses:          c.misses,
		Evictions:       c.evictions,
		ExpiredRemovals: c.expiredRemovals,
		CurrentSize:     len(c.items),
	}
	s.TotalRequests = s.Hits + s.Misses
	if s.TotalRequests > 0 {
		s.HitRate = float64(s.Hits) / float64(s.TotalRequests)
	}
	return s
}
