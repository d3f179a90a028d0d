package cache

import "github.com/prometheus/client_golang/prometheus"

// Collector exposes a cache's statistics as Prometheus metrics. Each scrape
// reads one Stats snapshot, so the exported series are mutually consistent
// (hits+misses always equals the request total at the same instant).
//
// Register it with a prometheus.Registerer:
//
//	reg.MustRegister(cache.NewCollector(c, "myapp"))
type Collector struct {
	cache *Cache

	hits            *prometheus.Desc
	misses          *prometheus.Desc
	evictions       *prometheus.Desc
	expiredRemovals *prometheus.Desc
	entries         *prometheus.Desc
	hitRatio        *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector builds a Collector for c. namespace may be empty.
func NewCollector(c *Cache, namespace string) *Collector {
	fq := func(name string) string {
		return prometheus.BuildFQName(namespace, "cache", name)
	}
	return &Collector{
		cache: c,
		hits: prometheus.NewDesc(fq("hits_total"),
			"Number of cache lookups that returned a live value.", nil, nil),
		misses: prometheus.NewDesc(fq("misses_total"),
			"Number of cache lookups that found nothing or an expired entry.", nil, nil),
		evictions: prometheus.NewDesc(fq("evictions_total"),
			"Number of entries evicted to stay within capacity.", nil, nil),
		expiredRemovals: prometheus.NewDesc(fq("expired_removals_total"),
			"Number of entries removed because their TTL elapsed.", nil, nil),
		entries: prometheus.NewDesc(fq("entries"),
			"Number of entries currently stored.", nil, nil),
		hitRatio: prometheus.NewDesc(fq("hit_ratio"),
			"Lifetime ratio of hits to lookups, 0 when nothing was looked up.", nil, nil),
	}
}

// Describe implements prometheus.Collector.
func (col *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- col.hits
	ch <- col.misses
	ch <- col.evictions
	ch <- col.expiredRemovals
	ch <- col.entries
	ch <- col.hitRatio
}

// Collect implements prometheus.Collector.
func (col *Collector) Collect(ch chan<- prometheus.Metric) {
	s := col.cache.Stats()
	ch <- prometheus.MustNewConstMetric(col.hits, prometheus.CounterValue, float64(s.Hits))
	ch <- prometheus.MustNewConstMetric(col.misses, prometheus.CounterValue, float64(s.Misses))
	ch <- prometheus.MustNewConstMetric(col.evictions, prometheus.CounterValue, float64(s.Evictions))
	ch <- prometheus.MustNewConstMetric(col.expiredRemovals, prometheus.CounterValue, float64(s.ExpiredRemovals))
	ch <- prometheus.MustNewConstMetric(col.entries, prometheus.GaugeValue, float64(s.CurrentSize))
	ch <- prometheus.MustNewConstMetric(col.hitRatio, prometheus.GaugeValue, s.HitRate)
}
