package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// QueryCacheMetrics records hit/miss/invalidation counts per resource.
type QueryCacheMetrics struct {
	hits          *prometheus.CounterVec
	misses        *prometheus.CounterVec
	invalidations *prometheus.CounterVec
}

// NewQueryCacheMetrics registers the cache metrics on the provided registerer.
func NewQueryCacheMetrics(reg prometheus.Registerer) *QueryCacheMetrics {
	if reg == nil {
		return &QueryCacheMetrics{}
	}
	hits := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "query_cache_hits",
		Help: "Query cache hits.",
	}, []string{"resource"})
	misses := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "query_cache_misses",
		Help: "Query cache misses.",
	}, []string{"resource"})
	invalidations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "query_cache_invalidations",
		Help: "Query cache invalidations.",
	}, []string{"resource"})
	reg.MustRegister(hits, misses, invalidations)
	return &QueryCacheMetrics{
		hits:          hits,
		misses:        misses,
		invalidations: invalidations,
	}
}

// IncHit increments the hit counter for the named resource.
func (m *QueryCacheMetrics) IncHit(resource string) {
	if m == nil || m.hits == nil {
		return
	}
	m.hits.WithLabelValues(normalizeLabel(resource)).Inc()
}

// IncMiss increments the miss counter for the named resource.
func (m *QueryCacheMetrics) IncMiss(resource string) {
	if m == nil || m.misses == nil {
		return
	}
	m.misses.WithLabelValues(normalizeLabel(resource)).Inc()
}

// IncInvalidation increments the invalidation counter for the named resource.
func (m *QueryCacheMetrics) IncInvalidation(resource string) {
	if m == nil || m.invalidations == nil {
		return
	}
	m.invalidations.WithLabelValues(normalizeLabel(resource)).Inc()
}

func normalizeLabel(resource string) string {
	if resource == "" {
		return "unknown"
	}
	return resource
}
