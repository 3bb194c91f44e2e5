package metrics

import (
	"context"
	"strconv"
	"time"

	"github.com/matzehuels/sgdraw/pkg/observability"
)

var (
	_ observability.LayoutHooks = (*Registry)(nil)
	_ observability.CacheHooks  = (*Registry)(nil)
	_ observability.HTTPHooks   = (*Registry)(nil)
)

// OnLayoutStart implements [observability.LayoutHooks].
func (r *Registry) OnLayoutStart(_ context.Context, strategy string, _, pairCount int) {
	r.LayoutsInFlight.Inc()
	r.PairsGeneratedTotal.WithLabelValues(strategy).Add(float64(pairCount))
}

// OnIteration implements [observability.LayoutHooks].
func (r *Registry) OnIteration(context.Context, int, float64) {
	r.LayoutIterationsTotal.Inc()
}

// OnLayoutComplete implements [observability.LayoutHooks].
func (r *Registry) OnLayoutComplete(_ context.Context, strategy string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	r.LayoutsInFlight.Dec()
	r.LayoutsTotal.WithLabelValues(strategy, status).Inc()
	r.LayoutDuration.WithLabelValues(strategy).Observe(duration.Seconds())
}

// OnCacheHit implements [observability.CacheHooks].
func (r *Registry) OnCacheHit(_ context.Context, keyType string) {
	r.CacheHitsTotal.WithLabelValues(keyType).Inc()
}

// OnCacheMiss implements [observability.CacheHooks].
func (r *Registry) OnCacheMiss(_ context.Context, keyType string) {
	r.CacheMissesTotal.WithLabelValues(keyType).Inc()
}

// OnCacheSet implements [observability.CacheHooks].
func (r *Registry) OnCacheSet(_ context.Context, keyType string, _ int) {
	r.CacheWritesTotal.WithLabelValues(keyType).Inc()
}

// OnRequest implements [observability.HTTPHooks].
func (r *Registry) OnRequest(_ context.Context, method, route string, status int, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
