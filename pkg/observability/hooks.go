// Package observability provides hooks for instrumenting layout runs,
// cache operations, and the HTTP API.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about layout execution, cache operations, and served
// requests.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the layout core dependency-free from observability frameworks
//   - Allows different backends (Prometheus, logging, a live TUI) to
//     subscribe to the same events
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetLayoutHooks(registry)
//	    observability.SetCacheHooks(registry)
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Layout().OnLayoutStart(ctx, "sparse", nodes, pairs)
//	// ... run the schedule ...
//	observability.Layout().OnLayoutComplete(ctx, "sparse", elapsed, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Layout Hooks
// =============================================================================

// LayoutHooks receives events from layout runs.
type LayoutHooks interface {
	// OnLayoutStart records the beginning of a run: the pair-generation
	// strategy and the problem size it operates on.
	OnLayoutStart(ctx context.Context, strategy string, nodeCount, pairCount int)

	// OnIteration records one completed scheduler iteration and the
	// learning rate it applied.
	OnIteration(ctx context.Context, iteration int, eta float64)

	// OnLayoutComplete records the end of a run.
	OnLayoutComplete(ctx context.Context, strategy string, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP API.
type HTTPHooks interface {
	// OnRequest records one served request. route is the matched route
	// pattern, not the raw URL path.
	OnRequest(ctx context.Context, method, route string, status int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopLayoutHooks is a no-op implementation of LayoutHooks.
type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnLayoutStart(context.Context, string, int, int)                {}
func (NoopLayoutHooks) OnIteration(context.Context, int, float64)                      {}
func (NoopLayoutHooks) OnLayoutComplete(context.Context, string, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Composition
// =============================================================================

// ComposeLayoutHooks fans layout events out to every hook in order. Nil
// entries are skipped.
func ComposeLayoutHooks(hooks ...LayoutHooks) LayoutHooks {
	return multiLayoutHooks(hooks)
}

type multiLayoutHooks []LayoutHooks

func (m multiLayoutHooks) OnLayoutStart(ctx context.Context, strategy string, nodeCount, pairCount int) {
	for _, h := range m {
		if h != nil {
			h.OnLayoutStart(ctx, strategy, nodeCount, pairCount)
		}
	}
}

func (m multiLayoutHooks) OnIteration(ctx context.Context, iteration int, eta float64) {
	for _, h := range m {
		if h != nil {
			h.OnIteration(ctx, iteration, eta)
		}
	}
}

func (m multiLayoutHooks) OnLayoutComplete(ctx context.Context, strategy string, duration time.Duration, err error) {
	for _, h := range m {
		if h != nil {
			h.OnLayoutComplete(ctx, strategy, duration, err)
		}
	}
}

// ComposeCacheHooks fans cache events out to every hook in order. Nil
// entries are skipped.
func ComposeCacheHooks(hooks ...CacheHooks) CacheHooks {
	return multiCacheHooks(hooks)
}

type multiCacheHooks []CacheHooks

func (m multiCacheHooks) OnCacheHit(ctx context.Context, keyType string) {
	for _, h := range m {
		if h != nil {
			h.OnCacheHit(ctx, keyType)
		}
	}
}

func (m multiCacheHooks) OnCacheMiss(ctx context.Context, keyType string) {
	for _, h := range m {
		if h != nil {
			h.OnCacheMiss(ctx, keyType)
		}
	}
}

func (m multiCacheHooks) OnCacheSet(ctx context.Context, keyType string, size int) {
	for _, h := range m {
		if h != nil {
			h.OnCacheSet(ctx, keyType, size)
		}
	}
}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	layoutHooks LayoutHooks = NoopLayoutHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	httpHooks   HTTPHooks   = NoopHTTPHooks{}
	hooksMu     sync.RWMutex
)

// SetLayoutHooks registers custom layout hooks.
// This should be called once at application startup before any layout runs.
func SetLayoutHooks(h LayoutHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		layoutHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before the server starts.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Layout returns the registered layout hooks.
func Layout() LayoutHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return layoutHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	layoutHooks = NoopLayoutHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
