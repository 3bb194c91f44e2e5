package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Layout hooks
	l := NoopLayoutHooks{}
	l.OnLayoutStart(ctx, "sparse", 100, 450)
	l.OnIteration(ctx, 3, 0.5)
	l.OnLayoutComplete(ctx, "sparse", time.Second, nil)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "pairs")
	c.OnCacheMiss(ctx, "layout")
	c.OnCacheSet(ctx, "layout", 1024)

	// HTTP hooks
	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "/api/v1/layouts/{id}", 200, time.Second)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Layout().(NoopLayoutHooks); !ok {
		t.Error("Layout() should return NoopLayoutHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	// Set custom hooks
	customLayout := &testLayoutHooks{}
	SetLayoutHooks(customLayout)
	if Layout() != customLayout {
		t.Error("SetLayoutHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Layout().(NoopLayoutHooks); !ok {
		t.Error("Reset() should restore NoopLayoutHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testLayoutHooks{}
	SetLayoutHooks(custom)

	// Setting nil should be ignored
	SetLayoutHooks(nil)

	if Layout() != custom {
		t.Error("SetLayoutHooks(nil) should be ignored")
	}

	Reset()
}

func TestComposeLayoutHooks(t *testing.T) {
	ctx := context.Background()
	first := &countingLayoutHooks{}
	second := &countingLayoutHooks{}

	composed := ComposeLayoutHooks(first, nil, second)
	composed.OnLayoutStart(ctx, "full", 10, 45)
	composed.OnIteration(ctx, 0, 1.5)
	composed.OnIteration(ctx, 1, 0.75)
	composed.OnLayoutComplete(ctx, "full", time.Millisecond, nil)

	for i, h := range []*countingLayoutHooks{first, second} {
		if h.starts != 1 || h.iterations != 2 || h.completes != 1 {
			t.Errorf("hook %d counts = %d/%d/%d, want 1/2/1",
				i, h.starts, h.iterations, h.completes)
		}
	}
}

func TestComposeCacheHooks(t *testing.T) {
	ctx := context.Background()
	first := &countingCacheHooks{}
	second := &countingCacheHooks{}

	composed := ComposeCacheHooks(first, nil, second)
	composed.OnCacheHit(ctx, "pairs")
	composed.OnCacheMiss(ctx, "pairs")
	composed.OnCacheSet(ctx, "pairs", 64)

	for i, h := range []*countingCacheHooks{first, second} {
		if h.hits != 1 || h.misses != 1 || h.sets != 1 {
			t.Errorf("hook %d counts = %d/%d/%d, want 1/1/1",
				i, h.hits, h.misses, h.sets)
		}
	}
}

// Test implementations
type testLayoutHooks struct{ NoopLayoutHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }

type countingLayoutHooks struct {
	starts, iterations, completes int
}

func (h *countingLayoutHooks) OnLayoutStart(context.Context, string, int, int) { h.starts++ }
func (h *countingLayoutHooks) OnIteration(context.Context, int, float64)       { h.iterations++ }
func (h *countingLayoutHooks) OnLayoutComplete(context.Context, string, time.Duration, error) {
	h.completes++
}

type countingCacheHooks struct {
	hits, misses, sets int
}

func (h *countingCacheHooks) OnCacheHit(context.Context, string)      { h.hits++ }
func (h *countingCacheHooks) OnCacheMiss(context.Context, string)     { h.misses++ }
func (h *countingCacheHooks) OnCacheSet(context.Context, string, int) { h.sets++ }
