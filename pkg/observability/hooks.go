// Package observability provides hooks for metrics, tracing, and logging.
//
// The core packages emit events through these hooks without depending on a
// logging or metrics backend. The CLI registers a logging implementation at
// startup; everything else sees the no-op defaults.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetLayoutHooks(&myLayoutHooks{})
//	    observability.SetViewerHooks(&myViewerHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Layout().OnLayoutComplete(ctx, items, columns, width, height, duration)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Layout Hooks
// =============================================================================

// LayoutHooks receives events from the masonry layout engine.
type LayoutHooks interface {
	OnLayoutComplete(ctx context.Context, items, columns int, width, height float64, duration time.Duration)
	OnColumnsChanged(ctx context.Context, from, to int, viewportWidth float64)
}

// =============================================================================
// Shuffle Hooks
// =============================================================================

// ShuffleHooks receives events from the shuffle scheduler.
type ShuffleHooks interface {
	OnShuffle(ctx context.Context, items int, immediate bool)
	OnSchedulerStart(ctx context.Context, interval time.Duration)
	OnSchedulerStop(ctx context.Context)
}

// =============================================================================
// Viewer Hooks
// =============================================================================

// ViewerHooks receives events from the lightbox state machine.
type ViewerHooks interface {
	OnOpen(ctx context.Context, id string, index int)
	OnNavigate(ctx context.Context, id string, index int)
	OnClose(ctx context.Context)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopLayoutHooks is a no-op implementation of LayoutHooks.
type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnLayoutComplete(context.Context, int, int, float64, float64, time.Duration) {
}
func (NoopLayoutHooks) OnColumnsChanged(context.Context, int, int, float64) {}

// NoopShuffleHooks is a no-op implementation of ShuffleHooks.
type NoopShuffleHooks struct{}

func (NoopShuffleHooks) OnShuffle(context.Context, int, bool)                {}
func (NoopShuffleHooks) OnSchedulerStart(context.Context, time.Duration)     {}
func (NoopShuffleHooks) OnSchedulerStop(context.Context)                     {}

// NoopViewerHooks is a no-op implementation of ViewerHooks.
type NoopViewerHooks struct{}

func (NoopViewerHooks) OnOpen(context.Context, string, int)     {}
func (NoopViewerHooks) OnNavigate(context.Context, string, int) {}
func (NoopViewerHooks) OnClose(context.Context)                 {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	layoutHooks  LayoutHooks  = NoopLayoutHooks{}
	shuffleHooks ShuffleHooks = NoopShuffleHooks{}
	viewerHooks  ViewerHooks  = NoopViewerHooks{}
	cacheHooks   CacheHooks   = NoopCacheHooks{}
	hooksMu      sync.RWMutex
)

// SetLayoutHooks registers custom layout hooks.
// This should be called once at application startup.
func SetLayoutHooks(h LayoutHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		layoutHooks = h
	}
}

// SetShuffleHooks registers custom shuffle hooks.
func SetShuffleHooks(h ShuffleHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		shuffleHooks = h
	}
}

// SetViewerHooks registers custom viewer hooks.
func SetViewerHooks(h ViewerHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		viewerHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Layout returns the registered layout hooks.
func Layout() LayoutHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return layoutHooks
}

// Shuffle returns the registered shuffle hooks.
func Shuffle() ShuffleHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return shuffleHooks
}

// Viewer returns the registered viewer hooks.
func Viewer() ViewerHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return viewerHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	layoutHooks = NoopLayoutHooks{}
	shuffleHooks = NoopShuffleHooks{}
	viewerHooks = NoopViewerHooks{}
	cacheHooks = NoopCacheHooks{}
}
