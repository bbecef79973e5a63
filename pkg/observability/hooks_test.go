package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	l := NoopLayoutHooks{}
	l.OnLayoutComplete(ctx, 30, 4, 1200, 3400, time.Millisecond)
	l.OnColumnsChanged(ctx, 3, 4, 1024)

	s := NoopShuffleHooks{}
	s.OnShuffle(ctx, 30, true)
	s.OnSchedulerStart(ctx, 5*time.Second)
	s.OnSchedulerStop(ctx)

	v := NoopViewerHooks{}
	v.OnOpen(ctx, "id", 2)
	v.OnNavigate(ctx, "id", 3)
	v.OnClose(ctx)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "layout")
	c.OnCacheMiss(ctx, "layout")
	c.OnCacheSet(ctx, "artifact", 1024)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Layout().(NoopLayoutHooks); !ok {
		t.Error("Layout() should return NoopLayoutHooks by default")
	}
	if _, ok := Shuffle().(NoopShuffleHooks); !ok {
		t.Error("Shuffle() should return NoopShuffleHooks by default")
	}
	if _, ok := Viewer().(NoopViewerHooks); !ok {
		t.Error("Viewer() should return NoopViewerHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	customLayout := &testLayoutHooks{}
	SetLayoutHooks(customLayout)
	if Layout() != customLayout {
		t.Error("SetLayoutHooks should set custom hooks")
	}

	customShuffle := &testShuffleHooks{}
	SetShuffleHooks(customShuffle)
	if Shuffle() != customShuffle {
		t.Error("SetShuffleHooks should set custom hooks")
	}

	customViewer := &testViewerHooks{}
	SetViewerHooks(customViewer)
	if Viewer() != customViewer {
		t.Error("SetViewerHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	Reset()
	if _, ok := Layout().(NoopLayoutHooks); !ok {
		t.Error("Reset() should restore NoopLayoutHooks")
	}
	if _, ok := Viewer().(NoopViewerHooks); !ok {
		t.Error("Reset() should restore NoopViewerHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testViewerHooks{}
	SetViewerHooks(custom)

	SetViewerHooks(nil)

	if Viewer() != custom {
		t.Error("SetViewerHooks(nil) should be ignored")
	}

	Reset()
}

type testLayoutHooks struct{ NoopLayoutHooks }
type testShuffleHooks struct{ NoopShuffleHooks }
type testViewerHooks struct{ NoopViewerHooks }
type testCacheHooks struct{ NoopCacheHooks }
