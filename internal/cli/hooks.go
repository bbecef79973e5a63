package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mosaic/pkg/observability"
)

// logHooks forwards observability events to a logger. Frequent events log
// at debug level; viewer transitions and column changes log at info.
type logHooks struct {
	logger *log.Logger
}

// registerLogHooks routes every observability hook to l.
func registerLogHooks(l *log.Logger) {
	h := logHooks{logger: l}
	observability.SetLayoutHooks(h)
	observability.SetShuffleHooks(h)
	observability.SetViewerHooks(h)
	observability.SetCacheHooks(h)
}

func (h logHooks) OnLayoutComplete(_ context.Context, items, columns int, width, height float64, d time.Duration) {
	h.logger.Debug("layout", "items", items, "columns", columns, "width", width, "height", height, "took", d)
}

func (h logHooks) OnColumnsChanged(_ context.Context, from, to int, viewportWidth float64) {
	h.logger.Info("columns changed", "from", from, "to", to, "viewport", viewportWidth)
}

func (h logHooks) OnShuffle(_ context.Context, items int, immediate bool) {
	h.logger.Debug("shuffle", "items", items, "immediate", immediate)
}

func (h logHooks) OnSchedulerStart(_ context.Context, interval time.Duration) {
	h.logger.Debug("shuffle timer started", "interval", interval)
}

func (h logHooks) OnSchedulerStop(context.Context) {
	h.logger.Debug("shuffle timer stopped")
}

func (h logHooks) OnOpen(_ context.Context, id string, index int) {
	h.logger.Info("lightbox open", "id", id, "index", index)
}

func (h logHooks) OnNavigate(_ context.Context, id string, index int) {
	h.logger.Debug("lightbox navigate", "id", id, "index", index)
}

func (h logHooks) OnClose(context.Context) {
	h.logger.Info("lightbox closed")
}

func (h logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}
