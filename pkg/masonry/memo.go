package masonry

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/mosaic/pkg/cache"
	"github.com/matzehuels/mosaic/pkg/observability"
)

// Memo memoises layout passes keyed on the exact inputs: item ids and
// heights in order, column count, container width and display scale.
// Results are encoded as JSON, so callers always receive a fresh copy.
type Memo struct {
	cache cache.Cache
	keyer cache.Keyer
	scale float64
}

// MemoOption configures a Memo.
type MemoOption func(*Memo)

// WithCache replaces the default in-memory LRU.
func WithCache(c cache.Cache) MemoOption { return func(m *Memo) { m.cache = c } }

// WithKeyer replaces the default keyer.
func WithKeyer(k cache.Keyer) MemoOption { return func(m *Memo) { m.keyer = k } }

// WithScale sets the display scale used for every pass.
func WithScale(s float64) MemoOption { return func(m *Memo) { m.scale = s } }

// NewMemo creates a memoising front for [ComputeScaled].
func NewMemo(opts ...MemoOption) *Memo {
	m := &Memo{scale: DisplayScale}
	for _, opt := range opts {
		opt(m)
	}
	if m.cache == nil {
		m.cache = cache.NewMemoryCache(cache.DefaultMemoryEntries)
	}
	if m.keyer == nil {
		m.keyer = cache.NewDefaultKeyer()
	}
	return m
}

// Compute returns the layout for the inputs, from cache when available.
// Cache failures fall through to a fresh computation.
func (m *Memo) Compute(ctx context.Context, items []Item, columns int, width float64) (Result, error) {
	key := m.keyer.LayoutKey(Fingerprint(items), cache.LayoutKeyOpts{
		Columns:      columns,
		Width:        measured(width),
		DisplayScale: m.scale,
	})

	if data, hit, err := m.cache.Get(ctx, key); err == nil && hit {
		var res Result
		if json.Unmarshal(data, &res) == nil {
			observability.Cache().OnCacheHit(ctx, "layout")
			return res, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	start := time.Now()
	res, err := ComputeScaled(items, columns, width, m.scale)
	if err != nil {
		return Result{}, err
	}
	observability.Layout().OnLayoutComplete(ctx, len(items), columns, res.Width, res.Height, time.Since(start))

	if data, err := json.Marshal(res); err == nil {
		if m.cache.Set(ctx, key, data, 0) == nil {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}
	return res, nil
}

// Close releases the underlying cache.
func (m *Memo) Close() error {
	return m.cache.Close()
}

// Fingerprint identifies an ordered item sequence by ids and heights.
func Fingerprint(items []Item) string {
	var b strings.Builder
	for _, it := range items {
		b.WriteString(it.ID)
		b.WriteByte('=')
		b.WriteString(strconv.FormatFloat(it.NaturalHeight, 'g', -1, 64))
		b.WriteByte(';')
	}
	return cache.Hash([]byte(b.String()))
}
