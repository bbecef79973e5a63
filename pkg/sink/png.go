package sink

import (
	"bytes"
	"fmt"
	"math"

	"github.com/fogleman/gg"

	"github.com/matzehuels/mosaic/pkg/masonry"
)

// PNGOption configures PNG rendering via [RenderPNG].
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale      float64
	gap        float64
	labels     Labels
	showLabels bool
}

// WithPNGScale sets the pixel density (default 1.0).
func WithPNGScale(s float64) PNGOption {
	return func(r *pngRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// WithPNGGap insets every tile by px on each side.
func WithPNGGap(px float64) PNGOption { return func(r *pngRenderer) { r.gap = px } }

// WithPNGLabels draws the given labels in the centre of each tile.
func WithPNGLabels(l Labels) PNGOption {
	return func(r *pngRenderer) { r.labels, r.showLabels = l, true }
}

// maxPNGSide bounds each side of the image in pixels.
const maxPNGSide = 16384

// RenderPNG rasterises the layout. It fails when the layout has no area or
// the scaled image would exceed 16384 pixels on a side.
func RenderPNG(res masonry.Result, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 1, gap: 2}
	for _, opt := range opts {
		opt(&r)
	}

	w := int(math.Ceil(res.Width * r.scale))
	h := int(math.Ceil(res.Height * r.scale))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("png: empty layout (%dx%d)", w, h)
	}
	if w > maxPNGSide || h > maxPNGSide {
		return nil, fmt.Errorf("png: %dx%d exceeds %d pixels per side", w, h, maxPNGSide)
	}

	dc := gg.NewContext(w, h)
	dc.Scale(r.scale, r.scale)
	dc.SetHexColor(backgroundColor)
	dc.Clear()

	for _, p := range res.Placements {
		x, y, pw, ph := inset(p, r.gap)
		if pw <= 0 || ph <= 0 {
			continue
		}
		dc.SetHexColor(TileColor(p.ID))
		dc.DrawRoundedRectangle(x, y, pw, ph, 4)
		dc.Fill()

		if r.showLabels {
			dc.SetHexColor(labelColor)
			dc.DrawStringAnchored(r.labels.of(p.ID), p.X+p.Width/2, p.Y+p.Height/2, 0.5, 0.5)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("png: encode: %w", err)
	}
	return buf.Bytes(), nil
}
