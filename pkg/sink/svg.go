package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/mosaic/pkg/masonry"
)

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	labels     Labels
	showLabels bool
	gap        float64
}

// WithLabels draws the label of each tile.
func WithLabels() SVGOption { return func(r *svgRenderer) { r.showLabels = true } }

// WithImages sets the labels from the image references of items.
func WithImages(items []masonry.Item) SVGOption {
	return func(r *svgRenderer) { r.labels = LabelsOf(items) }
}

// WithGap insets every tile by px on each side.
func WithGap(px float64) SVGOption { return func(r *svgRenderer) { r.gap = px } }

// RenderSVG draws the layout as an SVG document sized to the container.
func RenderSVG(res masonry.Result, opts ...SVGOption) []byte {
	r := svgRenderer{gap: 2}
	for _, opt := range opts {
		opt(&r)
	}

	w, h := res.Width, res.Height
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", backgroundColor)

	for _, p := range res.Placements {
		x, y, pw, ph := inset(p, r.gap)
		fmt.Fprintf(&buf, `  <rect id="tile-%s" x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="4" fill="%s"/>`+"\n",
			escape(p.ID), x, y, pw, ph, TileColor(p.ID))
		if r.showLabels && pw > 0 {
			fmt.Fprintf(&buf, `  <text x="%.2f" y="%.2f" font-family="monospace" font-size="12" fill="%s" text-anchor="middle">%s</text>`+"\n",
				p.X+p.Width/2, p.Y+p.Height/2, labelColor, escape(r.labels.of(p.ID)))
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// inset shrinks p by gap on every side, never below zero size.
func inset(p masonry.Placement, gap float64) (x, y, w, h float64) {
	w = max(p.Width-2*gap, 0)
	h = max(p.Height-2*gap, 0)
	return p.X + gap, p.Y + gap, w, h
}

func escape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
