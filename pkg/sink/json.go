package sink

import (
	"encoding/json"

	"github.com/matzehuels/mosaic/pkg/masonry"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	labels Labels
	scale  float64
	seed   uint64
}

// WithJSONLabels attaches image references to the exported tiles.
func WithJSONLabels(l Labels) JSONOption { return func(r *jsonRenderer) { r.labels = l } }

// WithJSONScale records the display scale the layout was computed with.
func WithJSONScale(s float64) JSONOption { return func(r *jsonRenderer) { r.scale = s } }

// WithJSONSeed records the shuffle seed that produced the item order, so the
// export can be reproduced.
func WithJSONSeed(seed uint64) JSONOption { return func(r *jsonRenderer) { r.seed = seed } }

type jsonOutput struct {
	Width   float64    `json:"width"`
	Height  float64    `json:"height"`
	Columns []float64  `json:"columns"`
	Scale   float64    `json:"scale,omitempty"`
	Seed    uint64     `json:"seed,omitempty"`
	Tiles   []jsonTile `json:"tiles"`
}

type jsonTile struct {
	ID     string  `json:"id"`
	Image  string  `json:"image,omitempty"`
	Column int     `json:"column"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// RenderJSON exports the layout as a pretty-printed JSON document. Tiles keep
// the order of the layout input. RenderJSON does not modify res.
func RenderJSON(res masonry.Result, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Width:   res.Width,
		Height:  res.Height,
		Columns: res.Columns,
		Scale:   r.scale,
		Seed:    r.seed,
		Tiles:   make([]jsonTile, len(res.Placements)),
	}
	if out.Columns == nil {
		out.Columns = []float64{}
	}

	colWidth := res.ColumnWidth()
	for i, p := range res.Placements {
		t := jsonTile{ID: p.ID, X: p.X, Y: p.Y, Width: p.Width, Height: p.Height}
		if r.labels != nil {
			t.Image = r.labels[p.ID]
		}
		if colWidth > 0 {
			t.Column = int(p.X/colWidth + 0.5)
		}
		out.Tiles[i] = t
	}

	return json.MarshalIndent(out, "", "  ")
}
