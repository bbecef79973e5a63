package masonry

import (
	"math"

	"github.com/matzehuels/mosaic/pkg/errors"
)

// DisplayScale is the fixed factor applied to an item's natural height.
const DisplayScale = 0.5

// Item is a single tile in the grid. ID is unique and stable across reorders.
type Item struct {
	ID            string
	Image         string
	NaturalHeight float64
}

// RenderHeight returns the item's on-screen height at the given scale.
func (it Item) RenderHeight(scale float64) float64 { return it.NaturalHeight * scale }

// Placement is the computed box for one item. All values are in logical pixels.
type Placement struct {
	ID     string
	X, Y   float64
	Width  float64
	Height float64
}

// Right returns the right edge of the placement.
func (p Placement) Right() float64 { return p.X + p.Width }

// Bottom returns the bottom edge of the placement.
func (p Placement) Bottom() float64 { return p.Y + p.Height }

// Area returns width × height.
func (p Placement) Area() float64 { return p.Width * p.Height }

// Contains reports whether the point (x, y) lies inside the placement.
func (p Placement) Contains(x, y float64) bool {
	return x >= p.X && x < p.Right() && y >= p.Y && y < p.Bottom()
}

// Scaled returns the placement with width and height multiplied by f,
// keeping the top-left corner.
func (p Placement) Scaled(f float64) Placement {
	p.Width *= f
	p.Height *= f
	return p
}

// Result is one complete layout pass.
type Result struct {
	// Placements are in the same order as the input items.
	Placements []Placement
	// Columns holds the final height accumulated in each column.
	Columns []float64
	// Height is the container height required, max(Columns).
	Height float64
	// Width is the container width the pass was computed for.
	Width float64
}

// Index returns a lookup from item ID to placement.
func (r Result) Index() map[string]Placement {
	idx := make(map[string]Placement, len(r.Placements))
	for _, p := range r.Placements {
		idx[p.ID] = p
	}
	return idx
}

// ColumnWidth returns the width of a single column.
func (r Result) ColumnWidth() float64 {
	if len(r.Columns) == 0 {
		return 0
	}
	return r.Width / float64(len(r.Columns))
}

// Hit returns the ID of the placement containing (x, y), if any.
func (r Result) Hit(x, y float64) (string, bool) {
	for _, p := range r.Placements {
		if p.Contains(x, y) {
			return p.ID, true
		}
	}
	return "", false
}

// Compute lays out items into columns at the default [DisplayScale].
func Compute(items []Item, columns int, width float64) (Result, error) {
	return ComputeScaled(items, columns, width, DisplayScale)
}

// ComputeScaled lays out items into columns of equal width. Each item is
// placed in the currently shortest column; ties go to the lowest index.
//
// It returns an INVALID_INPUT error when columns < 1 or scale is not a
// positive finite number.
func ComputeScaled(items []Item, columns int, width, scale float64) (Result, error) {
	if columns < 1 {
		return Result{}, errors.New(errors.ErrCodeInvalidInput, "column count must be >= 1, got %d", columns)
	}
	if !(scale > 0) || math.IsInf(scale, 0) {
		return Result{}, errors.New(errors.ErrCodeInvalidInput, "display scale must be positive, got %v", scale)
	}
	width = measured(width)

	colWidth := width / float64(columns)
	acc := make([]float64, columns)
	placements := make([]Placement, len(items))

	for i, it := range items {
		col := shortest(acc)
		h := it.RenderHeight(scale)
		placements[i] = Placement{
			ID:     it.ID,
			X:      colWidth * float64(col),
			Y:      acc[col],
			Width:  colWidth,
			Height: h,
		}
		acc[col] += h
	}

	return Result{
		Placements: placements,
		Columns:    acc,
		Height:     maxOf(acc),
		Width:      width,
	}, nil
}

// measured maps an unmeasured container width to 0.
func measured(w float64) float64 {
	if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
		return 0
	}
	return w
}

// shortest returns the index of the first minimum.
func shortest(acc []float64) int {
	best := 0
	for i := 1; i < len(acc); i++ {
		if acc[i] < acc[best] {
			best = i
		}
	}
	return best
}

func maxOf(acc []float64) float64 {
	var m float64
	for _, v := range acc {
		m = max(m, v)
	}
	return m
}
