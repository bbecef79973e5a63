// Package masonry computes placements for a masonry photo grid.
//
// # Overview
//
// Items of varying height are packed into a fixed number of equal-width
// columns. Each item goes into the column that is currently shortest, with
// ties resolved toward the lowest column index:
//
//	+------+------+------+
//	|  0   |  1   |  2   |
//	|      +------+      |
//	+------+  4   |      |
//	|  3   |      +------+
//	|      |      |  5   |
//
// The heuristic is greedy, not globally optimal, but it runs in
// O(items × columns) and is deterministic for a fixed (order, columns, width)
// triple, so a reshuffle of the same items always yields the same kind of
// layout.
//
// # Computing a Layout
//
//	res, err := masonry.Compute(items, 4, 1200)
//	for _, p := range res.Placements {
//	    fmt.Println(p.ID, p.X, p.Y, p.Width, p.Height)
//	}
//	fmt.Println("container height:", res.Height)
//
// [Compute] is a pure function. Placements are recomputed from scratch on
// every change and never patched in place. [Memo] can sit in front of it as
// a performance optimisation keyed on the exact inputs.
//
// # Display Scale
//
// Tiles render at half of their natural height ([DisplayScale]). Use
// [ComputeScaled] to lay out at a different scale.
//
// # Unmeasured Containers
//
// A container width of zero (or any non-finite or negative value) means the
// container has not been measured yet. Every x and width is then 0 rather
// than NaN, and heights still accumulate so the container height stays
// meaningful.
package masonry
