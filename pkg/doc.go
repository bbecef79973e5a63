// Package pkg provides the core libraries of the mosaic photo wall.
//
// # Overview
//
// Mosaic lays photographs out in a masonry grid, reshuffles them on a timer
// and animates every tile from its old box to its new one. Selecting a tile
// opens it in a lightbox that can be navigated with keys or a horizontal
// drag. The libraries know nothing about terminals; the viewer in
// internal/app drives them from a bubbletea event loop.
//
// # Architecture
//
// One pass through the libraries:
//
//	dataset (records → items)
//	     ↓
//	breakpoint (viewport width → column count)
//	     ↓
//	masonry (items + columns + width → placements)
//	     ↓
//	transition (previous + next placements → enter/update/leave targets)
//	     ↓
//	motion (spring-driven frames)
//
// The shuffle package reorders items between passes, and lightbox tracks the
// selected photo independently of the grid order.
//
// # Quick Start
//
// Compute and export a layout:
//
//	import (
//	    "github.com/matzehuels/mosaic/pkg/dataset"
//	    "github.com/matzehuels/mosaic/pkg/masonry"
//	    "github.com/matzehuels/mosaic/pkg/sink"
//	)
//
//	items, _ := dataset.Items(dataset.Default())
//	res, _ := masonry.Compute(items, 3, 900)
//	svg := sink.RenderSVG(res, sink.WithImages(items), sink.WithLabels())
//
// # Main Packages
//
// [masonry] - Greedy shortest-column placement. Ties go to the lowest column
// index. [masonry.Memo] caches passes keyed on their exact inputs.
//
// [breakpoint] - Ordered media-query rules mapping a width to a column count.
//
// [shuffle] - Uniform reordering and an interval scheduler that can be paused
// and resumed without ever stacking timers.
//
// [transition] - Keyed diff of two layouts into enter, update and leave
// targets with a staggered delay and a hover scale.
//
// [motion] - Spring integration of transition targets into per-frame sprites.
//
// [lightbox] - The open/closed viewer state machine: selection, bounded
// navigation, keyboard and swipe handling.
//
// [dataset] - The photo list format and the built-in set of 30 photos.
//
// [sink] - JSON, SVG and PNG exports of a layout.
//
// ## Infrastructure
//
// [cache] - Memory, file and null caches with keyers for layouts and exports.
//
// [observability] - Hooks the libraries emit events through.
//
// [errors] - Coded errors and multi-field validation errors.
//
// [buildinfo] - Version information set at build time.
package pkg
