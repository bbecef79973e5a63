// Package sink exports a computed mosaic layout.
//
// A "sink" transforms a [masonry.Result] into a final output format:
//
//   - JSON: placement data for external tools
//   - SVG: vector preview with one rectangle per tile
//   - PNG: raster preview drawn with gg
//
// All renderers take functional options:
//
//	svg := sink.RenderSVG(result, sink.WithLabels(), sink.WithImages(items))
//	png, err := sink.RenderPNG(result, sink.WithPNGScale(2))
//
// Tiles are coloured from a fixed palette keyed by item id, so the same item
// keeps its colour between exports.
package sink
