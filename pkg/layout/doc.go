// Package layout maps chart datasets onto drawable geometry.
//
// Every function in this package is a pure computation: given the same
// inputs it returns the same shapes, it holds no state between calls and it
// never returns an error. Degenerate input degrades to a defined fallback
// instead of failing:
//
//   - zero ranges and all-zero values substitute a safe default (zero width,
//     first ramp color, a range of 1)
//   - links whose source or target id is not among the nodes are dropped
//   - empty input yields an empty or minimal result (the radial hub)
//
// Each layout returns a typed result that exposes the computed positions for
// callers that want them, and a Scene method returning the flattened
// [geom.Scene] that rendering sinks consume.
//
// # Layouts
//
//   - [Radial]: nodes on a circle with straight links (dependency wheel)
//   - [Pyramid]: stacked trapezoids with widths proportional to value
//   - [Waterfall]: cumulative bars with connectors
//   - [Sankey]: node boxes with cubic flow curves
//   - [Heatmap]: colored square cells from a matrix
//   - [Geo]: equirectangular pushpin markers
//   - [BulletIndicator]: value bar against a target marker
//
// Graph layouts resolve link endpoints through [IndexNodes], built once per
// call, so layout cost is linear in nodes plus links.
package layout
