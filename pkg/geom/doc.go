// Package geom defines the drawable primitives produced by chart layouts.
//
// A layout never paints anything. It emits a [Scene]: an ordered list of
// shapes in canvas coordinates (origin top-left, y growing downwards) that a
// rendering sink turns into SVG, JSON or raster output. Shapes are plain
// values; a Scene is built once per layout call and not mutated afterwards.
//
// # Shapes
//
//   - [Rect]: axis-aligned rectangle, optionally rounded
//   - [Circle]: circle by center and radius
//   - [Line]: straight segment, optionally dashed
//   - [Polygon]: closed polygon (pyramid trapezoids, markers)
//   - [Path]: cubic Bézier curve (sankey links)
//   - [Text]: anchored label
//
// # Paint
//
// Every shape carries a [Paint] whose Fill and Stroke are tokens rather than
// colors. Tokens such as "positive" or "series-3" are resolved by the
// rendering style, which keeps layouts independent of any palette. A token
// starting with '#' is a literal color and passes through unchanged.
package geom
