// Package render turns chart geometry into output files.
//
// # Overview
//
// Layouts in [layout] produce a [geom.Scene]; the subpackages paint it:
//
//   - [sink]: SVG, JSON, PNG and PDF output of a scene
//   - [styles]: palettes that resolve paint tokens to colors
//   - [nodelink]: Graphviz diagrams of node/link datasets
//   - [basic]: bar, line and pie charts drawn by go-chart
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG to other formats using the external
// rsvg-convert tool (from librsvg). Both the scene sinks and the node-link
// renderer use them.
//
//	svg := sink.RenderSVG(scene, sink.WithStyle(styles.Dark()))
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// [layout]: github.com/matzehuels/chartkit/pkg/layout
// [geom.Scene]: github.com/matzehuels/chartkit/pkg/geom.Scene
// [sink]: github.com/matzehuels/chartkit/pkg/render/sink
// [styles]: github.com/matzehuels/chartkit/pkg/render/styles
// [nodelink]: github.com/matzehuels/chartkit/pkg/render/nodelink
// [basic]: github.com/matzehuels/chartkit/pkg/render/basic
package render
