// Package sink writes a [geom.Scene] in a final output format.
//
// # Overview
//
// A "sink" transforms a computed scene into bytes. This package provides:
//
//   - SVG: one element per shape, tokens resolved through a [styles.Style]
//   - JSON: the scene with a "type" tag per shape, for external tools
//   - PDF: print-ready output (requires rsvg-convert)
//   - PNG: raster image output (requires rsvg-convert)
//
// # SVG Output
//
//	svg := sink.RenderSVG(scene,
//	    sink.WithStyle(styles.Dark()),
//	    sink.WithTitle("Revenue bridge"),
//	)
//
// # JSON Output
//
// [RenderJSON] exports the scene as JSON. With [WithJSONStyle] paint tokens
// are replaced by the style's colors so the output is self-contained.
//
// # PDF and PNG Output
//
// [RenderPDF] and [RenderPNG] render the scene as SVG first, then convert it
// via [render.ToPDF] and [render.ToPNG]:
//
//	pdf, err := sink.RenderPDF(ctx, scene, sink.WithPDFSVGOptions(opts...))
//	png, err := sink.RenderPNG(ctx, scene, sink.WithScale(2))
//
// [geom.Scene]: github.com/matzehuels/chartkit/pkg/geom.Scene
// [styles.Style]: github.com/matzehuels/chartkit/pkg/render/styles.Style
// [render.ToPDF]: github.com/matzehuels/chartkit/pkg/render.ToPDF
// [render.ToPNG]: github.com/matzehuels/chartkit/pkg/render.ToPNG
package sink
