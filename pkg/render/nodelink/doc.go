// Package nodelink renders node/link datasets as Graphviz diagrams.
//
// # Overview
//
// Radial and sankey datasets describe a graph. Besides their own geometry
// they can be drawn as a plain directed diagram where nodes appear as
// colored boxes connected by arrows whose width follows the link value.
//
// # Usage
//
//	dot := nodelink.ToDOT(ds.Nodes, ds.Links, nodelink.Options{RankDir: "LR"})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)  // 2x scale
//
// The DOT text itself can be saved and processed with external Graphviz
// tools.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
