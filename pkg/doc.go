// Package pkg provides the core libraries of chartkit.
//
// # Overview
//
// chartkit computes chart geometry. Each layout in [layout] turns a dataset
// and a canvas size into positioned primitives (circles, rects, polygons,
// cubic paths, lines, text) collected in a [geom.Scene]. Colors are symbolic
// paint tokens until a renderer resolves them, so the same scene can be drawn
// in any style.
//
// # Architecture
//
// The typical data flow:
//
//	dataset file or HTTP body
//	         ↓
//	    [io] package (decode JSON, YAML or TOML; validate)
//	         ↓
//	    [pipeline] package (cache lookup, link checks)
//	         ↓
//	    [layout] package (pure geometry → [geom.Scene])
//	         ↓
//	    [render] packages (SVG, PNG, PDF, JSON, DOT output)
//
// # Quick Start
//
// Lay out a sankey diagram and render it to SVG:
//
//	import (
//	    "github.com/matzehuels/chartkit/pkg/chart"
//	    "github.com/matzehuels/chartkit/pkg/layout"
//	    "github.com/matzehuels/chartkit/pkg/render/sink"
//	)
//
//	nodes := []chart.Node{{ID: "a"}, {ID: "b"}, {ID: "c"}}
//	links := []chart.Link{{Source: "a", Target: "b", Value: 40}}
//	l := layout.Sankey(nodes, links, chart.Size{Width: 600, Height: 300})
//	svg := sink.RenderSVG(l.Scene())
//
// With caching and every output format, use a [pipeline.Runner] instead.
//
// # Main Packages
//
// [chart] - The data model: nodes, links, levels, steps, locations, bullets,
// and the self-describing [chart.Dataset].
//
// [geom] - Drawable primitives and the scene that holds them.
//
// [layout] - Radial, pyramid, waterfall, sankey, heatmap, geo and bullet
// layouts. All are pure and never fail: degenerate input yields an empty or
// minimal result.
//
// [render] - Style palettes, scene sinks, Graphviz node-link diagrams and
// go-chart bar, line and pie charts.
//
// [pipeline] - Orchestrates layout and render with caching and strict link
// checks.
//
// [cache] - File, Redis, MongoDB and no-op backends behind one interface.
//
// [catalog] - The embedded component catalog, search and HTML docs pages.
//
// [server] - The HTTP API.
//
// [observability] - Pipeline, cache and HTTP hooks with an OpenTelemetry
// implementation.
//
// [errors] - Coded errors and boundary validation.
//
// [chart]: https://pkg.go.dev/github.com/matzehuels/chartkit/pkg/chart
// [chart.Dataset]: https://pkg.go.dev/github.com/matzehuels/chartkit/pkg/chart#Dataset
// [geom]: https://pkg.go.dev/github.com/matzehuels/chartkit/pkg/geom
// [geom.Scene]: https://pkg.go.dev/github.com/matzehuels/chartkit/pkg/geom#Scene
// [io]: https://pkg.go.dev/github.com/matzehuels/chartkit/pkg/io
// [layout]: https://pkg.go.dev/github.com/matzehuels/chartkit/pkg/layout
// [render]: https://pkg.go.dev/github.com/matzehuels/chartkit/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/chartkit/pkg/pipeline
// [pipeline.Runner]: https://pkg.go.dev/github.com/matzehuels/chartkit/pkg/pipeline#Runner
// [cache]: https://pkg.go.dev/github.com/matzehuels/chartkit/pkg/cache
// [catalog]: https://pkg.go.dev/github.com/matzehuels/chartkit/pkg/catalog
// [server]: https://pkg.go.dev/github.com/matzehuels/chartkit/pkg/server
// [observability]: https://pkg.go.dev/github.com/matzehuels/chartkit/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/chartkit/pkg/errors
package pkg
