package pipeline

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/matzehuels/chartkit/pkg/chart"
	"github.com/matzehuels/chartkit/pkg/errors"
	"github.com/matzehuels/chartkit/pkg/geom"
	dsio "github.com/matzehuels/chartkit/pkg/io"
	"github.com/matzehuels/chartkit/pkg/render"
	"github.com/matzehuels/chartkit/pkg/render/basic"
	"github.com/matzehuels/chartkit/pkg/render/nodelink"
	"github.com/matzehuels/chartkit/pkg/render/sink"
)

// RenderID derives a stable render id from a content hash, so the same
// scene rendered twice carries the same id.
func RenderID(contentHash string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("chartkit:"+contentHash)).String()
}

// Target is what the render stage paints: a scene, or the dataset itself
// for basic and node-link outputs.
type Target struct {
	Kind    chart.Kind
	Title   string
	ID      string
	Scene   *geom.Scene
	Dataset *chart.Dataset
	Size    chart.Size
}

// RenderFormat paints t into a single format.
func RenderFormat(ctx context.Context, t Target, format string, opts Options) ([]byte, error) {
	switch {
	case opts.IsNodelink():
		return renderNodelink(ctx, t, format, opts)
	case t.Scene != nil:
		return renderScene(ctx, t, format, opts)
	case t.Dataset != nil && t.Kind.IsBasic():
		return renderBasic(ctx, t, format, opts)
	default:
		return nil, errors.New(errors.ErrCodeInternal, "nothing to render for %s", t.Kind)
	}
}

func renderScene(ctx context.Context, t Target, format string, opts Options) ([]byte, error) {
	st, err := opts.StyleSheet()
	if err != nil {
		return nil, err
	}
	svgOpts := []sink.SVGOption{sink.WithStyle(st), sink.WithTitle(t.Title), sink.WithID(t.ID)}

	switch format {
	case FormatSVG:
		return sink.RenderSVG(*t.Scene, svgOpts...), nil
	case FormatPNG:
		return sink.RenderPNG(ctx, *t.Scene, sink.WithPNGSVGOptions(svgOpts...), sink.WithScale(opts.Scale))
	case FormatPDF:
		return sink.RenderPDF(ctx, *t.Scene, sink.WithPDFSVGOptions(svgOpts...))
	case FormatJSON:
		return sink.RenderJSON(*t.Scene,
			sink.WithJSONKind(string(t.Kind)), sink.WithJSONTitle(t.Title),
			sink.WithJSONID(t.ID), sink.WithJSONStyle(st))
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "%s output is only available with --type nodelink", format)
	}
}

func renderBasic(ctx context.Context, t Target, format string, opts Options) ([]byte, error) {
	st, err := opts.StyleSheet()
	if err != nil {
		return nil, err
	}
	ds := *t.Dataset
	ds.Title = t.Title
	chartOpts := []basic.Option{basic.WithStyle(st), basic.WithSize(t.Size)}

	switch format {
	case FormatSVG:
		return basic.Render(&ds, chartOpts...)
	case FormatPNG:
		return basic.Render(&ds, append(chartOpts, basic.WithFormat(basic.FormatPNG))...)
	case FormatPDF:
		svg, err := basic.Render(&ds, chartOpts...)
		if err != nil {
			return nil, err
		}
		return render.ToPDF(ctx, svg)
	case FormatJSON:
		var buf bytes.Buffer
		if err := dsio.WriteDataset(&buf, &ds, dsio.FormatJSON); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "%s output is not available for %s charts", format, t.Kind)
	}
}

func renderNodelink(ctx context.Context, t Target, format string, opts Options) ([]byte, error) {
	if t.Dataset == nil || !t.Kind.IsGraph() {
		return nil, errors.New(errors.ErrCodeUnsupported, "node-link output needs a radial or sankey dataset, got %s", t.Kind)
	}
	st, err := opts.StyleSheet()
	if err != nil {
		return nil, err
	}
	dot := nodelink.ToDOT(t.Dataset.Nodes, t.Dataset.Links, nodelink.Options{
		Detailed: opts.Detailed,
		RankDir:  opts.RankDir,
		Style:    st,
	})

	switch format {
	case FormatDOT:
		return []byte(dot), nil
	case FormatSVG:
		return wrapRender(nodelink.RenderSVG(ctx, dot))
	case FormatPNG:
		return wrapRender(nodelink.RenderPNG(ctx, dot, opts.Scale))
	case FormatPDF:
		return wrapRender(nodelink.RenderPDF(ctx, dot))
	case FormatJSON:
		return json.MarshalIndent(struct {
			ID   string     `json:"id,omitempty"`
			Kind chart.Kind `json:"kind"`
			Type string     `json:"type"`
			DOT  string     `json:"dot"`
		}{t.ID, t.Kind, TypeNodelink, dot}, "", "  ")
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported node-link format %q", format)
	}
}

// wrapRender keeps coded errors (missing rsvg-convert) and marks the rest
// as internal Graphviz failures.
func wrapRender(data []byte, err error) ([]byte, error) {
	if err == nil || errors.GetCode(err) != "" {
		return data, err
	}
	return nil, errors.Wrap(errors.ErrCodeInternal, err, "graphviz")
}
