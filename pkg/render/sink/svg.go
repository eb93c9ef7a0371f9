package sink

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/chartkit/pkg/geom"
	"github.com/matzehuels/chartkit/pkg/render/styles"
)

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style      styles.Style
	title      string
	id         string
	background bool
}

// WithStyle sets the palette used to resolve paint tokens.
func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// WithTitle adds an accessible <title> element.
func WithTitle(t string) SVGOption { return func(r *svgRenderer) { r.title = t } }

// WithID tags the root element with a data-render-id attribute.
func WithID(id string) SVGOption { return func(r *svgRenderer) { r.id = id } }

// WithoutBackground leaves the canvas transparent.
func WithoutBackground() SVGOption { return func(r *svgRenderer) { r.background = false } }

// RenderSVG paints the scene as a standalone SVG document, one element per
// shape in painting order.
func RenderSVG(s geom.Scene, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%.0f" height="%.0f"`,
		styles.Num(s.Width), styles.Num(s.Height), s.Width, s.Height)
	if r.id != "" {
		fmt.Fprintf(&buf, ` data-render-id="%s"`, styles.EscapeXML(r.id))
	}
	fmt.Fprintf(&buf, ` font-family="%s">`+"\n", styles.EscapeXML(r.style.FontFamily()))

	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", styles.EscapeXML(r.title))
	}
	if r.background {
		fmt.Fprintf(&buf, `  <rect class="background" width="100%%" height="100%%" fill="%s"/>`+"\n", styles.EscapeXML(r.style.Background()))
	}
	for _, sh := range s.Shapes {
		r.writeShape(&buf, sh)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{style: styles.Simple(), background: true}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func (r *svgRenderer) writeShape(buf *bytes.Buffer, sh geom.Shape) {
	n := styles.Num
	switch v := sh.(type) {
	case geom.Rect:
		fmt.Fprintf(buf, `  <rect x="%s" y="%s" width="%s" height="%s"`, n(v.X), n(v.Y), n(v.W), n(v.H))
		if v.Radius > 0 {
			fmt.Fprintf(buf, ` rx="%s"`, n(v.Radius))
		}
		r.writePaint(buf, v.Paint, false)
		buf.WriteString("/>\n")
	case geom.Circle:
		fmt.Fprintf(buf, `  <circle cx="%s" cy="%s" r="%s"`, n(v.CX), n(v.CY), n(v.R))
		r.writePaint(buf, v.Paint, false)
		buf.WriteString("/>\n")
	case geom.Line:
		fmt.Fprintf(buf, `  <line x1="%s" y1="%s" x2="%s" y2="%s"`, n(v.X1), n(v.Y1), n(v.X2), n(v.Y2))
		r.writePaint(buf, v.Paint, true)
		buf.WriteString("/>\n")
	case geom.Polygon:
		pts := make([]string, len(v.Points))
		for i, p := range v.Points {
			pts[i] = n(p.X) + "," + n(p.Y)
		}
		fmt.Fprintf(buf, `  <polygon points="%s"`, strings.Join(pts, " "))
		r.writePaint(buf, v.Paint, false)
		buf.WriteString("/>\n")
	case geom.Path:
		fmt.Fprintf(buf, `  <path d="M %s %s C %s %s, %s %s, %s %s"`,
			n(v.From.X), n(v.From.Y), n(v.C1.X), n(v.C1.Y), n(v.C2.X), n(v.C2.Y), n(v.To.X), n(v.To.Y))
		r.writePaint(buf, v.Paint, true)
		buf.WriteString("/>\n")
	case geom.Text:
		anchor := v.Anchor
		if anchor == "" {
			anchor = geom.AnchorStart
		}
		size := v.Size
		if size <= 0 {
			size = 12
		}
		fmt.Fprintf(buf, `  <text x="%s" y="%s" text-anchor="%s" font-size="%s" font-weight="%s"`,
			n(v.X), n(v.Y), anchor, n(size), styles.FontWeight(v.Bold))
		p := v.Paint
		if p.Fill == "" {
			p.Fill = geom.TokenLabel
		}
		r.writePaint(buf, p, false)
		fmt.Fprintf(buf, ">%s</text>\n", styles.EscapeXML(v.Content))
	}
}

// writePaint emits fill and stroke attributes. Open shapes (lines, curves)
// are never filled.
func (r *svgRenderer) writePaint(buf *bytes.Buffer, p geom.Paint, open bool) {
	fill := r.style.Resolve(p.Fill)
	if open {
		fill = "none"
	}
	fmt.Fprintf(buf, ` fill="%s"`, styles.EscapeXML(fill))
	if p.Stroke != "" {
		fmt.Fprintf(buf, ` stroke="%s"`, styles.EscapeXML(r.style.Resolve(p.Stroke)))
		if p.StrokeWidth > 0 {
			fmt.Fprintf(buf, ` stroke-width="%s"`, styles.Num(p.StrokeWidth))
		}
	}
	if p.Dash != "" {
		fmt.Fprintf(buf, ` stroke-dasharray="%s"`, styles.EscapeXML(p.Dash))
	}
	if p.Opacity > 0 && p.Opacity < 1 {
		fmt.Fprintf(buf, ` opacity="%s"`, styles.Num(p.Opacity))
	}
}
