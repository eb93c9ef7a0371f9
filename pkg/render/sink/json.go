package sink

import (
	"encoding/json"

	"github.com/matzehuels/chartkit/pkg/geom"
	"github.com/matzehuels/chartkit/pkg/render/styles"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	kind  string
	title string
	id    string
	style styles.Style
}

// WithJSONKind records the chart kind that produced the scene.
func WithJSONKind(k string) JSONOption { return func(r *jsonRenderer) { r.kind = k } }

// WithJSONTitle records the chart title.
func WithJSONTitle(t string) JSONOption { return func(r *jsonRenderer) { r.title = t } }

// WithJSONID records a render identifier.
func WithJSONID(id string) JSONOption { return func(r *jsonRenderer) { r.id = id } }

// WithJSONStyle records the style name and replaces paint tokens by the
// style's colors.
func WithJSONStyle(s styles.Style) JSONOption { return func(r *jsonRenderer) { r.style = s } }

type jsonOutput struct {
	ID     string          `json:"id,omitempty"`
	Kind   string          `json:"kind,omitempty"`
	Title  string          `json:"title,omitempty"`
	Style  string          `json:"style,omitempty"`
	Width  float64         `json:"width"`
	Height float64         `json:"height"`
	Shapes json.RawMessage `json:"shapes"`
}

// RenderJSON exports the scene as indented JSON. The output decodes back
// into a [geom.Scene].
func RenderJSON(s geom.Scene, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{ID: r.id, Kind: r.kind, Title: r.title, Width: s.Width, Height: s.Height}
	if r.style != nil {
		out.Style = r.style.Name()
		s = Resolve(s, r.style)
	}

	raw, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	var inner struct {
		Shapes json.RawMessage `json:"shapes"`
	}
	if err := json.Unmarshal(raw, &inner); err != nil {
		return nil, err
	}
	out.Shapes = inner.Shapes
	return json.MarshalIndent(out, "", "  ")
}

// Resolve returns a copy of the scene with every paint token replaced by
// the style's color.
func Resolve(s geom.Scene, st styles.Style) geom.Scene {
	out := geom.Scene{Width: s.Width, Height: s.Height, Shapes: make([]geom.Shape, len(s.Shapes))}
	paint := func(p geom.Paint) geom.Paint {
		if p.Fill != "" {
			p.Fill = st.Resolve(p.Fill)
		}
		if p.Stroke != "" {
			p.Stroke = st.Resolve(p.Stroke)
		}
		return p
	}
	for i, sh := range s.Shapes {
		switch v := sh.(type) {
		case geom.Rect:
			v.Paint = paint(v.Paint)
			out.Shapes[i] = v
		case geom.Circle:
			v.Paint = paint(v.Paint)
			out.Shapes[i] = v
		case geom.Line:
			v.Paint = paint(v.Paint)
			out.Shapes[i] = v
		case geom.Polygon:
			v.Paint = paint(v.Paint)
			out.Shapes[i] = v
		case geom.Path:
			v.Paint = paint(v.Paint)
			out.Shapes[i] = v
		case geom.Text:
			v.Paint = paint(v.Paint)
			out.Shapes[i] = v
		default:
			out.Shapes[i] = sh
		}
	}
	return out
}
