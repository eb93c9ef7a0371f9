package geom

import (
	"fmt"
	"math"
)

// Kind identifies the concrete type of a [Shape].
type Kind string

const (
	KindRect    Kind = "rect"
	KindCircle  Kind = "circle"
	KindLine    Kind = "line"
	KindPolygon Kind = "polygon"
	KindPath    Kind = "path"
	KindText    Kind = "text"
)

// Paint tokens shared by the layouts. Styles map them to colors.
const (
	TokenPositive     = "positive"
	TokenNegative     = "negative"
	TokenNeutral      = "neutral"
	TokenWarning      = "warning"
	TokenHub          = "hub"
	TokenLink         = "link"
	TokenSpoke        = "spoke"
	TokenLabel        = "label"
	TokenLabelInverse = "label-inverse"
	TokenTrack        = "track"
	TokenOutline      = "outline"
	TokenMarkerRing   = "marker-ring"
)

// Series returns the categorical token for the i-th series.
func Series(i int) string { return fmt.Sprintf("series-%d", i) }

// Zone returns the token for the i-th qualitative band of a bullet chart.
func Zone(i int) string { return fmt.Sprintf("zone-%d", i) }

// Paint describes how a shape is filled and stroked.
// Zero Opacity means fully opaque.
type Paint struct {
	Fill        string  `json:"fill,omitempty"`
	Stroke      string  `json:"stroke,omitempty"`
	StrokeWidth float64 `json:"stroke_width,omitempty"`
	Opacity     float64 `json:"opacity,omitempty"`
	Dash        string  `json:"dash,omitempty"`
}

// Point is a position in canvas coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Box is an axis-aligned bounding box.
type Box struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns the horizontal extent of the box.
func (b Box) Width() float64 { return b.MaxX - b.MinX }

// Height returns the vertical extent of the box.
func (b Box) Height() float64 { return b.MaxY - b.MinY }

// Union returns the smallest box containing both b and o.
func (b Box) Union(o Box) Box {
	return Box{
		MinX: math.Min(b.MinX, o.MinX),
		MinY: math.Min(b.MinY, o.MinY),
		MaxX: math.Max(b.MaxX, o.MaxX),
		MaxY: math.Max(b.MaxY, o.MaxY),
	}
}

// Shape is implemented by every drawable primitive.
type Shape interface {
	Kind() Kind
	Bounds() Box
	Style() Paint
}

// Rect is an axis-aligned rectangle with its top-left corner at (X, Y).
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	W      float64 `json:"width"`
	H      float64 `json:"height"`
	Radius float64 `json:"radius,omitempty"`
	Paint  Paint   `json:"paint"`
}

func (r Rect) Kind() Kind   { return KindRect }
func (r Rect) Style() Paint { return r.Paint }
func (r Rect) Bounds() Box  { return Box{r.X, r.Y, r.X + r.W, r.Y + r.H} }

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Center returns the center point of the rectangle.
func (r Rect) Center() Point { return Point{r.X + r.W/2, r.Y + r.H/2} }

// Circle is a circle centered at (CX, CY).
type Circle struct {
	CX    float64 `json:"cx"`
	CY    float64 `json:"cy"`
	R     float64 `json:"r"`
	Paint Paint   `json:"paint"`
}

func (c Circle) Kind() Kind   { return KindCircle }
func (c Circle) Style() Paint { return c.Paint }
func (c Circle) Bounds() Box  { return Box{c.CX - c.R, c.CY - c.R, c.CX + c.R, c.CY + c.R} }

// Center returns the circle's center point.
func (c Circle) Center() Point { return Point{c.CX, c.CY} }

// Line is a straight segment from (X1, Y1) to (X2, Y2).
type Line struct {
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	X2    float64 `json:"x2"`
	Y2    float64 `json:"y2"`
	Paint Paint   `json:"paint"`
}

func (l Line) Kind() Kind   { return KindLine }
func (l Line) Style() Paint { return l.Paint }
func (l Line) Bounds() Box {
	return Box{math.Min(l.X1, l.X2), math.Min(l.Y1, l.Y2), math.Max(l.X1, l.X2), math.Max(l.Y1, l.Y2)}
}

// Length returns the Euclidean length of the segment.
func (l Line) Length() float64 { return math.Hypot(l.X2-l.X1, l.Y2-l.Y1) }

// Polygon is a closed polygon. Points are listed in drawing order.
type Polygon struct {
	Points []Point `json:"points"`
	Paint  Paint   `json:"paint"`
}

func (p Polygon) Kind() Kind   { return KindPolygon }
func (p Polygon) Style() Paint { return p.Paint }
func (p Polygon) Bounds() Box  { return boundsOf(p.Points) }

// Path is a single cubic Bézier segment From → To with control points C1, C2.
type Path struct {
	From  Point `json:"from"`
	C1    Point `json:"c1"`
	C2    Point `json:"c2"`
	To    Point `json:"to"`
	Paint Paint `json:"paint"`
}

func (p Path) Kind() Kind   { return KindPath }
func (p Path) Style() Paint { return p.Paint }

// Bounds returns the box of the control polygon, which contains the curve.
func (p Path) Bounds() Box { return boundsOf([]Point{p.From, p.C1, p.C2, p.To}) }

// At evaluates the curve at parameter t in [0, 1].
func (p Path) At(t float64) Point {
	u := 1 - t
	a, b, c, d := u*u*u, 3*u*u*t, 3*u*t*t, t*t*t
	return Point{
		X: a*p.From.X + b*p.C1.X + c*p.C2.X + d*p.To.X,
		Y: a*p.From.Y + b*p.C1.Y + c*p.C2.Y + d*p.To.Y,
	}
}

// Anchor is the horizontal alignment of a [Text] relative to its position.
type Anchor string

const (
	AnchorStart  Anchor = "start"
	AnchorMiddle Anchor = "middle"
	AnchorEnd    Anchor = "end"
)

// Text is a label anchored at (X, Y) on its baseline.
type Text struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Content string  `json:"content"`
	Anchor  Anchor  `json:"anchor,omitempty"`
	Size    float64 `json:"size,omitempty"`
	Bold    bool    `json:"bold,omitempty"`
	Paint   Paint   `json:"paint"`
}

func (t Text) Kind() Kind   { return KindText }
func (t Text) Style() Paint { return t.Paint }

// Bounds approximates the text box from the font size.
func (t Text) Bounds() Box {
	w := float64(len(t.Content)) * t.Size * 0.55
	x := t.X
	switch t.Anchor {
	case AnchorMiddle:
		x -= w / 2
	case AnchorEnd:
		x -= w
	}
	return Box{x, t.Y - t.Size, x + w, t.Y}
}

func boundsOf(pts []Point) Box {
	if len(pts) == 0 {
		return Box{}
	}
	b := Box{pts[0].X, pts[0].Y, pts[0].X, pts[0].Y}
	for _, p := range pts[1:] {
		b = b.Union(Box{p.X, p.Y, p.X, p.Y})
	}
	return b
}
