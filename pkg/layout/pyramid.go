package layout

import (
	"github.com/matzehuels/chartkit/pkg/chart"
	"github.com/matzehuels/chartkit/pkg/geom"
)

// pyramidSpan is the share of the canvas width taken by the widest level.
const pyramidSpan = 0.8

// PyramidLevel is one trapezoid of a pyramid.
type PyramidLevel struct {
	Level       chart.Level
	Top, Bottom float64 // vertical band
	TopWidth    float64
	BottomWidth float64
	Shape       geom.Polygon
	Name        geom.Text
	Value       geom.Text
}

// PyramidLayout is the result of [Pyramid].
type PyramidLayout struct {
	Size   chart.Size
	Levels []PyramidLevel
}

// Pyramid stacks one trapezoid per level, top to bottom, each in an equal
// horizontal band. A level's top edge is proportional to its value divided
// by the largest value (the largest level spans 80% of the width) and its
// bottom edge matches the next level's top, narrowing to zero after the
// last level. When the largest value is not positive every width is zero;
// negative values are drawn with zero width.
func Pyramid(levels []chart.Level, size chart.Size) PyramidLayout {
	out := PyramidLayout{Size: size}
	if !size.Valid() || len(levels) == 0 {
		return out
	}

	maxValue := levels[0].Value
	for _, l := range levels[1:] {
		maxValue = max(maxValue, l.Value)
	}
	widthOf := func(i int) float64 {
		if i >= len(levels) || maxValue <= 0 {
			return 0
		}
		return max(0, levels[i].Value/maxValue) * size.Width * pyramidSpan
	}

	cx := size.Width / 2
	band := size.Height / float64(len(levels))
	out.Levels = make([]PyramidLevel, len(levels))
	for i, l := range levels {
		top := float64(i) * band
		bottom := top + band
		tw, bw := widthOf(i), widthOf(i+1)
		mid := top + band/2
		out.Levels[i] = PyramidLevel{
			Level:       l,
			Top:         top,
			Bottom:      bottom,
			TopWidth:    tw,
			BottomWidth: bw,
			Shape: geom.Polygon{
				Points: []geom.Point{
					{X: cx - tw/2, Y: top},
					{X: cx + tw/2, Y: top},
					{X: cx + bw/2, Y: bottom},
					{X: cx - bw/2, Y: bottom},
				},
				Paint: geom.Paint{Fill: geom.Series(i), Stroke: geom.TokenOutline, StrokeWidth: 2, Opacity: 0.8},
			},
			Name: geom.Text{
				X: cx, Y: mid + 4, Content: l.Name, Anchor: geom.AnchorMiddle, Size: 12, Bold: true,
				Paint: geom.Paint{Fill: geom.TokenLabel},
			},
			Value: geom.Text{
				X: cx, Y: mid + 16, Content: FormatNumber(l.Value), Anchor: geom.AnchorMiddle, Size: 10,
				Paint: geom.Paint{Fill: geom.TokenLabel, Opacity: 0.9},
			},
		}
	}
	return out
}

// Polygons returns the level trapezoids in order.
func (p PyramidLayout) Polygons() []geom.Polygon {
	out := make([]geom.Polygon, len(p.Levels))
	for i, l := range p.Levels {
		out[i] = l.Shape
	}
	return out
}

// Scene flattens the layout: every trapezoid followed by its labels.
func (p PyramidLayout) Scene() geom.Scene {
	s := geom.NewScene(p.Size.Width, p.Size.Height)
	for _, l := range p.Levels {
		s.Add(l.Shape, l.Name, l.Value)
	}
	return *s
}
