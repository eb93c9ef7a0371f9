package layout

import (
	"math"

	"github.com/matzehuels/chartkit/pkg/chart"
	"github.com/matzehuels/chartkit/pkg/geom"
)

const (
	waterfallPadding  = 20.0
	waterfallBarShare = 0.8
)

// WaterfallBar is one step of a waterfall.
type WaterfallBar struct {
	Step       chart.Step
	StartValue float64 // cumulative total before the step
	EndValue   float64 // cumulative total after the step
	Rect       geom.Rect
	Name       geom.Text
	Value      geom.Text
}

// WaterfallLayout is the result of [Waterfall].
type WaterfallLayout struct {
	Size       chart.Size
	Bars       []WaterfallBar
	Connectors []geom.Line
	Min, Max   float64 // cumulative range, including the zero baseline
}

// Cumulative returns the running total sequence, starting at zero and
// ending at the sum of all steps.
func (w WaterfallLayout) Cumulative() []float64 {
	if len(w.Bars) == 0 {
		return []float64{0}
	}
	out := make([]float64, 0, len(w.Bars)+1)
	out = append(out, w.Bars[0].StartValue)
	for _, b := range w.Bars {
		out = append(out, b.EndValue)
	}
	return out
}

// Waterfall lays out signed steps as floating bars. Each bar spans the
// running total before and after its step, mapped onto the canvas height
// (larger totals are higher) inside a vertical padding of min(20, height/4).
// Steps share the width in equal slots; a bar fills 80% of its slot. A
// connector joins each pair of consecutive bars at the vertical midpoint of
// the trailing bar. When every total is equal the range is treated as 1.
func Waterfall(steps []chart.Step, size chart.Size) WaterfallLayout {
	out := WaterfallLayout{Size: size}
	if !size.Valid() || len(steps) == 0 {
		return out
	}

	starts := make([]float64, len(steps))
	ends := make([]float64, len(steps))
	var total float64
	for i, s := range steps {
		starts[i] = total
		total += s.Value
		ends[i] = total
		out.Min = math.Min(out.Min, total)
		out.Max = math.Max(out.Max, total)
	}

	rng := out.Max - out.Min
	if rng == 0 {
		rng = 1
	}
	pad := math.Min(waterfallPadding, size.Height/4)
	span := size.Height - 2*pad
	yOf := func(v float64) float64 {
		return size.Height - pad - (v-out.Min)/rng*span
	}

	slot := size.Width / float64(len(steps))
	barW := slot * waterfallBarShare
	gap := slot - barW

	out.Bars = make([]WaterfallBar, len(steps))
	for i, s := range steps {
		y0, y1 := yOf(starts[i]), yOf(ends[i])
		top := math.Min(y0, y1)
		x := float64(i)*slot + gap/2
		fill := geom.TokenPositive
		label := "+" + FormatNumber(s.Value)
		if s.Value < 0 {
			fill = geom.TokenNegative
			label = FormatNumber(s.Value)
		}
		out.Bars[i] = WaterfallBar{
			Step:       s,
			StartValue: starts[i],
			EndValue:   ends[i],
			Rect: geom.Rect{
				X: x, Y: top, W: barW, H: math.Abs(y1 - y0), Radius: 2,
				Paint: geom.Paint{Fill: fill},
			},
			Name: geom.Text{
				X: x + barW/2, Y: size.Height - pad/4, Content: s.Name, Anchor: geom.AnchorMiddle, Size: 10,
				Paint: geom.Paint{Fill: geom.TokenLabel},
			},
			Value: geom.Text{
				X: x + barW/2, Y: top - 5, Content: label, Anchor: geom.AnchorMiddle, Size: 10, Bold: true,
				Paint: geom.Paint{Fill: geom.TokenLabel},
			},
		}
	}

	for i := 0; i+1 < len(out.Bars); i++ {
		a, b := out.Bars[i].Rect, out.Bars[i+1].Rect
		my := b.Center().Y
		out.Connectors = append(out.Connectors, geom.Line{
			X1: a.Right(), Y1: my, X2: b.X, Y2: my,
			Paint: geom.Paint{Stroke: geom.TokenNeutral, StrokeWidth: 1, Dash: "3,3"},
		})
	}
	return out
}

// Scene flattens the layout: connectors underneath, then each bar with its
// labels.
func (w WaterfallLayout) Scene() geom.Scene {
	s := geom.NewScene(w.Size.Width, w.Size.Height)
	for _, c := range w.Connectors {
		s.Add(c)
	}
	for _, b := range w.Bars {
		s.Add(b.Rect, b.Name, b.Value)
	}
	return *s
}
