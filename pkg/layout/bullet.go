package layout

import (
	"math"
	"strconv"

	"github.com/matzehuels/chartkit/pkg/chart"
	"github.com/matzehuels/chartkit/pkg/geom"
)

// Qualitative band boundaries of a bullet track, as fractions of the maximum.
var bulletZones = []float64{0.6, 0.8, 1}

// bulletWarnShare is the share of the target above which a value is a warning
// rather than a miss.
const bulletWarnShare = 0.8

// BulletLayout is the result of [BulletIndicator].
type BulletLayout struct {
	Size        chart.Size
	ValueRatio  float64 // min(value/maximum, 1)
	TargetRatio float64 // min(target/maximum, 1)
	Status      string  // positive, warning or negative token
	Zones       []geom.Rect
	Bar         geom.Rect
	Target      geom.Line
	Marker      geom.Polygon
	Title       geom.Text
	Caption     geom.Text // "value / target"
	Percent     geom.Text
}

// BulletStatus classifies a value against its target: positive when the
// value reaches the target, warning when it reaches 80% of it, otherwise
// negative.
func BulletStatus(valueRatio, targetRatio float64) string {
	switch {
	case valueRatio >= targetRatio:
		return geom.TokenPositive
	case valueRatio >= targetRatio*bulletWarnShare:
		return geom.TokenWarning
	default:
		return geom.TokenNegative
	}
}

func ratio(v, maximum float64) float64 {
	if maximum <= 0 {
		return 0
	}
	return clamp(v/maximum, 0, 1)
}

// BulletIndicator draws a horizontal track split into three qualitative
// zones (up to 60%, 80% and 100% of the maximum), a value bar of width
// min(value/maximum, 1)·width colored by [BulletStatus], and a target
// marker at min(target/maximum, 1)·width. A non-positive maximum puts both
// the bar and the marker at zero.
func BulletIndicator(b chart.Bullet, size chart.Size) BulletLayout {
	out := BulletLayout{Size: size}
	if !size.Valid() {
		return out
	}
	out.ValueRatio = ratio(b.Value, b.Maximum)
	out.TargetRatio = ratio(b.Target, b.Maximum)
	out.Status = BulletStatus(out.ValueRatio, out.TargetRatio)

	trackY, trackH := size.Height/3, size.Height/3
	prev := 0.0
	for i, z := range bulletZones {
		out.Zones = append(out.Zones, geom.Rect{
			X: prev * size.Width, Y: trackY, W: (z - prev) * size.Width, H: trackH,
			Paint: geom.Paint{Fill: geom.Zone(i)},
		})
		prev = z
	}

	out.Bar = geom.Rect{
		X: 0, Y: trackY + trackH/3, W: out.ValueRatio * size.Width, H: trackH / 3,
		Paint: geom.Paint{Fill: out.Status},
	}

	tx := out.TargetRatio * size.Width
	out.Target = geom.Line{
		X1: tx, Y1: trackY - 4, X2: tx, Y2: trackY + trackH + 4,
		Paint: geom.Paint{Stroke: geom.TokenLabel, StrokeWidth: 2},
	}
	out.Marker = geom.Polygon{
		Points: []geom.Point{{X: tx - 5, Y: trackY - 10}, {X: tx + 5, Y: trackY - 10}, {X: tx, Y: trackY - 4}},
		Paint:  geom.Paint{Fill: geom.TokenLabel},
	}

	out.Title = geom.Text{
		X: 0, Y: trackY - 14, Content: b.Title, Anchor: geom.AnchorStart, Size: 12, Bold: true,
		Paint: geom.Paint{Fill: geom.TokenLabel},
	}
	out.Caption = geom.Text{
		X: 0, Y: trackY + trackH + 16, Content: FormatNumber(b.Value) + " / " + FormatNumber(b.Target),
		Anchor: geom.AnchorStart, Size: 10, Paint: geom.Paint{Fill: geom.TokenLabel},
	}
	out.Percent = geom.Text{
		X: size.Width, Y: trackY + trackH + 16,
		Content: strconv.FormatFloat(math.Round(out.ValueRatio*100), 'f', 0, 64) + "%",
		Anchor:  geom.AnchorEnd, Size: 10, Bold: true, Paint: geom.Paint{Fill: out.Status},
	}
	return out
}

// Scene flattens the layout: zones, bar, target, then labels.
func (b BulletLayout) Scene() geom.Scene {
	s := geom.NewScene(b.Size.Width, b.Size.Height)
	if !b.Size.Valid() {
		return *s
	}
	for _, z := range b.Zones {
		s.Add(z)
	}
	s.Add(b.Bar, b.Target, b.Marker, b.Title, b.Caption, b.Percent)
	return *s
}
