package layout

import (
	"math"

	"github.com/matzehuels/chartkit/pkg/chart"
	"github.com/matzehuels/chartkit/pkg/geom"
)

const (
	heatmapMaxCell     = 20.0
	heatmapMinOpacity  = 0.3
	heatmapFlatOpacity = 0.1
	heatmapCellGap     = 1.0
)

// DefaultRamp is the slate ramp used when no ramp is given, light to dark.
var DefaultRamp = []string{
	"#f8fafc", "#e2e8f0", "#cbd5e1", "#94a3b8",
	"#64748b", "#475569", "#334155", "#1e293b",
}

// RampColor picks the ramp entry for v on a scale of [0, maxValue]:
// index floor(v/maxValue·(len(ramp)−1)), clamped to the ramp. When maxValue
// is not positive the first color is returned. An empty ramp uses
// [DefaultRamp].
func RampColor(v, maxValue float64, ramp []string) string {
	if len(ramp) == 0 {
		ramp = DefaultRamp
	}
	if maxValue <= 0 || math.IsNaN(v) {
		return ramp[0]
	}
	i := int(math.Floor(v / maxValue * float64(len(ramp)-1)))
	return ramp[max(0, min(i, len(ramp)-1))]
}

// CellOpacity returns max(0.3, v/maxValue) capped at 1, or 0.1 when maxValue
// is not positive.
func CellOpacity(v, maxValue float64) float64 {
	if maxValue <= 0 {
		return heatmapFlatOpacity
	}
	return clamp(v/maxValue, heatmapMinOpacity, 1)
}

// HeatCell is one colored matrix cell.
type HeatCell struct {
	Row, Col int
	Value    float64
	Rect     geom.Rect
}

// HeatmapLayout is the result of [Heatmap].
type HeatmapLayout struct {
	Size     chart.Size
	CellSize float64
	Max      float64
	Ramp     []string
	Cells    []HeatCell // row-major
}

// Heatmap lays a matrix out as square cells of side min(width/cols,
// height/rows, 20), colored through ramp by [RampColor] and faded by
// [CellOpacity]. Rows may be ragged; the widest row sets the column count.
func Heatmap(matrix [][]float64, size chart.Size, ramp []string) HeatmapLayout {
	if len(ramp) == 0 {
		ramp = DefaultRamp
	}
	out := HeatmapLayout{Size: size, Ramp: ramp}
	cols := 0
	for _, row := range matrix {
		cols = max(cols, len(row))
	}
	if !size.Valid() || cols == 0 {
		return out
	}

	first := true
	for _, row := range matrix {
		for _, v := range row {
			if first || v > out.Max {
				out.Max, first = v, false
			}
		}
	}

	out.CellSize = math.Min(math.Min(size.Width/float64(cols), size.Height/float64(len(matrix))), heatmapMaxCell)
	side := math.Max(0, out.CellSize-heatmapCellGap)
	for r, row := range matrix {
		for c, v := range row {
			out.Cells = append(out.Cells, HeatCell{
				Row: r, Col: c, Value: v,
				Rect: geom.Rect{
					X: float64(c) * out.CellSize, Y: float64(r) * out.CellSize, W: side, H: side,
					Paint: geom.Paint{Fill: RampColor(v, out.Max, ramp), Opacity: CellOpacity(v, out.Max)},
				},
			})
		}
	}
	return out
}

// Scene returns the cells in row-major order.
func (h HeatmapLayout) Scene() geom.Scene {
	s := geom.NewScene(h.Size.Width, h.Size.Height)
	for _, c := range h.Cells {
		s.Add(c.Rect)
	}
	return *s
}
