package layout

import (
	"testing"

	"github.com/matzehuels/chartkit/pkg/chart"
	"github.com/matzehuels/chartkit/pkg/geom"
)

func TestPyramidWidths(t *testing.T) {
	size := chart.Size{Width: 400, Height: 300}
	tests := []struct {
		name    string
		levels  []chart.Level
		top     []float64
		bottoms []float64
	}{
		{
			name:    "tapering",
			levels:  []chart.Level{{Name: "A", Value: 100}, {Name: "B", Value: 50}},
			top:     []float64{320, 160},
			bottoms: []float64{160, 0},
		},
		{
			name:    "widest not first",
			levels:  []chart.Level{{Name: "A", Value: 25}, {Name: "B", Value: 100}, {Name: "C", Value: 50}},
			top:     []float64{80, 320, 160},
			bottoms: []float64{320, 160, 0},
		},
		{
			name:    "all equal",
			levels:  []chart.Level{{Name: "A", Value: 7}, {Name: "B", Value: 7}, {Name: "C", Value: 7}},
			top:     []float64{320, 320, 320},
			bottoms: []float64{320, 320, 0},
		},
		{
			name:    "all zero",
			levels:  []chart.Level{{Name: "A", Value: 0}, {Name: "B", Value: 0}},
			top:     []float64{0, 0},
			bottoms: []float64{0, 0},
		},
		{
			name:    "negative clamps",
			levels:  []chart.Level{{Name: "A", Value: -5}, {Name: "B", Value: 10}},
			top:     []float64{0, 320},
			bottoms: []float64{320, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Pyramid(tt.levels, size)
			if len(p.Levels) != len(tt.levels) {
				t.Fatalf("got %d levels, want %d", len(p.Levels), len(tt.levels))
			}
			for i, l := range p.Levels {
				if !near(l.TopWidth, tt.top[i]) {
					t.Errorf("level %d top width = %v, want %v", i, l.TopWidth, tt.top[i])
				}
				if !near(l.BottomWidth, tt.bottoms[i]) {
					t.Errorf("level %d bottom width = %v, want %v", i, l.BottomWidth, tt.bottoms[i])
				}
			}
		})
	}
}

func TestPyramidBands(t *testing.T) {
	levels := []chart.Level{{Name: "A", Value: 3}, {Name: "B", Value: 2}, {Name: "C", Value: 1}}
	p := Pyramid(levels, chart.Size{Width: 300, Height: 90})
	for i, l := range p.Levels {
		if l.Top != float64(i)*30 || l.Bottom != float64(i+1)*30 {
			t.Errorf("level %d band = [%v, %v], want [%v, %v]", i, l.Top, l.Bottom, i*30, (i+1)*30)
		}
		b := l.Shape.Bounds()
		if !near((b.MinX+b.MaxX)/2, 150) {
			t.Errorf("level %d not centered: %+v", i, b)
		}
		if len(l.Shape.Points) != 4 {
			t.Errorf("level %d has %d points, want 4", i, len(l.Shape.Points))
		}
	}
}

func TestPyramidScene(t *testing.T) {
	levels := []chart.Level{{Name: "A", Value: 3}, {Name: "B", Value: 2}}
	s := Pyramid(levels, chart.Size{Width: 300, Height: 90}).Scene()
	if got := s.Count(geom.KindPolygon); got != 2 {
		t.Errorf("polygons = %d, want 2", got)
	}
	if got := s.Count(geom.KindText); got != 4 {
		t.Errorf("labels = %d, want 4", got)
	}
	if Pyramid(nil, chart.Size{Width: 1, Height: 1}).Scene().Len() != 0 {
		t.Error("empty input should produce an empty scene")
	}
}
