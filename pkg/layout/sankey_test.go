package layout

import (
	"reflect"
	"testing"

	"github.com/matzehuels/chartkit/pkg/chart"
	"github.com/matzehuels/chartkit/pkg/geom"
)

func flowNodes(ids ...string) []chart.Node {
	out := make([]chart.Node, len(ids))
	for i, id := range ids {
		out[i] = chart.Node{ID: id, Name: id}
	}
	return out
}

func TestSankeyGridPlacement(t *testing.T) {
	nodes := flowNodes("a", "b", "c", "d", "e", "f")
	s := Sankey(nodes, nil, chart.Size{Width: 400, Height: 300})

	if s.Placement != PlacementGrid || s.Columns != 3 {
		t.Fatalf("placement %q with %d columns, want grid with 3", s.Placement, s.Columns)
	}
	wantX := []float64{0, 0, 160, 160, 320, 320}
	wantY := []float64{50, 130, 50, 130, 50, 130}
	for i, n := range s.Nodes {
		if n.Column != i/2 || n.Row != i%2 {
			t.Errorf("node %d at column %d row %d", i, n.Column, n.Row)
		}
		if !near(n.Box.X, wantX[i]) || !near(n.Box.Y, wantY[i]) {
			t.Errorf("node %d box at (%v, %v), want (%v, %v)", i, n.Box.X, n.Box.Y, wantX[i], wantY[i])
		}
		if n.Box.W != 80 || n.Box.H != 20 {
			t.Errorf("node %d box is %vx%v, want 80x20", i, n.Box.W, n.Box.H)
		}
	}
	if last := s.Nodes[5].Box; !near(last.Right(), 400) {
		t.Errorf("last column ends at %v, want right edge", last.Right())
	}
}

func TestSankeyNarrowCanvas(t *testing.T) {
	s := Sankey(flowNodes("a", "b", "c", "d", "e", "f"), nil, chart.Size{Width: 120, Height: 60})
	for i, n := range s.Nodes {
		if n.Box.X < 0 || n.Box.Right() > 120+1e-9 {
			t.Errorf("node %d overflows: [%v, %v]", i, n.Box.X, n.Box.Right())
		}
		if n.Box.W != 40 || n.Box.H != 10 {
			t.Errorf("node %d box %vx%v, want 40x10", i, n.Box.W, n.Box.H)
		}
	}
}

func TestSankeyLinkEndpoints(t *testing.T) {
	nodes := flowNodes("a", "b", "c", "d")
	links := []chart.Link{
		{Source: "a", Target: "c", Value: 50},
		{Source: "b", Target: "d", Value: 5},
		{Source: "a", Target: "zzz", Value: 100},
		{Source: "b", Target: "c", Value: 30},
	}
	s := Sankey(nodes, links, chart.Size{Width: 400, Height: 300})
	if len(s.Links) != 3 {
		t.Fatalf("got %d links, want 3 (dangling dropped)", len(s.Links))
	}

	for i, l := range s.Links {
		src, dst := s.Nodes[l.Source].Box, s.Nodes[l.Target].Box
		p := l.Path
		if p.From.X != src.Right() || p.From.Y != src.Center().Y {
			t.Errorf("link %d starts at %+v, want source right edge", i, p.From)
		}
		if p.To.X != dst.X || p.To.Y != dst.Center().Y {
			t.Errorf("link %d ends at %+v, want target left edge", i, p.To)
		}
		mid := (p.From.X + p.To.X) / 2
		if p.C1.X != mid || p.C2.X != mid || p.C1.Y != p.From.Y || p.C2.Y != p.To.Y {
			t.Errorf("link %d control points %+v %+v", i, p.C1, p.C2)
		}
	}

	widths := []float64{5, 2, 3}
	for i, l := range s.Links {
		if l.Path.Paint.StrokeWidth != widths[i] {
			t.Errorf("link %d stroke = %v, want %v", i, l.Path.Paint.StrokeWidth, widths[i])
		}
	}
}

func TestSankeyValueLabels(t *testing.T) {
	nodes := []chart.Node{{ID: "a", Value: chart.Float(1200)}, {ID: "b"}}
	s := Sankey(nodes, nil, chart.Size{Width: 400, Height: 300})
	if s.Nodes[0].Value == nil || s.Nodes[0].Value.Content != "1.2K" {
		t.Errorf("value label = %+v, want 1.2K", s.Nodes[0].Value)
	}
	if s.Nodes[0].Value.Y >= s.Nodes[0].Box.Y {
		t.Error("value label should sit above the box")
	}
	if s.Nodes[1].Value != nil {
		t.Error("node without value should have no value label")
	}
	if got := s.Scene().Count(geom.KindText); got != 3 {
		t.Errorf("scene text count = %d, want 3", got)
	}
}

func TestSankeyLayeredPlacement(t *testing.T) {
	nodes := flowNodes("s1", "s2", "t1", "t2", "sink")
	links := []chart.Link{
		{Source: "s1", Target: "t2"},
		{Source: "s2", Target: "t1"},
		{Source: "t1", Target: "sink"},
		{Source: "t2", Target: "sink"},
		{Source: "s1", Target: "sink"},
	}
	s := Sankey(nodes, links, chart.Size{Width: 600, Height: 300}, WithPlacement(PlacementLayered))

	wantCol := map[string]int{"s1": 0, "s2": 0, "t1": 1, "t2": 1, "sink": 2}
	for _, n := range s.Nodes {
		if n.Column != wantCol[n.Node.ID] {
			t.Errorf("%s column = %d, want %d", n.Node.ID, n.Column, wantCol[n.Node.ID])
		}
	}
	// t2 follows s1 (row 0), t1 follows s2 (row 1)
	if s.Nodes[3].Row != 0 || s.Nodes[2].Row != 1 {
		t.Errorf("barycenter order: t1 row %d, t2 row %d", s.Nodes[2].Row, s.Nodes[3].Row)
	}
	if s.Nodes[3].Box.Y >= s.Nodes[2].Box.Y {
		t.Error("t2 should be drawn above t1")
	}
	if !near(s.Nodes[4].Box.Right(), 600) {
		t.Errorf("sink ends at %v, want right edge", s.Nodes[4].Box.Right())
	}
}

func TestSankeyLayeredCycle(t *testing.T) {
	nodes := flowNodes("a", "b", "c")
	links := []chart.Link{{Source: "a", Target: "b"}, {Source: "b", Target: "c"}, {Source: "c", Target: "a"}}
	s := Sankey(nodes, links, chart.Size{Width: 300, Height: 100}, WithPlacement(PlacementLayered))
	for _, n := range s.Nodes {
		if n.Column < 0 || n.Column >= len(nodes) {
			t.Errorf("%s column %d out of range", n.Node.ID, n.Column)
		}
	}
	if len(s.Links) != 3 {
		t.Errorf("links = %d, want 3", len(s.Links))
	}
}

func TestSankeyUnknownPlacementFallsBack(t *testing.T) {
	s := Sankey(flowNodes("a"), nil, chart.Size{Width: 100, Height: 100}, WithPlacement("spiral"))
	if s.Placement != PlacementGrid {
		t.Errorf("placement = %q, want grid", s.Placement)
	}
	if !near(s.Nodes[0].Box.X, 10) {
		t.Errorf("single column x = %v, want centered at 10", s.Nodes[0].Box.X)
	}
}

func TestSankeyDeterministic(t *testing.T) {
	nodes := flowNodes("a", "b", "c", "d")
	links := []chart.Link{{Source: "a", Target: "c", Value: 20}, {Source: "b", Target: "d", Value: 40}}
	size := chart.Size{Width: 400, Height: 300}
	for _, p := range Placements {
		first := Sankey(nodes, links, size, WithPlacement(p)).Scene()
		second := Sankey(nodes, links, size, WithPlacement(p)).Scene()
		if !reflect.DeepEqual(first, second) {
			t.Errorf("%s placement is not deterministic", p)
		}
	}
}
