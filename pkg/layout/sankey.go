package layout

import (
	"cmp"
	"math"
	"slices"

	"github.com/matzehuels/chartkit/pkg/chart"
	"github.com/matzehuels/chartkit/pkg/geom"
)

const (
	sankeyNodeWidth  = 80.0
	sankeyNodeHeight = 20.0
	sankeyMinStroke  = 2.0
	sankeyFlowScale  = 10.0
)

// Placement selects how [Sankey] assigns nodes to columns and rows.
type Placement string

const (
	// PlacementGrid fills columns two nodes at a time in input order:
	// column index/2, row index%2.
	PlacementGrid Placement = "grid"
	// PlacementLayered puts each node one column right of its deepest
	// predecessor and orders each column by the mean row of predecessors.
	PlacementLayered Placement = "layered"
)

// Placements lists the supported placements.
var Placements = []Placement{PlacementGrid, PlacementLayered}

// Valid reports whether p is a known placement.
func (p Placement) Valid() bool { return slices.Contains(Placements, p) }

type sankeyConfig struct {
	placement Placement
}

// SankeyOption configures [Sankey].
type SankeyOption func(*sankeyConfig)

// WithPlacement selects the node placement. Unknown values fall back to
// [PlacementGrid].
func WithPlacement(p Placement) SankeyOption {
	return func(c *sankeyConfig) {
		if p.Valid() {
			c.placement = p
		}
	}
}

// SankeyNode is a placed node box.
type SankeyNode struct {
	Node   chart.Node
	Column int
	Row    int
	Box    geom.Rect
	Name   geom.Text
	Value  *geom.Text // nil when the node carries no value
}

// SankeyLink is a flow curve between two node boxes.
type SankeyLink struct {
	Link   chart.Link
	Source int // index into SankeyLayout.Nodes
	Target int
	Path   geom.Path
}

// SankeyLayout is the result of [Sankey].
type SankeyLayout struct {
	Size      chart.Size
	Placement Placement
	Columns   int
	Nodes     []SankeyNode
	Links     []SankeyLink
}

// Sankey places node boxes in columns and joins them with S-shaped cubic
// curves. Each curve leaves the middle of the source box's right edge and
// enters the middle of the target box's left edge; both control points sit
// at the horizontal midpoint, level with their endpoint. Curve width is
// max(2, value/10). Links with an unknown endpoint are dropped.
func Sankey(nodes []chart.Node, links []chart.Link, size chart.Size, opts ...SankeyOption) SankeyLayout {
	cfg := sankeyConfig{placement: PlacementGrid}
	for _, opt := range opts {
		opt(&cfg)
	}
	out := SankeyLayout{Size: size, Placement: cfg.placement}
	if !size.Valid() || len(nodes) == 0 {
		return out
	}

	idx := IndexNodes(nodes)
	var resolved [][2]int
	for _, l := range links {
		if s, t, ok := resolve(idx, l); ok {
			resolved = append(resolved, [2]int{s, t})
		}
	}

	var cols, rows []int
	if cfg.placement == PlacementLayered {
		cols, rows = layeredPlacement(len(nodes), resolved)
	} else {
		cols, rows = gridPlacement(len(nodes))
	}
	out.Columns = slices.Max(cols) + 1
	rowsIn := make([]int, out.Columns)
	for i := range nodes {
		rowsIn[cols[i]] = max(rowsIn[cols[i]], rows[i]+1)
	}

	bw := math.Min(sankeyNodeWidth, size.Width/float64(out.Columns))
	bh := math.Min(sankeyNodeHeight, size.Height/6)
	columnX := func(c int) float64 {
		if out.Columns == 1 {
			return (size.Width - bw) / 2
		}
		spacing := (size.Width - float64(out.Columns)*bw) / float64(out.Columns-1)
		return float64(c) * (bw + spacing)
	}
	rowY := func(c, r int) float64 {
		if cfg.placement == PlacementGrid {
			return size.Height * float64(50+80*r) / 300
		}
		slot := size.Height / float64(rowsIn[c])
		return float64(r)*slot + (slot-bh)/2
	}

	out.Nodes = make([]SankeyNode, len(nodes))
	for i, n := range nodes {
		x, y := columnX(cols[i]), rowY(cols[i], rows[i])
		sn := SankeyNode{
			Node:   n,
			Column: cols[i],
			Row:    rows[i],
			Box: geom.Rect{
				X: x, Y: y, W: bw, H: bh, Radius: 4,
				Paint: geom.Paint{Fill: geom.Series(i), Stroke: geom.TokenOutline, StrokeWidth: 1},
			},
			Name: geom.Text{
				X: x + bw/2, Y: y + bh/2 + 4, Content: n.Label(), Anchor: geom.AnchorMiddle, Size: 10, Bold: true,
				Paint: geom.Paint{Fill: geom.TokenLabelInverse},
			},
		}
		if n.Value != nil {
			sn.Value = &geom.Text{
				X: x + bw/2, Y: y - 5, Content: FormatNumber(*n.Value), Anchor: geom.AnchorMiddle, Size: 10,
				Paint: geom.Paint{Fill: geom.TokenLabel},
			}
		}
		out.Nodes[i] = sn
	}

	for _, l := range links {
		s, t, ok := resolve(idx, l)
		if !ok {
			continue
		}
		a, b := out.Nodes[s].Box, out.Nodes[t].Box
		from := geom.Point{X: a.Right(), Y: a.Center().Y}
		to := geom.Point{X: b.X, Y: b.Center().Y}
		midX := (from.X + to.X) / 2
		out.Links = append(out.Links, SankeyLink{
			Link: l, Source: s, Target: t,
			Path: geom.Path{
				From: from,
				C1:   geom.Point{X: midX, Y: from.Y},
				C2:   geom.Point{X: midX, Y: to.Y},
				To:   to,
				Paint: geom.Paint{
					Stroke: geom.TokenLink, StrokeWidth: math.Max(sankeyMinStroke, l.Value/sankeyFlowScale), Opacity: 0.5,
				},
			},
		})
	}
	return out
}

func gridPlacement(n int) (cols, rows []int) {
	cols, rows = make([]int, n), make([]int, n)
	for i := range n {
		cols[i], rows[i] = i/2, i%2
	}
	return cols, rows
}

// layeredPlacement assigns longest-path columns from the source nodes and
// orders each column by the barycenter of its predecessors' rows. Cycles are
// cut by capping relaxation at n rounds.
func layeredPlacement(n int, edges [][2]int) (cols, rows []int) {
	cols = make([]int, n)
	for range n {
		changed := false
		for _, e := range edges {
			if e[0] == e[1] {
				continue
			}
			if c := cols[e[0]] + 1; c > cols[e[1]] && c < n {
				cols[e[1]] = c
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	preds := make([][]int, n)
	for _, e := range edges {
		if cols[e[0]] < cols[e[1]] {
			preds[e[1]] = append(preds[e[1]], e[0])
		}
	}

	byColumn := make([][]int, slices.Max(cols)+1)
	for i, c := range cols {
		byColumn[c] = append(byColumn[c], i)
	}

	rows = make([]int, n)
	for _, members := range byColumn {
		center := make(map[int]float64, len(members))
		for pos, i := range members {
			if len(preds[i]) == 0 {
				center[i] = float64(pos)
				continue
			}
			var sum float64
			for _, p := range preds[i] {
				sum += float64(rows[p])
			}
			center[i] = sum / float64(len(preds[i]))
		}
		slices.SortStableFunc(members, func(a, b int) int {
			return cmp.Compare(center[a], center[b])
		})
		for r, i := range members {
			rows[i] = r
		}
	}
	return cols, rows
}

// Scene flattens the layout: flows underneath, then node boxes with labels.
func (s SankeyLayout) Scene() geom.Scene {
	sc := geom.NewScene(s.Size.Width, s.Size.Height)
	for _, l := range s.Links {
		sc.Add(l.Path)
	}
	for _, n := range s.Nodes {
		sc.Add(n.Box, n.Name)
		if n.Value != nil {
			sc.Add(*n.Value)
		}
	}
	return *sc
}
