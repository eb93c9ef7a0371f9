package layout

import (
	"math"

	"github.com/matzehuels/chartkit/pkg/chart"
	"github.com/matzehuels/chartkit/pkg/geom"
)

const (
	radialNodeRadius = 20.0
	radialHubRadius  = 15.0
	radialHubLabel   = "Hub"
)

// RadialNode is a node placed on the wheel.
type RadialNode struct {
	Node   chart.Node
	Angle  float64 // radians, -π/2 is 12 o'clock
	Circle geom.Circle
	Label  geom.Text
	Spoke  geom.Line // dashed guide from the hub to the node
}

// RadialLink is a resolved link between two wheel positions.
type RadialLink struct {
	Link   chart.Link
	Source int // index into RadialLayout.Nodes
	Target int
	Line   geom.Line
}

// RadialLayout is the result of [Radial].
type RadialLayout struct {
	Size     chart.Size
	Radius   float64
	Nodes    []RadialNode
	Links    []RadialLink
	Hub      geom.Circle
	HubLabel geom.Text
}

// Radial places nodes evenly on a circle of radius min(width, height)/3
// around the canvas center, starting at 12 o'clock and proceeding clockwise,
// and connects linked nodes with straight lines. A hub circle marks the
// center. Links with an unknown endpoint are omitted; with no nodes only the
// hub is produced. A non-positive size yields an empty layout.
func Radial(nodes []chart.Node, links []chart.Link, size chart.Size) RadialLayout {
	if !size.Valid() {
		return RadialLayout{Size: size}
	}
	cx, cy := size.Center()
	out := RadialLayout{
		Size:   size,
		Radius: size.Min() / 3,
		Nodes:  make([]RadialNode, len(nodes)),
		Hub: geom.Circle{
			CX: cx, CY: cy, R: radialHubRadius,
			Paint: geom.Paint{Fill: geom.TokenHub, Stroke: geom.TokenOutline, StrokeWidth: 2},
		},
		HubLabel: geom.Text{
			X: cx, Y: cy + 4, Content: radialHubLabel, Anchor: geom.AnchorMiddle, Size: 12, Bold: true,
			Paint: geom.Paint{Fill: geom.TokenLabelInverse},
		},
	}

	n := float64(len(nodes))
	for i, node := range nodes {
		angle := 2*math.Pi*float64(i)/n - math.Pi/2
		x := cx + out.Radius*math.Cos(angle)
		y := cy + out.Radius*math.Sin(angle)
		out.Nodes[i] = RadialNode{
			Node:  node,
			Angle: angle,
			Circle: geom.Circle{
				CX: x, CY: y, R: radialNodeRadius,
				Paint: geom.Paint{Fill: geom.Series(i), Stroke: geom.TokenOutline, StrokeWidth: 2},
			},
			Label: geom.Text{
				X: x, Y: y + 4, Content: node.Label(), Anchor: geom.AnchorMiddle, Size: 10, Bold: true,
				Paint: geom.Paint{Fill: geom.TokenLabelInverse},
			},
			Spoke: geom.Line{
				X1: cx, Y1: cy, X2: x, Y2: y,
				Paint: geom.Paint{Stroke: geom.TokenSpoke, StrokeWidth: 1, Opacity: 0.3, Dash: "2,2"},
			},
		}
	}

	idx := IndexNodes(nodes)
	for _, l := range links {
		s, t, ok := resolve(idx, l)
		if !ok {
			continue
		}
		a, b := out.Nodes[s].Circle, out.Nodes[t].Circle
		out.Links = append(out.Links, RadialLink{
			Link: l, Source: s, Target: t,
			Line: geom.Line{
				X1: a.CX, Y1: a.CY, X2: b.CX, Y2: b.CY,
				Paint: geom.Paint{Stroke: geom.TokenLink, StrokeWidth: 2, Opacity: 0.6},
			},
		})
	}
	return out
}

// Scene flattens the layout: nodes in input order, then links in input
// order, then the hub on top.
func (r RadialLayout) Scene() geom.Scene {
	s := geom.NewScene(r.Size.Width, r.Size.Height)
	if !r.Size.Valid() {
		return *s
	}
	for _, n := range r.Nodes {
		s.Add(n.Spoke, n.Circle, n.Label)
	}
	for _, l := range r.Links {
		s.Add(l.Line)
	}
	s.Add(r.Hub, r.HubLabel)
	return *s
}
