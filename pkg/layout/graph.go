package layout

import (
	"math"
	"strconv"

	"github.com/matzehuels/chartkit/pkg/chart"
)

// IndexNodes maps each node id to its position in nodes.
// When an id repeats, the first occurrence wins.
func IndexNodes(nodes []chart.Node) map[string]int {
	idx := make(map[string]int, len(nodes))
	for i, n := range nodes {
		if _, ok := idx[n.ID]; !ok {
			idx[n.ID] = i
		}
	}
	return idx
}

// DanglingLinks returns the links whose source or target is not a node id,
// in input order. Layouts drop these silently; strict callers report them.
func DanglingLinks(nodes []chart.Node, links []chart.Link) []chart.Link {
	idx := IndexNodes(nodes)
	var out []chart.Link
	for _, l := range links {
		if _, _, ok := resolve(idx, l); !ok {
			out = append(out, l)
		}
	}
	return out
}

func resolve(idx map[string]int, l chart.Link) (src, dst int, ok bool) {
	src, okS := idx[l.Source]
	dst, okD := idx[l.Target]
	return src, dst, okS && okD
}

// FormatNumber renders a value label, abbreviating thousands and millions
// ("1.5K", "2.0M") and printing smaller values at their shortest ("42", "0.5").
func FormatNumber(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1_000_000:
		return strconv.FormatFloat(v/1_000_000, 'f', 1, 64) + "M"
	case abs >= 1_000:
		return strconv.FormatFloat(v/1_000, 'f', 1, 64) + "K"
	default:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
