package chart

import (
	"fmt"
	"math"

	"github.com/matzehuels/chartkit/pkg/errors"
)

// Kind names a chart type.
type Kind string

const (
	KindRadial    Kind = "radial"
	KindPyramid   Kind = "pyramid"
	KindWaterfall Kind = "waterfall"
	KindSankey    Kind = "sankey"
	KindHeatmap   Kind = "heatmap"
	KindGeo       Kind = "geo"
	KindBullet    Kind = "bullet"
	KindBar       Kind = "bar"
	KindLine      Kind = "line"
	KindPie       Kind = "pie"
)

// Kinds lists every supported kind in display order.
var Kinds = []Kind{
	KindRadial, KindPyramid, KindWaterfall, KindSankey, KindHeatmap,
	KindGeo, KindBullet, KindBar, KindLine, KindPie,
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	for _, v := range Kinds {
		if v == k {
			return true
		}
	}
	return false
}

// IsBasic reports whether k is drawn by the generic chart backend rather
// than by a geometry layout.
func (k Kind) IsBasic() bool {
	return k == KindBar || k == KindLine || k == KindPie
}

// IsGraph reports whether k is built from nodes and links.
func (k Kind) IsGraph() bool {
	return k == KindRadial || k == KindSankey
}

// Dataset is a self-describing chart input as read from a file or request.
// Only the payload fields relevant to Kind are used.
type Dataset struct {
	Kind  Kind   `json:"kind" yaml:"kind" toml:"kind"`
	Title string `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty"`
	Size  *Size  `json:"size,omitempty" yaml:"size,omitempty" toml:"size,omitempty"`

	Nodes     []Node      `json:"nodes,omitempty" yaml:"nodes,omitempty" toml:"nodes,omitempty"`
	Links     []Link      `json:"links,omitempty" yaml:"links,omitempty" toml:"links,omitempty"`
	Levels    []Level     `json:"levels,omitempty" yaml:"levels,omitempty" toml:"levels,omitempty"`
	Steps     []Step      `json:"steps,omitempty" yaml:"steps,omitempty" toml:"steps,omitempty"`
	Matrix    [][]float64 `json:"matrix,omitempty" yaml:"matrix,omitempty" toml:"matrix,omitempty"`
	Ramp      []string    `json:"ramp,omitempty" yaml:"ramp,omitempty" toml:"ramp,omitempty"`
	Locations []Location  `json:"locations,omitempty" yaml:"locations,omitempty" toml:"locations,omitempty"`
	Bullet    *Bullet     `json:"bullet,omitempty" yaml:"bullet,omitempty" toml:"bullet,omitempty"`
	Series    []Series    `json:"series,omitempty" yaml:"series,omitempty" toml:"series,omitempty"`
}

// Validate checks the dataset at the module boundary: a known kind, a
// positive bounded size when one is given, finite numbers, well-formed ramp
// colors, non-empty unique node IDs, and the payload the kind requires.
func (d *Dataset) Validate() error {
	if !d.Kind.Valid() {
		return errors.New(errors.ErrCodeInvalidKind, "unknown chart kind %q", d.Kind)
	}
	if d.Size != nil {
		if err := errors.ValidateSize(d.Size.Width, d.Size.Height); err != nil {
			return err
		}
	}
	if err := d.validateNumbers(); err != nil {
		return err
	}
	for i, c := range d.Ramp {
		if !errors.IsColor(c) {
			return errors.New(errors.ErrCodeInvalidDataset, "ramp[%d] is not a hex or rgb() color: %q", i, c)
		}
	}
	if d.Kind.IsGraph() {
		if err := validateNodes(d.Nodes); err != nil {
			return err
		}
	}
	switch d.Kind {
	case KindBullet:
		if d.Bullet == nil {
			return errors.New(errors.ErrCodeInvalidDataset, "bullet chart requires a bullet payload")
		}
	case KindLine:
		if len(d.Series) == 0 {
			return errors.New(errors.ErrCodeInvalidDataset, "line chart requires at least one series")
		}
	case KindBar, KindPie:
		if len(d.Levels) == 0 {
			return errors.New(errors.ErrCodeInvalidDataset, "%s chart requires at least one level", d.Kind)
		}
	}
	return nil
}

func finite(v float64, format string, args ...any) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return errors.New(errors.ErrCodeInvalidDataset, format+" must be a finite number, got %g", append(args, v)...)
	}
	return nil
}

// validateNumbers rejects NaN and infinities anywhere in the payload.
func (d *Dataset) validateNumbers() error {
	for i, n := range d.Nodes {
		if n.Value != nil {
			if err := finite(*n.Value, "nodes[%d].value", i); err != nil {
				return err
			}
		}
	}
	for i, l := range d.Links {
		if err := finite(l.Value, "links[%d].value", i); err != nil {
			return err
		}
	}
	for i, l := range d.Levels {
		if err := finite(l.Value, "levels[%d].value", i); err != nil {
			return err
		}
	}
	for i, s := range d.Steps {
		if err := finite(s.Value, "steps[%d].value", i); err != nil {
			return err
		}
	}
	for r, row := range d.Matrix {
		for c, v := range row {
			if err := finite(v, "matrix[%d][%d]", r, c); err != nil {
				return err
			}
		}
	}
	for i, l := range d.Locations {
		if err := finite(l.Lat, "locations[%d].lat", i); err != nil {
			return err
		}
		if err := finite(l.Lng, "locations[%d].lng", i); err != nil {
			return err
		}
		if l.Value != nil {
			if err := finite(*l.Value, "locations[%d].value", i); err != nil {
				return err
			}
		}
	}
	if b := d.Bullet; b != nil {
		if err := finite(b.Value, "bullet.value"); err != nil {
			return err
		}
		if err := finite(b.Target, "bullet.target"); err != nil {
			return err
		}
		if err := finite(b.Maximum, "bullet.maximum"); err != nil {
			return err
		}
	}
	for i, s := range d.Series {
		for j, p := range s.Points {
			for _, v := range []float64{p.X, p.Y, p.Z} {
				if err := finite(v, "series[%d].points[%d]", i, j); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func validateNodes(nodes []Node) error {
	seen := make(map[string]struct{}, len(nodes))
	for i, n := range nodes {
		if n.ID == "" {
			return errors.New(errors.ErrCodeInvalidDataset, "node %d has an empty id", i)
		}
		if _, dup := seen[n.ID]; dup {
			return errors.New(errors.ErrCodeInvalidDataset, "duplicate node id %q", n.ID)
		}
		seen[n.ID] = struct{}{}
	}
	return nil
}

// CanvasSize returns the dataset size or fallback when unset.
func (d *Dataset) CanvasSize(fallback Size) Size {
	if d.Size != nil && d.Size.Valid() {
		return *d.Size
	}
	return fallback
}

// Summary returns a short description for logs.
func (d *Dataset) Summary() string {
	switch d.Kind {
	case KindRadial, KindSankey:
		return fmt.Sprintf("%s: %d nodes, %d links", d.Kind, len(d.Nodes), len(d.Links))
	case KindPyramid, KindBar, KindPie:
		return fmt.Sprintf("%s: %d levels", d.Kind, len(d.Levels))
	case KindWaterfall:
		return fmt.Sprintf("%s: %d steps", d.Kind, len(d.Steps))
	case KindHeatmap:
		return fmt.Sprintf("%s: %d rows", d.Kind, len(d.Matrix))
	case KindGeo:
		return fmt.Sprintf("%s: %d locations", d.Kind, len(d.Locations))
	case KindLine:
		return fmt.Sprintf("%s: %d series", d.Kind, len(d.Series))
	default:
		return string(d.Kind)
	}
}
