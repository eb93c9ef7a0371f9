// Package chart defines the input data model shared by layouts, sinks and
// the pipeline.
//
// Layouts in [github.com/matzehuels/chartkit/pkg/layout] accept these types
// directly and never fail on them. Validation happens once at the boundary
// (file import, HTTP request) through [Dataset.Validate].
package chart

// Size is the target canvas in user units.
type Size struct {
	Width  float64 `json:"width" yaml:"width" toml:"width"`
	Height float64 `json:"height" yaml:"height" toml:"height"`
}

// Valid reports whether both dimensions are strictly positive.
func (s Size) Valid() bool { return s.Width > 0 && s.Height > 0 }

// Min returns the smaller dimension.
func (s Size) Min() float64 { return min(s.Width, s.Height) }

// Center returns the canvas center.
func (s Size) Center() (x, y float64) { return s.Width / 2, s.Height / 2 }

// Node is a graph vertex for radial and sankey layouts.
// ID is the identity; Name is only displayed.
type Node struct {
	ID    string   `json:"id" yaml:"id" toml:"id"`
	Name  string   `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Value *float64 `json:"value,omitempty" yaml:"value,omitempty" toml:"value,omitempty"`
}

// Label returns Name, falling back to ID.
func (n Node) Label() string {
	if n.Name != "" {
		return n.Name
	}
	return n.ID
}

// Link is a weighted edge between two node IDs.
type Link struct {
	Source string  `json:"source" yaml:"source" toml:"source"`
	Target string  `json:"target" yaml:"target" toml:"target"`
	Value  float64 `json:"value,omitempty" yaml:"value,omitempty" toml:"value,omitempty"`
}

// Level is a named value: a pyramid level, a bar or a pie slice.
type Level struct {
	Name  string  `json:"name" yaml:"name" toml:"name"`
	Value float64 `json:"value" yaml:"value" toml:"value"`
}

// Step is a signed change in a waterfall.
type Step = Level

// Point is an (x, y) sample with an optional z magnitude.
type Point struct {
	X float64 `json:"x" yaml:"x" toml:"x"`
	Y float64 `json:"y" yaml:"y" toml:"y"`
	Z float64 `json:"z,omitempty" yaml:"z,omitempty" toml:"z,omitempty"`
}

// Series is a named sequence of points for line charts.
type Series struct {
	Name   string  `json:"name" yaml:"name" toml:"name"`
	Points []Point `json:"points" yaml:"points" toml:"points"`
}

// DefaultLocationValue is used for locations without a value.
const DefaultLocationValue = 100

// Location is a geographic marker.
type Location struct {
	Name  string   `json:"name" yaml:"name" toml:"name"`
	Lat   float64  `json:"lat" yaml:"lat" toml:"lat"`
	Lng   float64  `json:"lng" yaml:"lng" toml:"lng"`
	Value *float64 `json:"value,omitempty" yaml:"value,omitempty" toml:"value,omitempty"`
}

// Magnitude returns Value or [DefaultLocationValue] when unset.
func (l Location) Magnitude() float64 {
	if l.Value == nil {
		return DefaultLocationValue
	}
	return *l.Value
}

// Bullet is a single performance-versus-target indicator.
type Bullet struct {
	Title   string  `json:"title" yaml:"title" toml:"title"`
	Value   float64 `json:"value" yaml:"value" toml:"value"`
	Target  float64 `json:"target" yaml:"target" toml:"target"`
	Maximum float64 `json:"maximum" yaml:"maximum" toml:"maximum"`
}

// Float returns a pointer to v, for optional values.
func Float(v float64) *float64 { return &v }
