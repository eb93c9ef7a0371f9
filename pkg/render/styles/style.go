// Package styles resolves the symbolic paint tokens of a scene to colors.
//
// Layouts never pick colors. They tag shapes with tokens such as
// "series-2", "positive" or "label", and a [Style] maps those tokens to
// concrete colors at render time. Two palettes are built in: [Simple] (light
// background) and [Dark]. Literal colors ("#rrggbb", "rgb(…)") pass through
// untouched, which is how heatmap ramps reach the output.
package styles

import (
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/chartkit/pkg/errors"
	"github.com/matzehuels/chartkit/pkg/geom"
)

// Style maps paint tokens to colors for a renderer.
type Style interface {
	// Name identifies the style in cache keys and JSON output.
	Name() string
	// Resolve returns the color for a token or literal color.
	Resolve(token string) string
	// Background is the canvas fill.
	Background() string
	// FontFamily is used for every text element.
	FontFamily() string
}

// Style names accepted by [Lookup].
const (
	StyleSimple = "simple"
	StyleDark   = "dark"
)

// Names lists the built-in styles.
var Names = []string{StyleSimple, StyleDark}

// Palette is a table-driven [Style].
type Palette struct {
	ID     string
	Canvas string
	Font   string
	Series []string          // cycled for series-<i>
	Zones  []string          // bullet bands, zone-<i>
	Tokens map[string]string // named tokens
}

var _ Style = Palette{}

func (p Palette) Name() string       { return p.ID }
func (p Palette) Background() string { return p.Canvas }
func (p Palette) FontFamily() string { return p.Font }

// Resolve returns the color for token. Well-formed literal colors and
// "none" are returned as-is; unknown tokens and malformed literals fall back
// to the neutral color.
func (p Palette) Resolve(token string) string {
	switch {
	case token == "", token == "none":
		return "none"
	case errors.IsColor(token):
		return token
	}
	if i, ok := indexed(token, "series-"); ok && len(p.Series) > 0 {
		return p.Series[i%len(p.Series)]
	}
	if i, ok := indexed(token, "zone-"); ok && len(p.Zones) > 0 {
		return p.Zones[min(i, len(p.Zones)-1)]
	}
	if c, ok := p.Tokens[token]; ok {
		return c
	}
	return p.Tokens[geom.TokenNeutral]
}

func indexed(token, prefix string) (int, bool) {
	rest, ok := strings.CutPrefix(token, prefix)
	if !ok {
		return 0, false
	}
	i, err := strconv.Atoi(rest)
	return i, err == nil && i >= 0
}

// WithSeries returns a copy of p using colors for the series tokens.
// An empty slice leaves the palette unchanged.
func (p Palette) WithSeries(colors []string) Palette {
	if len(colors) == 0 {
		return p
	}
	p.Series = slices.Clone(colors)
	return p
}

// Simple is the default light palette.
func Simple() Palette {
	return Palette{
		ID:     StyleSimple,
		Canvas: "#ffffff",
		Font:   "Inter, system-ui, sans-serif",
		Series: []string{"#3b82f6", "#10b981", "#f59e0b", "#ef4444", "#8b5cf6", "#06b6d4"},
		Zones:  []string{"#e5e7eb", "#d1d5db", "#9ca3af"},
		Tokens: map[string]string{
			geom.TokenPositive:     "#10b981",
			geom.TokenNegative:     "#ef4444",
			geom.TokenNeutral:      "#6b7280",
			geom.TokenWarning:      "#f59e0b",
			geom.TokenHub:          "#374151",
			geom.TokenLink:         "#94a3b8",
			geom.TokenSpoke:        "#9ca3af",
			geom.TokenLabel:        "#374151",
			geom.TokenLabelInverse: "#ffffff",
			geom.TokenTrack:        "#e5e7eb",
			geom.TokenOutline:      "#ffffff",
			geom.TokenMarkerRing:   "#3b82f6",
		},
	}
}

// Dark is a palette for dark backgrounds.
func Dark() Palette {
	return Palette{
		ID:     StyleDark,
		Canvas: "#0f172a",
		Font:   "Inter, system-ui, sans-serif",
		Series: []string{"#60a5fa", "#34d399", "#fbbf24", "#f87171", "#a78bfa", "#22d3ee"},
		Zones:  []string{"#1e293b", "#334155", "#475569"},
		Tokens: map[string]string{
			geom.TokenPositive:     "#34d399",
			geom.TokenNegative:     "#f87171",
			geom.TokenNeutral:      "#94a3b8",
			geom.TokenWarning:      "#fbbf24",
			geom.TokenHub:          "#475569",
			geom.TokenLink:         "#64748b",
			geom.TokenSpoke:        "#475569",
			geom.TokenLabel:        "#e2e8f0",
			geom.TokenLabelInverse: "#ffffff",
			geom.TokenTrack:        "#1e293b",
			geom.TokenOutline:      "#0f172a",
			geom.TokenMarkerRing:   "#60a5fa",
		},
	}
}

// Lookup returns the built-in palette with the given name. An empty name
// selects [Simple].
func Lookup(name string) (Palette, error) {
	switch name {
	case "", StyleSimple:
		return Simple(), nil
	case StyleDark:
		return Dark(), nil
	}
	return Palette{}, errors.New(errors.ErrCodeInvalidStyle, "unknown style %q (want one of %s)", name, strings.Join(Names, ", "))
}
