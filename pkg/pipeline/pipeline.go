// Package pipeline runs the dataset → scene → artifact pipeline shared by
// the CLI and the HTTP server.
//
// # Stages
//
//  1. Layout: compute a [geom.Scene] from a dataset with [pkg/layout]
//  2. Render: paint the scene (or the raw dataset, for basic and node-link
//     charts) into SVG, PNG, PDF, JSON or DOT
//
// Both stages are cached through [cache.Cache]: scenes by dataset content and
// layout options, artifacts by scene content and render options.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, ds, pipeline.Options{
//	    Formats: []string{pipeline.FormatSVG},
//	    Style:   "dark",
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
//
// Run a single stage:
//
//	scene, err := runner.Layout(ctx, ds, opts)
//	artifacts, err := runner.Render(ctx, scene, ds.Kind, opts)
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chartkit/pkg/cache"
	"github.com/matzehuels/chartkit/pkg/chart"
	"github.com/matzehuels/chartkit/pkg/errors"
	"github.com/matzehuels/chartkit/pkg/geom"
	"github.com/matzehuels/chartkit/pkg/layout"
	"github.com/matzehuels/chartkit/pkg/render/styles"
)

// Defaults shared by the CLI, the server and the config file.
const (
	DefaultWidth     = 600.0
	DefaultHeight    = 400.0
	DefaultStyle     = styles.StyleSimple
	DefaultType      = TypeChart
	DefaultPlacement = string(layout.PlacementGrid)
	DefaultScale     = 2.0
)

// Output types.
const (
	// TypeChart draws the dataset as its kind: a geometry layout, or a
	// go-chart rendering for bar, line and pie.
	TypeChart = "chart"
	// TypeNodelink draws node/link datasets as a Graphviz diagram.
	TypeNodelink = "nodelink"
)

// Output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// Formats lists every output format.
var Formats = []string{FormatSVG, FormatPNG, FormatPDF, FormatJSON, FormatDOT}

// Types lists every output type.
var Types = []string{TypeChart, TypeNodelink}

// ValidateFormat checks that format is a known output format.
func ValidateFormat(format string) error {
	if !slices.Contains(Formats, format) {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format %q (must be one of: svg, png, pdf, json, dot)", format)
	}
	return nil
}

// ValidateFormats checks every format. An empty list is valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that style names a built-in palette.
func ValidateStyle(style string) error {
	_, err := styles.Lookup(style)
	return err
}

// ValidateType checks that t is chart or nodelink.
func ValidateType(t string) error {
	if !slices.Contains(Types, t) {
		return errors.New(errors.ErrCodeInvalidInput, "invalid type %q (must be one of: chart, nodelink)", t)
	}
	return nil
}

// ValidatePlacement checks that p is a known sankey placement.
func ValidatePlacement(p string) error {
	if !layout.Placement(p).Valid() {
		return errors.New(errors.ErrCodeInvalidInput, "invalid placement %q (must be one of: grid, layered)", p)
	}
	return nil
}

// discard is the logger of options that were given none; a [Runner]
// replaces it with its own.
var discard = log.NewWithOptions(io.Discard, log.Options{})

// Options configures a pipeline run. The JSON form is accepted by the HTTP
// API as query parameters.
type Options struct {
	// Layout options. A zero Width or Height keeps the dataset's size.
	Width     float64 `json:"width,omitempty"`
	Height    float64 `json:"height,omitempty"`
	Placement string  `json:"placement,omitempty"`
	// Strict rejects links whose endpoints are not nodes instead of
	// dropping them.
	Strict bool `json:"strict,omitempty"`

	// Render options.
	Type     string   `json:"type,omitempty"`
	Formats  []string `json:"formats,omitempty"`
	Style    string   `json:"style,omitempty"`
	Palette  []string `json:"palette,omitempty"` // overrides the style's series colors
	Title    string   `json:"title,omitempty"`   // overrides the dataset title
	Detailed bool     `json:"detailed,omitempty"`
	RankDir  string   `json:"rank_dir,omitempty"`
	Scale    float64  `json:"scale,omitempty"`

	// Refresh skips cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// Result is the output of [Runner.Execute].
type Result struct {
	Dataset     *chart.Dataset
	DatasetHash string
	// Scene is nil for basic and node-link outputs.
	Scene     *geom.Scene
	Artifacts map[string][]byte
	// RenderID is derived from the rendered content, so a cached artifact
	// keeps the id it was rendered with.
	RenderID  string
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats holds timing and size information.
type Stats struct {
	Items      int
	Shapes     int
	Dangling   int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo reports which stages were served from the cache.
type CacheInfo struct {
	LayoutHit bool
	RenderHit bool
}

// ValidateAndSetDefaults applies defaults and validates every option.
// Calling it again is a no-op.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults fills in layout defaults.
func (o *Options) SetLayoutDefaults() {
	if o.Placement == "" {
		o.Placement = DefaultPlacement
	}
	if o.Logger == nil {
		o.Logger = discard
	}
}

// ValidateForLayout applies layout defaults and validates the size and
// placement.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := ValidateDimensions(o.Width, o.Height); err != nil {
		return err
	}
	return ValidatePlacement(o.Placement)
}

// ValidateDimensions checks each side that is set. Zero leaves a side to
// the dataset or the default canvas.
func ValidateDimensions(width, height float64) error {
	if width != 0 {
		if err := errors.ValidateDimension("width", width); err != nil {
			return err
		}
	}
	if height != 0 {
		if err := errors.ValidateDimension("height", height); err != nil {
			return err
		}
	}
	return nil
}

// SetRenderDefaults fills in render defaults.
func (o *Options) SetRenderDefaults() {
	if o.Type == "" {
		o.Type = DefaultType
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = discard
	}
}

// ValidateForRender applies render defaults and validates type, formats
// and style.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateType(o.Type); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %g", o.Scale)
	}
	if err := errors.ValidateColors(o.Palette); err != nil {
		return err
	}
	return ValidateStyle(o.Style)
}

// IsNodelink reports whether the output is a Graphviz diagram.
func (o *Options) IsNodelink() bool { return o.Type == TypeNodelink }

// CanvasSize returns the canvas for ds. Each side comes from the options
// when set, else from the dataset, else from the default.
func (o *Options) CanvasSize(ds *chart.Dataset) chart.Size {
	size := ds.CanvasSize(chart.Size{Width: DefaultWidth, Height: DefaultHeight})
	if o.Width > 0 {
		size.Width = o.Width
	}
	if o.Height > 0 {
		size.Height = o.Height
	}
	return size
}

// ResolveTitle returns the title override or the dataset title.
func (o *Options) ResolveTitle(ds *chart.Dataset) string {
	if o.Title != "" {
		return o.Title
	}
	return ds.Title
}

// StyleSheet returns the named style with the palette override applied.
func (o *Options) StyleSheet() (styles.Style, error) {
	p, err := styles.Lookup(o.Style)
	if err != nil {
		return nil, err
	}
	if len(o.Palette) > 0 {
		p = p.WithSeries(o.Palette)
	}
	return p, nil
}

// SceneKeyOpts returns the cache key options for the layout stage.
func (o *Options) SceneKeyOpts(ds *chart.Dataset) cache.SceneKeyOpts {
	size := o.CanvasSize(ds)
	opts := cache.SceneKeyOpts{Kind: string(ds.Kind), Width: size.Width, Height: size.Height}
	if ds.Kind == chart.KindSankey {
		opts.Placement = o.Placement
	}
	return opts
}

// ArtifactKeyOpts returns the cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format, title string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Format:   format,
		Type:     o.Type,
		Style:    o.Style,
		Title:    title,
		Detailed: o.Detailed,
	}
	if len(o.Palette) > 0 {
		opts.Palette = strings.Join(o.Palette, ",")
	}
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	if o.IsNodelink() {
		opts.RankDir = o.RankDir
	}
	return opts
}

// Clone returns an unvalidated deep copy of o, for use as the starting
// point of per-request options.
func (o Options) Clone() Options {
	o.Formats = slices.Clone(o.Formats)
	o.Palette = slices.Clone(o.Palette)
	o.validated = false
	return o
}
