// Package basic draws the generic bar, line and pie charts.
//
// These kinds carry no custom geometry: the data is handed to go-chart,
// which lays out axes, ticks and legends itself. Colors still come from the
// chartkit palette so the output matches the scene-based charts.
package basic

import (
	"bytes"
	"fmt"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/matzehuels/chartkit/pkg/chart"
	"github.com/matzehuels/chartkit/pkg/errors"
	"github.com/matzehuels/chartkit/pkg/geom"
	"github.com/matzehuels/chartkit/pkg/render/styles"
)

// Format is a go-chart output encoding.
type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// Option configures [Render].
type Option func(*renderer)

type renderer struct {
	style  styles.Style
	format Format
	size   chart.Size
}

// WithStyle sets the palette used for series and background colors.
func WithStyle(s styles.Style) Option { return func(r *renderer) { r.style = s } }

// WithFormat selects SVG (default) or PNG output.
func WithFormat(f Format) Option { return func(r *renderer) { r.format = f } }

// WithSize overrides the dataset's canvas size.
func WithSize(s chart.Size) Option { return func(r *renderer) { r.size = s } }

// DefaultSize is used when neither the dataset nor the options give one.
var DefaultSize = chart.Size{Width: 600, Height: 400}

// Render draws a bar, line or pie dataset.
func Render(ds *chart.Dataset, opts ...Option) ([]byte, error) {
	r := renderer{style: styles.Simple(), format: FormatSVG}
	for _, opt := range opts {
		opt(&r)
	}
	if !r.size.Valid() {
		r.size = ds.CanvasSize(DefaultSize)
	}

	provider := gochart.SVG
	switch r.format {
	case FormatSVG:
	case FormatPNG:
		provider = gochart.PNG
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "basic charts render svg or png, not %q", r.format)
	}

	var buf bytes.Buffer
	var err error
	switch ds.Kind {
	case chart.KindBar:
		err = r.bar(ds).Render(provider, &buf)
	case chart.KindPie:
		err = r.pie(ds).Render(provider, &buf)
	case chart.KindLine:
		err = r.line(ds).Render(provider, &buf)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "%s is not a basic chart kind", ds.Kind)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "render %s chart", ds.Kind)
	}
	return buf.Bytes(), nil
}

func (r renderer) color(token string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(r.style.Resolve(token), "#"))
}

func (r renderer) canvas() gochart.Style {
	return gochart.Style{FillColor: r.color(r.style.Background())}
}

func (r renderer) text() gochart.Style {
	return gochart.Style{FontColor: r.color(geom.TokenLabel)}
}

func (r renderer) bar(ds *chart.Dataset) gochart.BarChart {
	n := max(1, len(ds.Levels))
	slot := r.size.Width * 0.8 / float64(n)
	bars := make([]gochart.Value, len(ds.Levels))
	for i, l := range ds.Levels {
		bars[i] = gochart.Value{
			Label: l.Name,
			Value: l.Value,
			Style: gochart.Style{FillColor: r.color(geom.Series(i)), StrokeColor: r.color(geom.Series(i))},
		}
	}
	return gochart.BarChart{
		Title:      ds.Title,
		TitleStyle: r.text(),
		Width:      int(r.size.Width),
		Height:     int(r.size.Height),
		Background: r.canvas(),
		Canvas:     r.canvas(),
		BarWidth:   max(2, int(slot*0.7)),
		BarSpacing: max(1, int(slot*0.3)),
		XAxis:      r.text(),
		YAxis:      gochart.YAxis{Style: r.text()},
		Bars:       bars,
	}
}

func (r renderer) pie(ds *chart.Dataset) gochart.PieChart {
	values := make([]gochart.Value, len(ds.Levels))
	for i, l := range ds.Levels {
		values[i] = gochart.Value{
			Label: l.Name,
			Value: l.Value,
			Style: gochart.Style{FillColor: r.color(geom.Series(i)), FontColor: r.color(geom.TokenLabelInverse)},
		}
	}
	return gochart.PieChart{
		Title:      ds.Title,
		TitleStyle: r.text(),
		Width:      int(r.size.Width),
		Height:     int(r.size.Height),
		Background: r.canvas(),
		Canvas:     r.canvas(),
		Values:     values,
	}
}

func (r renderer) line(ds *chart.Dataset) *gochart.Chart {
	series := make([]gochart.Series, 0, len(ds.Series))
	for i, s := range ds.Series {
		xs, ys := make([]float64, len(s.Points)), make([]float64, len(s.Points))
		for j, p := range s.Points {
			xs[j], ys[j] = p.X, p.Y
		}
		// go-chart needs two x values to compute a range
		if len(xs) == 1 {
			xs, ys = append(xs, xs[0]+1), append(ys, ys[0])
		}
		series = append(series, gochart.ContinuousSeries{
			Name:    seriesName(s, i),
			XValues: xs,
			YValues: ys,
			Style:   gochart.Style{StrokeColor: r.color(geom.Series(i)), StrokeWidth: 2},
		})
	}
	c := &gochart.Chart{
		Title:      ds.Title,
		TitleStyle: r.text(),
		Width:      int(r.size.Width),
		Height:     int(r.size.Height),
		Background: r.canvas(),
		Canvas:     r.canvas(),
		XAxis:      gochart.XAxis{Style: r.text()},
		YAxis:      gochart.YAxis{Style: r.text()},
		Series:     series,
	}
	c.Elements = []gochart.Renderable{gochart.Legend(c)}
	return c
}

func seriesName(s chart.Series, i int) string {
	if s.Name != "" {
		return s.Name
	}
	return fmt.Sprintf("Series %d", i+1)
}
