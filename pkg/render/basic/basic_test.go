package basic

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/chartkit/pkg/chart"
	"github.com/matzehuels/chartkit/pkg/errors"
	"github.com/matzehuels/chartkit/pkg/render/styles"
)

func levels() []chart.Level {
	return []chart.Level{{Name: "North", Value: 30}, {Name: "South", Value: 50}, {Name: "West", Value: 20}}
}

func TestRenderBarSVG(t *testing.T) {
	ds := &chart.Dataset{Kind: chart.KindBar, Title: "Sales", Levels: levels()}
	out, err := Render(ds, WithSize(chart.Size{Width: 400, Height: 300}))
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !strings.Contains(string(out), "<svg") {
		t.Errorf("expected SVG output, got %.60s", out)
	}
}

func TestRenderPiePNG(t *testing.T) {
	ds := &chart.Dataset{Kind: chart.KindPie, Levels: levels()}
	out, err := Render(ds, WithFormat(FormatPNG), WithStyle(styles.Dark()))
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("\x89PNG")) {
		t.Error("expected PNG output")
	}
}

func TestRenderLine(t *testing.T) {
	ds := &chart.Dataset{
		Kind: chart.KindLine,
		Size: &chart.Size{Width: 500, Height: 250},
		Series: []chart.Series{
			{Name: "latency", Points: []chart.Point{{X: 0, Y: 10}, {X: 1, Y: 12}, {X: 2, Y: 9}}},
			{Points: []chart.Point{{X: 0, Y: 4}}},
		},
	}
	out, err := Render(ds)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !strings.Contains(string(out), "latency") {
		t.Error("legend should name the series")
	}
}

func TestRenderErrors(t *testing.T) {
	if _, err := Render(&chart.Dataset{Kind: chart.KindSankey}); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("sankey error = %v, want UNSUPPORTED", err)
	}
	ds := &chart.Dataset{Kind: chart.KindBar, Levels: levels()}
	if _, err := Render(ds, WithFormat("gif")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("gif error = %v, want INVALID_FORMAT", err)
	}
}

func TestSeriesName(t *testing.T) {
	if got := seriesName(chart.Series{}, 1); got != "Series 2" {
		t.Errorf("seriesName() = %q", got)
	}
	if got := seriesName(chart.Series{Name: "cpu"}, 0); got != "cpu" {
		t.Errorf("seriesName() = %q", got)
	}
}
