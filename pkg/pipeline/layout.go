package pipeline

import (
	"github.com/matzehuels/chartkit/pkg/chart"
	"github.com/matzehuels/chartkit/pkg/errors"
	"github.com/matzehuels/chartkit/pkg/geom"
	"github.com/matzehuels/chartkit/pkg/layout"
)

// CheckLinks reports dangling links as a DANGLING_LINK error when strict is
// set. Without strict it returns the count the layouts will drop.
func CheckLinks(ds *chart.Dataset, strict bool) (int, error) {
	if !ds.Kind.IsGraph() {
		return 0, nil
	}
	dangling := layout.DanglingLinks(ds.Nodes, ds.Links)
	if strict && len(dangling) > 0 {
		l := dangling[0]
		return len(dangling), errors.New(errors.ErrCodeDanglingLink,
			"%d link(s) reference unknown nodes, first %s -> %s", len(dangling), l.Source, l.Target)
	}
	return len(dangling), nil
}

// GenerateScene lays the dataset out on the options' canvas. Bar, line and
// pie datasets have no geometry layout and return UNSUPPORTED.
func GenerateScene(ds *chart.Dataset, opts Options) (geom.Scene, error) {
	size := opts.CanvasSize(ds)
	switch ds.Kind {
	case chart.KindRadial:
		return layout.Radial(ds.Nodes, ds.Links, size).Scene(), nil
	case chart.KindPyramid:
		return layout.Pyramid(ds.Levels, size).Scene(), nil
	case chart.KindWaterfall:
		return layout.Waterfall(ds.Steps, size).Scene(), nil
	case chart.KindSankey:
		return layout.Sankey(ds.Nodes, ds.Links, size, layout.WithPlacement(layout.Placement(opts.Placement))).Scene(), nil
	case chart.KindHeatmap:
		return layout.Heatmap(ds.Matrix, size, ds.Ramp).Scene(), nil
	case chart.KindGeo:
		return layout.Geo(ds.Locations, size).Scene(), nil
	case chart.KindBullet:
		if ds.Bullet == nil {
			return geom.Scene{}, errors.New(errors.ErrCodeInvalidDataset, "bullet chart requires a bullet payload")
		}
		return layout.BulletIndicator(*ds.Bullet, size).Scene(), nil
	default:
		return geom.Scene{}, errors.New(errors.ErrCodeUnsupported, "%s charts have no geometry layout", ds.Kind)
	}
}

// Items returns the payload size of a dataset, for logs and hooks.
func Items(ds *chart.Dataset) int {
	switch ds.Kind {
	case chart.KindRadial, chart.KindSankey:
		return len(ds.Nodes)
	case chart.KindPyramid, chart.KindBar, chart.KindPie:
		return len(ds.Levels)
	case chart.KindWaterfall:
		return len(ds.Steps)
	case chart.KindHeatmap:
		n := 0
		for _, row := range ds.Matrix {
			n += len(row)
		}
		return n
	case chart.KindGeo:
		return len(ds.Locations)
	case chart.KindLine:
		n := 0
		for _, s := range ds.Series {
			n += len(s.Points)
		}
		return n
	case chart.KindBullet:
		return 1
	}
	return 0
}
