package layout

import (
	"github.com/matzehuels/chartkit/pkg/chart"
	"github.com/matzehuels/chartkit/pkg/geom"
)

const (
	geoMinRadius  = 8.0
	geoMaxRadius  = 20.0
	geoValueScale = 20.0
	geoRingScale  = 1.5
)

// Project maps a latitude/longitude pair onto the canvas with an
// equirectangular projection: (0, 0) lands on the canvas center.
func Project(lat, lng float64, size chart.Size) geom.Point {
	return geom.Point{
		X: (lng + 180) / 360 * size.Width,
		Y: (90 - lat) / 180 * size.Height,
	}
}

// MarkerRadius returns clamp(value/20, 8, 20).
func MarkerRadius(value float64) float64 {
	return clamp(value/geoValueScale, geoMinRadius, geoMaxRadius)
}

// GeoMarker is one projected location.
type GeoMarker struct {
	Location chart.Location
	Position geom.Point
	Dot      geom.Circle
	Ring     geom.Circle // translucent pulse ring, 1.5× the marker radius
	Name     geom.Text
	Value    geom.Text
}

// GeoLayout is the result of [Geo].
type GeoLayout struct {
	Size    chart.Size
	Markers []GeoMarker
}

// Geo projects each location with [Project] and sizes its marker with
// [MarkerRadius]. Locations without a value count as
// [chart.DefaultLocationValue]. No correction is made for polar distortion.
func Geo(locations []chart.Location, size chart.Size) GeoLayout {
	out := GeoLayout{Size: size}
	if !size.Valid() {
		return out
	}
	out.Markers = make([]GeoMarker, len(locations))
	for i, loc := range locations {
		p := Project(loc.Lat, loc.Lng, size)
		v := loc.Magnitude()
		r := MarkerRadius(v)
		out.Markers[i] = GeoMarker{
			Location: loc,
			Position: p,
			Dot: geom.Circle{
				CX: p.X, CY: p.Y, R: r,
				Paint: geom.Paint{Fill: geom.Series(i), Stroke: geom.TokenOutline, StrokeWidth: 2, Opacity: 0.8},
			},
			Ring: geom.Circle{
				CX: p.X, CY: p.Y, R: r * geoRingScale,
				Paint: geom.Paint{Stroke: geom.TokenMarkerRing, StrokeWidth: 1, Opacity: 0.3},
			},
			Name: geom.Text{
				X: p.X, Y: p.Y - r - 5, Content: loc.Name, Anchor: geom.AnchorMiddle, Size: 10, Bold: true,
				Paint: geom.Paint{Fill: geom.TokenLabel},
			},
			Value: geom.Text{
				X: p.X, Y: p.Y + 4, Content: FormatNumber(v), Anchor: geom.AnchorMiddle, Size: 8,
				Paint: geom.Paint{Fill: geom.TokenLabelInverse},
			},
		}
	}
	return out
}

// Scene flattens the layout marker by marker: ring, dot, then labels.
func (g GeoLayout) Scene() geom.Scene {
	s := geom.NewScene(g.Size.Width, g.Size.Height)
	for _, m := range g.Markers {
		s.Add(m.Ring, m.Dot, m.Name, m.Value)
	}
	return *s
}
