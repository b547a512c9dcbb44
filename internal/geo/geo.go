package geo

import (
	"iter"
	"slices"

	"github.com/wroge/wgs84"
)

// DefaultScale matches the zoom the ribbon scene is laid out for.
const DefaultScale = 50.0

// earthRadius is the sphere radius EPSG:3857 is defined on.
const earthRadius = 6378137.0

// Coordinate is a geographic (longitude, latitude) pair in degrees.
type Coordinate struct {
	Lon float64
	Lat float64
}

// Point is a position in projected planar space.
type Point struct {
	X float64
	Y float64
}

func (p Point) Sub(o Point) Point { return Point{X: p.X - o.X, Y: p.Y - o.Y} }

func (p Point) Scale(k float64) Point { return Point{X: p.X * k, Y: p.Y * k} }

func (p Point) Equal(o Point) bool { return p.X == o.X && p.Y == o.Y }

// Projector applies a scaled spherical Mercator projection. Output y grows
// southward, the convention of screen-space map projections.
type Projector struct {
	Scale   float64
	forward func(a, b, c float64) (float64, float64, float64)
}

func NewProjector(scale float64) Projector {
	epsg := wgs84.EPSG()
	return Projector{Scale: scale, forward: epsg.Transform(4326, 3857)}
}

// Forward projects a single coordinate without origin normalization.
func (p Projector) Forward(c Coordinate) Point {
	if p.forward == nil {
		p = NewProjector(p.Scale)
	}
	x, y, _ := p.forward(c.Lon, c.Lat, 0)
	k := p.Scale / earthRadius
	return Point{X: x * k, Y: -y * k}
}

// Project lazily maps coords to planar points, shifted so that the first
// coordinate lands on (0, 0). Output is index-aligned with the input.
func (p Projector) Project(coords iter.Seq[Coordinate]) iter.Seq[Point] {
	if p.forward == nil {
		p = NewProjector(p.Scale)
	}
	return func(yield func(Point) bool) {
		var origin Point
		first := true
		for c := range coords {
			pt := p.Forward(c)
			if first {
				origin = pt
				first = false
			}
			if !yield(pt.Sub(origin)) {
				return
			}
		}
	}
}

// ProjectAll is the eager form of Project.
func (p Projector) ProjectAll(coords []Coordinate) []Point {
	return slices.Collect(p.Project(slices.Values(coords)))
}
