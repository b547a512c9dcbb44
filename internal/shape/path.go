package shape

import (
	"errors"
	"iter"
	"slices"

	"github.com/peterstace/simplefeatures/geom"

	"flowribbon/internal/geo"
)

// ErrEmptyPath is returned when a path is built from no points.
var ErrEmptyPath = errors.New("shape: empty path")

// Path is an ordered, read-only outline in planar space.
type Path struct {
	pts []geo.Point
}

// Build copies points into a Path, keeping their order.
func Build(points []geo.Point) (Path, error) {
	if len(points) == 0 {
		return Path{}, ErrEmptyPath
	}
	return Path{pts: slices.Clone(points)}, nil
}

// BuildSeq drains seq into a Path.
func BuildSeq(seq iter.Seq[geo.Point]) (Path, error) {
	return Build(slices.Collect(seq))
}

func (p Path) Len() int { return len(p.pts) }

func (p Path) At(i int) geo.Point { return p.pts[i] }

// Points returns a copy of the path's points.
func (p Path) Points() []geo.Point { return slices.Clone(p.pts) }

func (p Path) All() iter.Seq2[int, geo.Point] { return slices.All(p.pts) }

// Outline returns the points of the closed outline: consecutive duplicates are
// collapsed and a trailing point equal to the first is dropped, since the
// closing edge is implicit.
func (p Path) Outline() []geo.Point {
	out := make([]geo.Point, 0, len(p.pts))
	for _, pt := range p.pts {
		if len(out) > 0 && out[len(out)-1].Equal(pt) {
			continue
		}
		out = append(out, pt)
	}
	if len(out) > 1 && out[0].Equal(out[len(out)-1]) {
		out = out[:len(out)-1]
	}
	return out
}

// Area is the signed shoelace area of the closed outline. Positive means
// counter-clockwise in a y-up frame.
func (p Path) Area() float64 {
	return area(p.Outline())
}

func (p Path) IsClockwise() bool { return p.Area() < 0 }

// Simple reports whether the closed outline does not cross itself.
// Outlines with fewer than three points are considered simple.
func (p Path) Simple() bool {
	o := p.Outline()
	if len(o) < 3 {
		return true
	}
	flat := make([]float64, 0, 2*len(o)+2)
	for _, pt := range o {
		flat = append(flat, pt.X, pt.Y)
	}
	flat = append(flat, o[0].X, o[0].Y)
	ring, err := geom.NewLineString(geom.NewSequence(flat, geom.DimXY))
	if err != nil {
		return false
	}
	return ring.IsSimple()
}

func area(pts []geo.Point) float64 {
	n := len(pts)
	if n < 3 {
		return 0
	}
	var a float64
	for i, j := n-1, 0; j < n; i, j = j, j+1 {
		a += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	return a / 2
}
