// Package extrude sweeps a closed planar outline along +z into a solid and
// tracks which vertices belong to which face group.
package extrude

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl32"

	"flowribbon/internal/geo"
	"flowribbon/internal/shape"
)

// DefaultDepth is the extrusion depth the ribbon is drawn with.
const DefaultDepth = 0.2

// Face group names, in emission order.
const (
	CapBack  = "cap-back"
	CapFront = "cap-front"
	Wall     = "wall"
)

var (
	// ErrDegenerate is returned when the outline cannot enclose a solid.
	ErrDegenerate = errors.New("extrude: degenerate outline")
	// ErrFaceGroup is returned when a face group is missing or its range
	// does not fit the solid.
	ErrFaceGroup = errors.New("extrude: face group")
)

type Options struct {
	Depth float64
}

// Group is a contiguous run of vertices generated by one stage of the
// extrusion.
type Group struct {
	Name  string
	Start int
	Count int
}

// DrawRange scopes a draw call to [Start, Start+Count) vertices.
type DrawRange struct {
	Start int
	Count int
}

func (r DrawRange) End() int { return r.Start + r.Count }

// Solid is a non-indexed triangle list: every three consecutive vertices
// form one triangle.
type Solid struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	UVs       []mgl32.Vec2
	Groups    []Group

	// Simple is false when the source outline crosses itself; caps are then
	// best-effort.
	Simple bool
}

func (s *Solid) VertexCount() int { return len(s.Positions) }

// Range looks up the named group and checks that it addresses a non-empty
// span inside the solid.
func (s *Solid) Range(name string) (DrawRange, error) {
	for _, g := range s.Groups {
		if g.Name != name {
			continue
		}
		r := DrawRange{Start: g.Start, Count: g.Count}
		if r.Count <= 0 || r.Start < 0 || r.End() > s.VertexCount() || r.Count%3 != 0 {
			return DrawRange{}, fmt.Errorf("%w: %q range [%d, %d) invalid for %d vertices",
				ErrFaceGroup, name, r.Start, r.End(), s.VertexCount())
		}
		return r, nil
	}
	return DrawRange{}, fmt.Errorf("%w: no %q group", ErrFaceGroup, name)
}

// Wall is the side-wall range, the only surface meant to be drawn.
func (s *Solid) Wall() (DrawRange, error) { return s.Range(Wall) }

// FaceRanges maps every group name to its range, without validation.
func (s *Solid) FaceRanges() map[string]DrawRange {
	out := make(map[string]DrawRange, len(s.Groups))
	for _, g := range s.Groups {
		out[g.Name] = DrawRange{Start: g.Start, Count: g.Count}
	}
	return out
}

// Extrude builds a solid from p: back cap at z=0, front cap at z=depth, then
// the wall swept by the outline's edges, including the closing edge.
func Extrude(p shape.Path, opts Options) (*Solid, error) {
	if !(opts.Depth > 0) || math.IsInf(opts.Depth, 0) {
		return nil, fmt.Errorf("extrude: depth must be positive, got %v", opts.Depth)
	}
	outline := p.Outline()
	if len(outline) < 2 {
		return nil, fmt.Errorf("%w: %d distinct points", ErrDegenerate, len(outline))
	}
	// counter-clockwise, so cap and wall normals face outward
	if p.IsClockwise() {
		slices.Reverse(outline)
	}

	s := &Solid{Simple: p.Simple()}
	depth := float32(opts.Depth)
	tris := triangulate(outline)

	start := s.VertexCount()
	back := mgl32.Vec3{0, 0, -1}
	for _, t := range tris {
		// reversed so the back cap faces -z
		s.addCap(outline[t[2]], 0, back)
		s.addCap(outline[t[1]], 0, back)
		s.addCap(outline[t[0]], 0, back)
	}
	s.group(CapBack, start)

	start = s.VertexCount()
	front := mgl32.Vec3{0, 0, 1}
	for _, t := range tris {
		s.addCap(outline[t[0]], depth, front)
		s.addCap(outline[t[1]], depth, front)
		s.addCap(outline[t[2]], depth, front)
	}
	s.group(CapFront, start)

	start = s.VertexCount()
	n := len(outline)
	for j := range n {
		k := (j + n - 1) % n
		s.addWallQuad(outline[j], outline[k], depth)
	}
	s.group(Wall, start)

	return s, nil
}

func (s *Solid) group(name string, start int) {
	s.Groups = append(s.Groups, Group{Name: name, Start: start, Count: s.VertexCount() - start})
}

func (s *Solid) addCap(p geo.Point, z float32, n mgl32.Vec3) {
	x, y := float32(p.X), float32(p.Y)
	s.Positions = append(s.Positions, mgl32.Vec3{x, y, z})
	s.Normals = append(s.Normals, n)
	s.UVs = append(s.UVs, mgl32.Vec2{x, y})
}

// addWallQuad emits the quad between outline points j and k (k precedes j)
// as triangles (a, b, d) and (b, c, d), where a, b sit at z=0 and c, d at
// z=depth.
func (s *Solid) addWallQuad(pj, pk geo.Point, depth float32) {
	a := mgl32.Vec3{float32(pj.X), float32(pj.Y), 0}
	b := mgl32.Vec3{float32(pk.X), float32(pk.Y), 0}
	c := mgl32.Vec3{float32(pk.X), float32(pk.Y), depth}
	d := mgl32.Vec3{float32(pj.X), float32(pj.Y), depth}

	// outward for a counter-clockwise outline
	e := a.Sub(b)
	n := mgl32.Vec3{e.Y(), -e.X(), 0}
	if l := n.Len(); l > 0 {
		n = n.Mul(1 / l)
	}

	uv := wallUV(a, b, c, d)
	s.Positions = append(s.Positions, a, b, d, b, c, d)
	s.UVs = append(s.UVs, uv[0], uv[1], uv[3], uv[1], uv[2], uv[3])
	for range 6 {
		s.Normals = append(s.Normals, n)
	}
}

// wallUV runs u along whichever planar axis the edge mostly follows and v
// down the wall, v = 1 - z.
func wallUV(a, b, c, d mgl32.Vec3) [4]mgl32.Vec2 {
	axis := 1
	if abs32(a.Y()-b.Y()) < abs32(a.X()-b.X()) {
		axis = 0
	}
	return [4]mgl32.Vec2{
		{a[axis], 1 - a.Z()},
		{b[axis], 1 - b.Z()},
		{c[axis], 1 - c.Z()},
		{d[axis], 1 - d.Z()},
	}
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
