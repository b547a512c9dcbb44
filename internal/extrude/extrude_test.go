package extrude

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowribbon/internal/geo"
	"flowribbon/internal/shape"
)

func path(t *testing.T, xy ...float64) shape.Path {
	t.Helper()
	var pts []geo.Point
	for i := 0; i+1 < len(xy); i += 2 {
		pts = append(pts, geo.Point{X: xy[i], Y: xy[i+1]})
	}
	p, err := shape.Build(pts)
	require.NoError(t, err)
	return p
}

func TestExtrude_SquareGroups(t *testing.T) {
	s, err := Extrude(path(t, 0, 0, 1, 0, 1, 1, 0, 1), Options{Depth: DefaultDepth})
	require.NoError(t, err)

	require.Len(t, s.Groups, 3)
	assert.Equal(t, Group{Name: CapBack, Start: 0, Count: 6}, s.Groups[0])
	assert.Equal(t, Group{Name: CapFront, Start: 6, Count: 6}, s.Groups[1])
	assert.Equal(t, Group{Name: Wall, Start: 12, Count: 24}, s.Groups[2])
	assert.Equal(t, 36, s.VertexCount())
	assert.Len(t, s.Normals, 36)
	assert.Len(t, s.UVs, 36)
	assert.True(t, s.Simple)

	wall, err := s.Wall()
	require.NoError(t, err)
	assert.Equal(t, DrawRange{Start: 12, Count: 24}, wall)
}

func TestExtrude_WallWithinBounds(t *testing.T) {
	paths := []shape.Path{
		path(t, 0, 0, 1, 0),
		path(t, 0, 0, 1, 0, 1, 1),
		path(t, 0, 0, 0, 1, 1, 1, 1, 0), // clockwise
		path(t, 0, 0, 1, 1, 1, 0, 0, 1), // self-intersecting
		path(t, 0, 0, 4, 0, 4, 3, 2, 1, 0, 3, 0, 0),
		path(t, 0, 0, 1, 0, 2, 0, 3, 0), // collinear
	}
	for i, p := range paths {
		s, err := Extrude(p, Options{Depth: 0.5})
		require.NoError(t, err, "path %d", i)
		r, err := s.Wall()
		require.NoError(t, err, "path %d", i)
		assert.Positive(t, r.Count, "path %d", i)
		assert.GreaterOrEqual(t, r.Start, 0)
		assert.LessOrEqual(t, r.End(), s.VertexCount())
		assert.Equal(t, 6*len(p.Outline()), r.Count)
	}
}

func TestExtrude_WallSpansDepth(t *testing.T) {
	s, err := Extrude(path(t, 0, 0, 2, 0, 2, 1), Options{Depth: 0.2})
	require.NoError(t, err)
	r, err := s.Wall()
	require.NoError(t, err)
	for i := r.Start; i < r.End(); i++ {
		z := s.Positions[i].Z()
		assert.True(t, z == 0 || z == float32(0.2), "z=%v", z)
		assert.InDelta(t, 1-z, s.UVs[i].Y(), 1e-6)
		assert.InDelta(t, 0, s.Normals[i].Z(), 1e-6)
		assert.InDelta(t, 1, s.Normals[i].Len(), 1e-5)
	}
}

func TestExtrude_CapsFaceOutward(t *testing.T) {
	s, err := Extrude(path(t, 0, 0, 0, 1, 1, 1, 1, 0), Options{Depth: 1})
	require.NoError(t, err)
	ranges := s.FaceRanges()

	check := func(name string, want float32) {
		r := ranges[name]
		require.Positive(t, r.Count)
		for i := r.Start; i < r.End(); i += 3 {
			a, b, c := s.Positions[i], s.Positions[i+1], s.Positions[i+2]
			n := b.Sub(a).Cross(c.Sub(a))
			assert.Greater(t, n.Z()*want, float32(0), "%s triangle %d winding", name, i/3)
		}
	}
	check(CapBack, -1)
	check(CapFront, 1)
}

func TestExtrude_WallNormalsPointOutward(t *testing.T) {
	s, err := Extrude(path(t, 0, 0, 1, 0, 1, 1, 0, 1), Options{Depth: 1})
	require.NoError(t, err)
	r, err := s.Wall()
	require.NoError(t, err)
	center := mgl32.Vec3{0.5, 0.5, 0}
	for i := r.Start; i < r.End(); i++ {
		p := s.Positions[i]
		out := mgl32.Vec3{p.X(), p.Y(), 0}.Sub(center)
		assert.Positive(t, out.Dot(s.Normals[i]))
	}
}

func TestExtrude_Degenerate(t *testing.T) {
	_, err := Extrude(path(t, 3, 3), Options{Depth: 0.2})
	require.ErrorIs(t, err, ErrDegenerate)

	_, err = Extrude(path(t, 3, 3, 3, 3, 3, 3), Options{Depth: 0.2})
	require.ErrorIs(t, err, ErrDegenerate)

	_, err = Extrude(shape.Path{}, Options{Depth: 0.2})
	require.ErrorIs(t, err, ErrDegenerate)
}

func TestExtrude_BadDepth(t *testing.T) {
	for _, d := range []float64{0, -1} {
		_, err := Extrude(path(t, 0, 0, 1, 0, 1, 1), Options{Depth: d})
		require.Error(t, err)
	}
}

func TestRange_Validation(t *testing.T) {
	s := &Solid{
		Positions: make([]mgl32.Vec3, 12),
		Groups: []Group{
			{Name: CapBack, Start: 0, Count: 0},
			{Name: CapFront, Start: 0, Count: 6},
			{Name: Wall, Start: 6, Count: 12},
		},
	}
	_, err := s.Wall()
	require.ErrorIs(t, err, ErrFaceGroup)

	_, err = s.Range(CapBack)
	require.ErrorIs(t, err, ErrFaceGroup)

	_, err = s.Range("lid")
	require.ErrorIs(t, err, ErrFaceGroup)

	r, err := s.Range(CapFront)
	require.NoError(t, err)
	assert.Equal(t, DrawRange{Start: 0, Count: 6}, r)
}

func TestTriangulate(t *testing.T) {
	concave := []geo.Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 3}, {X: 2, Y: 1}, {X: 0, Y: 3}}
	tris := triangulate(concave)
	require.Len(t, tris, 3)

	var total float64
	for _, tr := range tris {
		a := cross(concave[tr[0]], concave[tr[1]], concave[tr[2]])
		assert.Positive(t, a)
		total += a / 2
	}
	// 4*3 rectangle minus the notch triangle (0,3)-(2,1)-(4,3)
	assert.InDelta(t, 12-4, total, 1e-9)

	assert.Nil(t, triangulate(concave[:2]))
}

// comb is a simple counter-clockwise polygon with k reflex notches along
// its top edge.
func comb(k int) []geo.Point {
	w := 2 * k
	pts := []geo.Point{{X: 0, Y: 0}, {X: float64(w), Y: 0}}
	for x := w; x >= 0; x-- {
		y := 2.0
		if x%2 == 1 {
			y = 1
		}
		pts = append(pts, geo.Point{X: float64(x), Y: y})
	}
	return pts
}

func TestTriangulate_Comb(t *testing.T) {
	const k = 200
	pts := comb(k)
	tris := triangulate(pts)
	require.Len(t, tris, len(pts)-2)

	var total float64
	for _, tr := range tris {
		a := cross(pts[tr[0]], pts[tr[1]], pts[tr[2]])
		require.Positive(t, a)
		total += a / 2
	}
	// base strip of height 1 plus one unit of teeth per notch
	assert.InDelta(t, 3*k, total, 1e-6)
}

func TestTriangulate_SelfIntersectingStops(t *testing.T) {
	bowtie := []geo.Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 1, Y: 0}, {X: 0, Y: 1}}
	assert.LessOrEqual(t, len(triangulate(bowtie)), 2)
}

func TestExtrude_LongRandomWalk(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	const n = 4000
	xy := make([]float64, 0, 2*n)
	x, y := 0.0, 0.0
	for range n {
		x += rng.Float64() - 0.5
		y += rng.Float64() - 0.5
		xy = append(xy, x, y)
	}
	p := path(t, xy...)

	start := time.Now()
	s, err := Extrude(p, Options{Depth: DefaultDepth})
	elapsed := time.Since(start)
	require.NoError(t, err)

	wall, err := s.Wall()
	require.NoError(t, err)
	assert.Equal(t, 6*len(p.Outline()), wall.Count)
	assert.Less(t, elapsed, 3*time.Second)
}
