package geo

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var square = []Coordinate{
	{Lon: 0, Lat: 0},
	{Lon: 1, Lat: 0},
	{Lon: 1, Lat: 1},
	{Lon: 0, Lat: 1},
}

func TestProjectAll_FirstPointIsOrigin(t *testing.T) {
	inputs := [][]Coordinate{
		square,
		{{Lon: 116.39, Lat: 39.91}},
		{{Lon: -73.98, Lat: 40.75}, {Lon: -73.97, Lat: 40.76}},
		{{Lon: 151.2, Lat: -33.86}, {Lon: 0, Lat: 0}, {Lon: -179.9, Lat: 80}},
	}
	p := NewProjector(DefaultScale)
	for _, in := range inputs {
		out := p.ProjectAll(in)
		require.Len(t, out, len(in))
		assert.Equal(t, Point{}, out[0])
	}
}

func TestProjectAll_Square(t *testing.T) {
	out := NewProjector(50).ProjectAll(square)
	require.Len(t, out, 4)

	assert.Equal(t, Point{}, out[0])
	for i := 1; i < len(out); i++ {
		assert.False(t, out[i].Equal(Point{}), "point %d should be nonzero", i)
		for j := 1; j < i; j++ {
			assert.False(t, out[i].Equal(out[j]), "points %d and %d should differ", i, j)
		}
	}

	// One degree of longitude at scale 50 is 50 * pi / 180.
	assert.InDelta(t, 50*math.Pi/180, out[1].X, 1e-6)
	assert.InDelta(t, 0, out[1].Y, 1e-6)
	// Northward moves toward negative y.
	assert.Less(t, out[2].Y, 0.0)
	assert.InDelta(t, -50*math.Log(math.Tan(math.Pi/4+math.Pi/360)), out[3].Y, 1e-6)
}

func TestProjectAll_ScalesProportionally(t *testing.T) {
	in := []Coordinate{{Lon: 10, Lat: 45}, {Lon: 10.5, Lat: 45.2}, {Lon: 11, Lat: 44.7}, {Lon: 9.8, Lat: 44.9}}
	base := NewProjector(50).ProjectAll(in)
	scaled := NewProjector(125).ProjectAll(in)
	require.Len(t, scaled, len(base))
	for i := range base {
		assert.InDelta(t, base[i].X*2.5, scaled[i].X, 1e-9)
		assert.InDelta(t, base[i].Y*2.5, scaled[i].Y, 1e-9)
	}
}

func TestProjectAll_Empty(t *testing.T) {
	assert.Empty(t, NewProjector(50).ProjectAll(nil))
}

func TestProject_IsLazyAndStops(t *testing.T) {
	pulled := 0
	src := func(yield func(Coordinate) bool) {
		for _, c := range square {
			pulled++
			if !yield(c) {
				return
			}
		}
	}
	var got []Point
	for pt := range NewProjector(50).Project(src) {
		got = append(got, pt)
		if len(got) == 2 {
			break
		}
	}
	assert.Len(t, got, 2)
	assert.Equal(t, 2, pulled)
}

func TestProject_OrderPreserved(t *testing.T) {
	p := NewProjector(50)
	forward := p.ProjectAll(square)
	rev := slices.Clone(square)
	slices.Reverse(rev)
	backward := p.ProjectAll(rev)
	// Differences between neighbours must match, just walked the other way.
	for i := 1; i < len(forward); i++ {
		d1 := forward[i].Sub(forward[i-1])
		j := len(backward) - i
		d2 := backward[j-1].Sub(backward[j])
		assert.InDelta(t, d1.X, d2.X, 1e-9)
		assert.InDelta(t, d1.Y, d2.Y, 1e-9)
	}
}

func TestForward_ZeroValueProjector(t *testing.T) {
	var p Projector
	p.Scale = 50
	assert.InDelta(t, 50*math.Pi/180, p.Forward(Coordinate{Lon: 1}).X, 1e-6)
}
