package app

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowribbon/internal/config"
	"flowribbon/internal/extrude"
	"flowribbon/internal/geo"
)

var square = []geo.Coordinate{{Lon: 0, Lat: 0}, {Lon: 1, Lat: 0}, {Lon: 1, Lat: 1}, {Lon: 0, Lat: 1}}

func newState(t *testing.T, coords []geo.Coordinate) *State {
	t.Helper()
	s, err := New(config.Default(), coords, zerolog.Nop())
	require.NoError(t, err)
	return s
}

func TestAdvanceTime(t *testing.T) {
	tests := []struct {
		name string
		t    float32
		want float32
	}{
		{"start", 0, 0.002},
		{"middle", 0.5, 0.502},
		{"at one wraps first", 1, 0.002},
		{"past one wraps first", 1.0015, 0.002},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, AdvanceTime(tt.t, 0.002), 1e-6)
		})
	}
}

func TestAdvanceTime_WrapsNearOne(t *testing.T) {
	v := float32(0.998)
	wrapped := false
	for range 10 {
		prev := v
		v = AdvanceTime(v, 0.002)
		require.Less(t, v, float32(1.0021))
		if prev >= 1 {
			assert.InDelta(t, 0.002, v, 1e-7)
			wrapped = true
		}
	}
	assert.True(t, wrapped)
	assert.Less(t, v, float32(0.02))
}

func TestAdvanceTime_StaysBounded(t *testing.T) {
	v := float32(0)
	wraps := 0
	for range 2000 {
		prev := v
		v = AdvanceTime(v, 0.002)
		assert.Greater(t, v, float32(0))
		assert.LessOrEqual(t, v, float32(1.0021))
		if v < prev {
			wraps++
		}
	}
	assert.GreaterOrEqual(t, wraps, 3)
}

func TestBuildSolid_Square(t *testing.T) {
	s, err := BuildSolid(square, 50, 0.2)
	require.NoError(t, err)
	wall, err := s.Wall()
	require.NoError(t, err)
	assert.Equal(t, 24, wall.Count)
	assert.Equal(t, s.VertexCount(), wall.End())
}

func TestBuildSolid_Empty(t *testing.T) {
	_, err := BuildSolid(nil, 50, 0.2)
	assert.Error(t, err)

	_, err = BuildSolid([]geo.Coordinate{{Lon: 3, Lat: 4}, {Lon: 3, Lat: 4}}, 50, 0.2)
	assert.ErrorIs(t, err, extrude.ErrDegenerate)
}

func TestNew_Square(t *testing.T) {
	s := newState(t, square)
	require.NotNil(t, s.Mesh)
	assert.Equal(t, s.Faces[extrude.Wall], s.Mesh.Range)
	assert.Len(t, s.Scene.Meshes, 1)
	assert.True(t, s.Material.Transparent)
	assert.True(t, s.Material.DoubleSided)
	assert.InDelta(t, 70, s.Camera.Fov, 1e-6)
	assert.Equal(t, cameraStart, s.Camera.Position)

	// x stays, projected y becomes depth, lifted by meshLift
	p := s.Mesh.Model.Mul4x1(s.Mesh.Solid.Positions[0].Vec4(1))
	q := s.Mesh.Solid.Positions[0]
	assert.InDelta(t, q.X(), p.X(), 1e-5)
	assert.InDelta(t, meshLift-q.Z(), p.Y(), 1e-5)
	assert.InDelta(t, q.Y(), p.Z(), 1e-5)
}

func TestNew_EmptyDataSkipsMesh(t *testing.T) {
	var buf bytes.Buffer
	s, err := New(config.Default(), nil, zerolog.New(&buf))
	require.NoError(t, err)
	assert.Nil(t, s.Mesh)
	assert.Empty(t, s.Scene.Meshes)
	assert.Contains(t, buf.String(), "skipping mesh")

	cmd := s.Tick(DisplaySize{W: 20, H: 10})
	assert.Zero(t, cmd.Stats.Triangles)
	assert.Positive(t, cmd.Stats.Lines)
	assert.Len(t, cmd.Frame, 5)
}

func TestNew_DegenerateDataSkipsMesh(t *testing.T) {
	s := newState(t, []geo.Coordinate{{Lon: 10, Lat: 10}})
	assert.Nil(t, s.Mesh)
}

func TestNew_BadMaterial(t *testing.T) {
	cfg := config.Default()
	cfg.Shader.Num = 0
	_, err := New(cfg, square, zerolog.Nop())
	assert.Error(t, err)
}

func TestTick_Resize(t *testing.T) {
	s := newState(t, square)

	cmd := s.Tick(DisplaySize{W: 40, H: 20})
	assert.True(t, cmd.Resized)
	assert.Len(t, cmd.Frame, 10)
	assert.InDelta(t, 2, s.Camera.Aspect, 1e-6)
	w, h := s.Renderer.Size()
	assert.Equal(t, 40, w)
	assert.Equal(t, 20, h)

	cmd = s.Tick(DisplaySize{W: 40, H: 20})
	assert.False(t, cmd.Resized)

	cmd = s.Tick(DisplaySize{W: 30, H: 30})
	assert.True(t, cmd.Resized)
	assert.InDelta(t, 1, s.Camera.Aspect, 1e-6)
	assert.Len(t, cmd.Frame, 15)
}

func TestTick_ZeroSize(t *testing.T) {
	s := newState(t, square)
	cmd := s.Tick(DisplaySize{})
	assert.False(t, cmd.Resized)
	assert.Empty(t, cmd.Frame)
	assert.Zero(t, cmd.Stats.Fragments)
}

func TestTick_AdvancesUniform(t *testing.T) {
	s := newState(t, square)
	d := DisplaySize{W: 8, H: 8}
	for i := 1; i <= 5; i++ {
		cmd := s.Tick(d)
		assert.InDelta(t, 0.002*float32(i), cmd.Time, 1e-6)
		assert.Equal(t, cmd.Time, s.Time())
		assert.Equal(t, cmd.Time, s.Material.Uniforms.Time)
	}
}

func TestTick_DrawsWall(t *testing.T) {
	s := newState(t, square)
	cmd := s.Tick(DisplaySize{W: 80, H: 60})
	assert.Equal(t, 8, cmd.Stats.Triangles)
	assert.Positive(t, cmd.Stats.Fragments)
	assert.Positive(t, cmd.Stats.Lines)
}

func TestSetDataset_Replaces(t *testing.T) {
	s := newState(t, nil)
	require.Nil(t, s.Mesh)

	require.NoError(t, s.SetDataset(square))
	require.NotNil(t, s.Mesh)
	first := s.Mesh
	assert.Len(t, s.Scene.Meshes, 1)

	tri := []geo.Coordinate{{Lon: 0, Lat: 0}, {Lon: 2, Lat: 0}, {Lon: 1, Lat: 1}}
	require.NoError(t, s.SetDataset(tri))
	assert.NotSame(t, first, s.Mesh)
	assert.Len(t, s.Scene.Meshes, 1)
	assert.Equal(t, 18, s.Mesh.Range.Count)

	err := s.SetDataset([]geo.Coordinate{{Lon: 1, Lat: 1}})
	assert.ErrorIs(t, err, extrude.ErrDegenerate)
	assert.Nil(t, s.Mesh)
	assert.Empty(t, s.Scene.Meshes)
}
