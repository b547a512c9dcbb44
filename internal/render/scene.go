package render

import (
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"

	"flowribbon/internal/extrude"
	"flowribbon/internal/shader"
)

// Mesh draws Range of Solid with Material, placed by Model.
type Mesh struct {
	Solid    *extrude.Solid
	Range    extrude.DrawRange
	Material *shader.Material
	Model    mgl32.Mat4
}

func NewMesh(s *extrude.Solid, r extrude.DrawRange, m *shader.Material) *Mesh {
	return &Mesh{Solid: s, Range: r, Material: m, Model: mgl32.Ident4()}
}

// Line is an opaque helper segment in world space.
type Line struct {
	From  mgl32.Vec3
	To    mgl32.Vec3
	Color colorful.Color
}

type Scene struct {
	Background colorful.Color
	Meshes     []*Mesh
	Lines      []Line
}

func NewScene(bg colorful.Color) *Scene {
	return &Scene{Background: bg}
}

func (s *Scene) Add(m *Mesh) { s.Meshes = append(s.Meshes, m) }

func (s *Scene) Remove(m *Mesh) {
	s.Meshes = slices.DeleteFunc(s.Meshes, func(x *Mesh) bool { return x == m })
}

func (s *Scene) AddLines(ls ...Line) { s.Lines = append(s.Lines, ls...) }

// GridHelper lays a size x size grid on the y=0 plane, centered on the origin.
func GridHelper(size float32, divisions int, center, grid colorful.Color) []Line {
	if divisions < 1 {
		divisions = 1
	}
	half := size / 2
	step := size / float32(divisions)
	mid := divisions / 2
	lines := make([]Line, 0, 2*(divisions+1))
	for i := 0; i <= divisions; i++ {
		k := -half + float32(i)*step
		c := grid
		if i == mid && divisions%2 == 0 {
			c = center
		}
		lines = append(lines,
			Line{From: mgl32.Vec3{-half, 0, k}, To: mgl32.Vec3{half, 0, k}, Color: c},
			Line{From: mgl32.Vec3{k, 0, -half}, To: mgl32.Vec3{k, 0, half}, Color: c},
		)
	}
	return lines
}

// AxesHelper draws x (red), y (green) and z (blue) from the origin.
func AxesHelper(size float32) []Line {
	return []Line{
		{To: mgl32.Vec3{size, 0, 0}, Color: colorful.Color{R: 1, G: 0, B: 0}},
		{To: mgl32.Vec3{0, size, 0}, Color: colorful.Color{R: 0, G: 1, B: 0}},
		{To: mgl32.Vec3{0, 0, size}, Color: colorful.Color{R: 0, G: 0, B: 1}},
	}
}
