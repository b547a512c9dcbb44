package render

import "github.com/go-gl/mathgl/mgl32"

// Camera is a perspective camera. Fov is the vertical field of view in
// degrees.
type Camera struct {
	Fov    float32
	Aspect float32
	Near   float32
	Far    float32

	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3

	projection mgl32.Mat4
}

func NewPerspectiveCamera(fov, aspect, near, far float32) *Camera {
	c := &Camera{
		Fov:    fov,
		Aspect: aspect,
		Near:   near,
		Far:    far,
		Up:     mgl32.Vec3{0, 1, 0},
	}
	c.UpdateProjection()
	return c
}

// UpdateProjection must be called after changing Fov, Aspect, Near or Far.
func (c *Camera) UpdateProjection() {
	aspect := c.Aspect
	if !(aspect > 0) {
		aspect = 1
	}
	c.projection = mgl32.Perspective(mgl32.DegToRad(c.Fov), aspect, c.Near, c.Far)
}

func (c *Camera) Projection() mgl32.Mat4 { return c.projection }

func (c *Camera) View() mgl32.Mat4 { return mgl32.LookAtV(c.Position, c.Target, c.Up) }

// ViewProjection is Projection * View.
func (c *Camera) ViewProjection() mgl32.Mat4 { return c.projection.Mul4(c.View()) }
