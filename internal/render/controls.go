package render

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const polarEps = 1e-4

// OrbitControls keeps the camera on a sphere around Target. Input methods
// queue motion; Update applies it, easing out when damping is enabled.
type OrbitControls struct {
	camera *Camera

	Target        mgl32.Vec3
	EnableDamping bool
	DampingFactor float32
	EnablePan     bool
	MinDistance   float32
	MaxDistance   float32

	dTheta, dPhi float32
	scale        float32
	pan          mgl32.Vec3

	home   mgl32.Vec3
	homeAt mgl32.Vec3
}

func NewOrbitControls(c *Camera) *OrbitControls {
	o := &OrbitControls{
		camera:        c,
		Target:        c.Target,
		DampingFactor: 0.05,
		EnablePan:     true,
		MinDistance:   0.05,
		MaxDistance:   100,
		scale:         1,
	}
	o.SaveState()
	return o
}

// SaveState records the current camera placement for Reset.
func (o *OrbitControls) SaveState() {
	o.home = o.camera.Position
	o.homeAt = o.Target
}

func (o *OrbitControls) Reset() {
	o.camera.Position = o.home
	o.Target = o.homeAt
	o.camera.Target = o.homeAt
	o.dTheta, o.dPhi, o.scale = 0, 0, 1
	o.pan = mgl32.Vec3{}
}

// Rotate queues an orbit: dTheta around the up axis, dPhi away from it.
func (o *OrbitControls) Rotate(dTheta, dPhi float32) {
	o.dTheta += dTheta
	o.dPhi += dPhi
}

// Dolly scales the camera distance; factors below 1 move closer.
func (o *OrbitControls) Dolly(factor float32) {
	if factor > 0 {
		o.scale *= factor
	}
}

// Pan shifts camera and target in the view plane. dx and dy are fractions
// of the visible height at the target distance.
func (o *OrbitControls) Pan(dx, dy float32) {
	if !o.EnablePan {
		return
	}
	c := o.camera
	offset := c.Position.Sub(o.Target)
	dist := offset.Len() * math32.Tan(mgl32.DegToRad(c.Fov)/2) * 2
	forward := offset.Mul(-1)
	if forward.Len() == 0 {
		return
	}
	forward = forward.Normalize()
	right := forward.Cross(c.Up)
	if right.Len() == 0 {
		return
	}
	right = right.Normalize()
	up := right.Cross(forward)
	o.pan = o.pan.Add(right.Mul(-dx * dist)).Add(up.Mul(dy * dist))
}

// Update moves the camera by the queued motion and reports whether it moved.
func (o *OrbitControls) Update() bool {
	c := o.camera
	offset := c.Position.Sub(o.Target)
	radius := offset.Len()
	theta := math32.Atan2(offset.X(), offset.Z())
	phi := float32(0)
	if radius > 0 {
		phi = math32.Acos(mgl32.Clamp(offset.Y()/radius, -1, 1))
	}

	f := float32(1)
	if o.EnableDamping {
		f = o.DampingFactor
	}
	theta += o.dTheta * f
	phi += o.dPhi * f
	phi = mgl32.Clamp(phi, polarEps, math32.Pi-polarEps)

	radius = mgl32.Clamp(radius*o.scale, o.MinDistance, o.MaxDistance)
	o.Target = o.Target.Add(o.pan.Mul(f))

	sinPhi := math32.Sin(phi)
	offset = mgl32.Vec3{
		radius * sinPhi * math32.Sin(theta),
		radius * math32.Cos(phi),
		radius * sinPhi * math32.Cos(theta),
	}
	prev := c.Position
	c.Position = o.Target.Add(offset)
	c.Target = o.Target

	if o.EnableDamping {
		o.dTheta *= 1 - f
		o.dPhi *= 1 - f
		o.pan = o.pan.Mul(1 - f)
	} else {
		o.dTheta, o.dPhi = 0, 0
		o.pan = mgl32.Vec3{}
	}
	o.scale = 1

	return c.Position.Sub(prev).Len() > 1e-6
}
