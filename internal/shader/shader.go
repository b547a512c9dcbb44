// Package shader holds the two-stage program that shades the ribbon wall.
// Stages run on the CPU rasterizer in internal/render.
package shader

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
)

// Uniform names exposed to the host.
const (
	UniformColor = "color"
	UniformTime  = "time"
	UniformNum   = "num"
)

const (
	DefaultColor = "#00BCD4"
	DefaultNum   = 20.0
)

var ErrUniform = errors.New("shader: uniform")

// Uniforms are shared by every vertex and fragment of a draw call.
type Uniforms struct {
	Color colorful.Color
	Time  float32
	Num   float32
}

// Set assigns a uniform by name. color accepts a colorful.Color or a hex
// string; time and num accept float32 or float64.
func (u *Uniforms) Set(name string, v any) error {
	switch name {
	case UniformColor:
		switch c := v.(type) {
		case colorful.Color:
			u.Color = c
		case string:
			parsed, err := colorful.Hex(c)
			if err != nil {
				return fmt.Errorf("%w: color %q: %v", ErrUniform, c, err)
			}
			u.Color = parsed
		default:
			return fmt.Errorf("%w: color: unsupported value %T", ErrUniform, v)
		}
	case UniformTime, UniformNum:
		var f float32
		switch x := v.(type) {
		case float32:
			f = x
		case float64:
			f = float32(x)
		default:
			return fmt.Errorf("%w: %s: unsupported value %T", ErrUniform, name, v)
		}
		if name == UniformTime {
			u.Time = f
		} else {
			u.Num = f
		}
	default:
		return fmt.Errorf("%w: unknown uniform %q", ErrUniform, name)
	}
	return nil
}

func (u *Uniforms) Get(name string) (any, error) {
	switch name {
	case UniformColor:
		return u.Color, nil
	case UniformTime:
		return u.Time, nil
	case UniformNum:
		return u.Num, nil
	}
	return nil, fmt.Errorf("%w: unknown uniform %q", ErrUniform, name)
}

// Attributes are the per-vertex inputs of the vertex stage.
type Attributes struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	UV       mgl32.Vec2
}

// Varyings flow from the vertex stage to the fragment stage, interpolated
// across the triangle.
type Varyings struct {
	UV     mgl32.Vec2
	Normal mgl32.Vec3
}

func (v Varyings) Lerp(o Varyings, t float32) Varyings {
	return Varyings{
		UV:     v.UV.Add(o.UV.Sub(v.UV).Mul(t)),
		Normal: v.Normal.Add(o.Normal.Sub(v.Normal).Mul(t)),
	}
}

// Mix blends three varyings with barycentric weights w.
func Mix(v [3]Varyings, w [3]float32) Varyings {
	return Varyings{
		UV:     v[0].UV.Mul(w[0]).Add(v[1].UV.Mul(w[1])).Add(v[2].UV.Mul(w[2])),
		Normal: v[0].Normal.Mul(w[0]).Add(v[1].Normal.Mul(w[1])).Add(v[2].Normal.Mul(w[2])),
	}
}

// RGBA is a straight (non-premultiplied) fragment color.
type RGBA struct {
	R, G, B, A float32
}

type Program interface {
	Vertex(a Attributes, mvp mgl32.Mat4) (mgl32.Vec4, Varyings)
	Fragment(v Varyings, u *Uniforms) RGBA
}

// Flow draws num fading bands per unit of v, shifted by time so they travel
// toward decreasing v as time grows.
type Flow struct{}

func (Flow) Vertex(a Attributes, mvp mgl32.Mat4) (mgl32.Vec4, Varyings) {
	return mvp.Mul4x1(a.Position.Vec4(1)), Varyings{UV: a.UV, Normal: a.Normal}
}

func (Flow) Fragment(v Varyings, u *Uniforms) RGBA {
	return RGBA{
		R: float32(u.Color.R),
		G: float32(u.Color.G),
		B: float32(u.Color.B),
		A: 1 - Fract((v.UV.Y()-u.Time)*u.Num),
	}
}

// Fract is x - floor(x), kept in [0, 1) even where float32 rounding of a
// tiny negative x would produce 1.
func Fract(x float32) float32 {
	f := x - math32.Floor(x)
	if f >= 1 {
		return 0
	}
	return f
}

// Material binds a program to its uniforms and blend state.
type Material struct {
	Program     Program
	Uniforms    *Uniforms
	Transparent bool
	DoubleSided bool
	DepthWrite  bool
}

// Compile checks the uniform contract once, before the first frame.
func Compile(p Program, u *Uniforms) (*Material, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: nil program", ErrUniform)
	}
	if u == nil {
		return nil, fmt.Errorf("%w: nil uniforms", ErrUniform)
	}
	if !(u.Num > 0) || math32.IsInf(u.Num, 0) {
		return nil, fmt.Errorf("%w: num must be positive, got %v", ErrUniform, u.Num)
	}
	if u.Time < 0 || u.Time >= 1 {
		return nil, fmt.Errorf("%w: time %v outside [0, 1)", ErrUniform, u.Time)
	}
	if !u.Color.IsValid() {
		return nil, fmt.Errorf("%w: color %v out of gamut", ErrUniform, u.Color)
	}
	return &Material{
		Program:     p,
		Uniforms:    u,
		Transparent: true,
		DoubleSided: true,
	}, nil
}

// NewFlowMaterial compiles Flow with the given color and band count.
func NewFlowMaterial(color string, num float32) (*Material, error) {
	u := &Uniforms{Num: num}
	if err := u.Set(UniformColor, color); err != nil {
		return nil, err
	}
	return Compile(Flow{}, u)
}
