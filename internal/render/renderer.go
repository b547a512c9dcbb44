package render

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"

	"flowribbon/internal/shader"
)

// Stats describes one rendered frame.
type Stats struct {
	Lines     int
	Triangles int
	Fragments int
}

// Renderer rasterizes a Scene into its Surface on the CPU.
type Renderer struct {
	surface *Surface
}

func NewRenderer(w, h int) *Renderer {
	return &Renderer{surface: NewSurface(w, h)}
}

func (r *Renderer) Surface() *Surface { return r.surface }

func (r *Renderer) Size() (int, int) { return r.surface.Size() }

func (r *Renderer) SetSize(w, h int) { r.surface.Resize(w, h) }

// Render clears the surface, draws opaque helper lines, then meshes.
func (r *Renderer) Render(scene *Scene, cam *Camera) Stats {
	var st Stats
	s := r.surface
	s.Clear(scene.Background)
	if s.w == 0 || s.h == 0 {
		return st
	}
	vp := cam.ViewProjection()
	for _, l := range scene.Lines {
		if r.drawLine(vp, l) {
			st.Lines++
		}
	}
	for _, m := range scene.Meshes {
		r.drawMesh(vp, m, &st)
	}
	return st
}

type clipVertex struct {
	pos mgl32.Vec4
	v   shader.Varyings
}

func (a clipVertex) lerp(b clipVertex, t float32) clipVertex {
	return clipVertex{pos: lerp4(a.pos, b.pos, t), v: a.v.Lerp(b.v, t)}
}

func lerp4(a, b mgl32.Vec4, t float32) mgl32.Vec4 {
	return a.Add(b.Sub(a).Mul(t))
}

// nearDist is the signed distance to the near plane in clip space.
func nearDist(p mgl32.Vec4) float32 { return p.Z() + p.W() }

// clipNear clips a convex polygon against the near plane.
func clipNear(in []clipVertex) []clipVertex {
	out := make([]clipVertex, 0, len(in)+1)
	for i := range in {
		a, b := in[i], in[(i+1)%len(in)]
		da, db := nearDist(a.pos), nearDist(b.pos)
		if da >= 0 {
			out = append(out, a)
		}
		if (da >= 0) != (db >= 0) {
			out = append(out, a.lerp(b, da/(da-db)))
		}
	}
	return out
}

type screenVertex struct {
	x, y, z float32
	invW    float32
}

func (r *Renderer) toScreen(p mgl32.Vec4) screenVertex {
	w, h := r.surface.Size()
	inv := 1 / p.W()
	return screenVertex{
		x:    (p.X()*inv + 1) / 2 * float32(w),
		y:    (1 - p.Y()*inv) / 2 * float32(h),
		z:    p.Z() * inv,
		invW: inv,
	}
}

func (r *Renderer) drawMesh(vp mgl32.Mat4, m *Mesh, st *Stats) {
	if m == nil || m.Solid == nil || m.Material == nil {
		return
	}
	mvp := vp.Mul4(m.Model)
	prog := m.Material.Program
	sol := m.Solid
	end := min(m.Range.End(), sol.VertexCount())
	for i := max(m.Range.Start, 0); i+2 < end; i += 3 {
		var tri [3]clipVertex
		for k := range 3 {
			pos, v := prog.Vertex(shader.Attributes{
				Position: sol.Positions[i+k],
				Normal:   sol.Normals[i+k],
				UV:       sol.UVs[i+k],
			}, mvp)
			tri[k] = clipVertex{pos: pos, v: v}
		}
		poly := clipNear(tri[:])
		for j := 1; j+1 < len(poly); j++ {
			st.Triangles++
			st.Fragments += r.rasterize(poly[0], poly[j], poly[j+1], m.Material)
		}
	}
}

func edge(a, b screenVertex, px, py float32) float32 {
	return (b.x-a.x)*(py-a.y) - (b.y-a.y)*(px-a.x)
}

// rasterize fills one clipped triangle, sampling at pixel centers with
// perspective-correct varyings, and returns the number of fragments written.
func (r *Renderer) rasterize(a, b, c clipVertex, mat *shader.Material) int {
	if a.pos.W() <= 1e-6 || b.pos.W() <= 1e-6 || c.pos.W() <= 1e-6 {
		return 0
	}
	sa, sb, sc := r.toScreen(a.pos), r.toScreen(b.pos), r.toScreen(c.pos)
	area := edge(sa, sb, sc.x, sc.y)
	if area == 0 {
		return 0
	}
	// counter-clockwise in NDC is clockwise once y points down
	if !mat.DoubleSided && area > 0 {
		return 0
	}

	w, h := r.surface.Size()
	x0 := max(int(math32.Floor(min(sa.x, sb.x, sc.x))), 0)
	x1 := min(int(math32.Ceil(max(sa.x, sb.x, sc.x))), w-1)
	y0 := max(int(math32.Floor(min(sa.y, sb.y, sc.y))), 0)
	y1 := min(int(math32.Ceil(max(sa.y, sb.y, sc.y))), h-1)

	vs := [3]shader.Varyings{a.v, b.v, c.v}
	u := mat.Uniforms
	n := 0
	for py := y0; py <= y1; py++ {
		fy := float32(py) + 0.5
		for px := x0; px <= x1; px++ {
			fx := float32(px) + 0.5
			w0 := edge(sb, sc, fx, fy) / area
			w1 := edge(sc, sa, fx, fy) / area
			w2 := edge(sa, sb, fx, fy) / area
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			z := w0*sa.z + w1*sb.z + w2*sc.z
			if z < -1 || z > 1 {
				continue
			}
			p0, p1, p2 := w0*sa.invW, w1*sb.invW, w2*sc.invW
			sum := p0 + p1 + p2
			if sum == 0 {
				continue
			}
			frag := mat.Program.Fragment(shader.Mix(vs, [3]float32{p0 / sum, p1 / sum, p2 / sum}), u)
			col := colorful.Color{R: float64(frag.R), G: float64(frag.G), B: float64(frag.B)}
			if mat.Transparent {
				if r.surface.blend(px, py, z, col, frag.A, mat.DepthWrite) {
					n++
				}
				continue
			}
			if r.surface.plot(px, py, z, col) {
				n++
			}
		}
	}
	return n
}

// drawLine clips l to the near plane and the viewport, then walks it with
// Bresenham, interpolating depth along the way.
func (r *Renderer) drawLine(vp mgl32.Mat4, l Line) bool {
	a := vp.Mul4x1(l.From.Vec4(1))
	b := vp.Mul4x1(l.To.Vec4(1))
	da, db := nearDist(a), nearDist(b)
	if da < 0 && db < 0 {
		return false
	}
	if da < 0 {
		a = lerp4(a, b, da/(da-db))
	} else if db < 0 {
		b = lerp4(b, a, db/(db-da))
	}
	if a.W() <= 1e-6 || b.W() <= 1e-6 {
		return false
	}
	sa, sb := r.toScreen(a), r.toScreen(b)
	w, h := r.surface.Size()
	t0, t1, ok := clipRect(sa.x, sa.y, sb.x, sb.y, float32(w), float32(h))
	if !ok {
		return false
	}
	lerpS := func(t float32) screenVertex {
		return screenVertex{
			x: sa.x + (sb.x-sa.x)*t,
			y: sa.y + (sb.y-sa.y)*t,
			z: sa.z + (sb.z-sa.z)*t,
		}
	}
	p, q := lerpS(t0), lerpS(t1)

	x0, y0 := int(math32.Floor(p.x)), int(math32.Floor(p.y))
	x1, y1 := int(math32.Floor(q.x)), int(math32.Floor(q.y))
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	steps := max(dx, -dy)
	err := dx + dy
	drawn := false
	for i := 0; ; i++ {
		z := p.z
		if steps > 0 {
			z += (q.z - p.z) * float32(i) / float32(steps)
		}
		if z >= -1 && z <= 1 && r.surface.plot(x0, y0, z, l.Color) {
			drawn = true
		}
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
	return drawn
}

// clipRect is Liang-Barsky against [0, w) x [0, h); it returns the visible
// parameter interval of the segment.
func clipRect(x0, y0, x1, y1, w, h float32) (float32, float32, bool) {
	t0, t1 := float32(0), float32(1)
	dx, dy := x1-x0, y1-y0
	// keep endpoints strictly inside so floor() stays in range
	maxX, maxY := w-1e-3, h-1e-3
	clip := func(p, q float32) bool {
		if p == 0 {
			return q >= 0
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return false
			}
			t0 = max(t0, t)
		} else {
			if t < t0 {
				return false
			}
			t1 = min(t1, t)
		}
		return true
	}
	if clip(-dx, x0) && clip(dx, maxX-x0) && clip(-dy, y0) && clip(dy, maxY-y0) {
		return t0, t1, true
	}
	return 0, 0, false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
