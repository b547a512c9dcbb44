package extrude

import (
	"slices"

	"flowribbon/internal/geo"
)

const epsilon = 1e-12

// triangulate ear-clips a counter-clockwise polygon and returns triangles as
// index triples into pts. Remaining vertices form a ring of prev/next links;
// only reflex vertices can lie inside a candidate ear, so only those are
// tested. When a full lap finds no ear (self-intersecting input) it stops and
// returns what it has.
func triangulate(pts []geo.Point) [][3]int {
	n := len(pts)
	if n < 3 {
		return nil
	}
	r := newRing(pts)
	tris := make([][3]int, 0, n-2)

	cur, stall := 0, 0
	for r.size > 3 && stall < r.size {
		prev, next := r.prev[cur], r.next[cur]
		if !r.isEar(prev, cur, next) {
			cur = next
			stall++
			continue
		}
		tris = append(tris, [3]int{prev, cur, next})
		r.remove(cur)
		cur, stall = next, 0
	}
	if r.size == 3 {
		a := cur
		b, c := r.next[a], r.next[r.next[a]]
		if cross(pts[a], pts[b], pts[c]) > epsilon {
			tris = append(tris, [3]int{a, b, c})
		}
	}
	return tris
}

type ring struct {
	pts        []geo.Point
	prev, next []int
	isReflex   []bool
	reflex     []int
	size       int
}

func newRing(pts []geo.Point) *ring {
	n := len(pts)
	r := &ring{
		pts:      pts,
		prev:     make([]int, n),
		next:     make([]int, n),
		isReflex: make([]bool, n),
		size:     n,
	}
	for i := range n {
		r.prev[i] = (i + n - 1) % n
		r.next[i] = (i + 1) % n
	}
	for i := range n {
		if r.convexity(i) <= epsilon {
			r.isReflex[i] = true
			r.reflex = append(r.reflex, i)
		}
	}
	return r
}

func (r *ring) convexity(i int) float64 {
	return cross(r.pts[r.prev[i]], r.pts[i], r.pts[r.next[i]])
}

// remove unlinks i and reclassifies its two neighbours.
func (r *ring) remove(i int) {
	p, n := r.prev[i], r.next[i]
	r.next[p] = n
	r.prev[n] = p
	r.size--
	if r.isReflex[i] {
		r.isReflex[i] = false
		r.reflex = slices.DeleteFunc(r.reflex, func(v int) bool { return v == i })
	}
	r.classify(p)
	r.classify(n)
}

func (r *ring) classify(i int) {
	reflex := r.convexity(i) <= epsilon
	if reflex == r.isReflex[i] {
		return
	}
	r.isReflex[i] = reflex
	if reflex {
		r.reflex = append(r.reflex, i)
		return
	}
	r.reflex = slices.DeleteFunc(r.reflex, func(v int) bool { return v == i })
}

func (r *ring) isEar(prev, cur, next int) bool {
	if r.isReflex[cur] {
		return false
	}
	a, b, c := r.pts[prev], r.pts[cur], r.pts[next]
	if cross(a, b, c) <= epsilon {
		return false
	}
	minX, maxX := min(a.X, b.X, c.X), max(a.X, b.X, c.X)
	minY, maxY := min(a.Y, b.Y, c.Y), max(a.Y, b.Y, c.Y)
	for _, i := range r.reflex {
		if i == prev || i == next {
			continue
		}
		p := r.pts[i]
		if p.X < minX || p.X > maxX || p.Y < minY || p.Y > maxY {
			continue
		}
		if p.Equal(a) || p.Equal(b) || p.Equal(c) {
			continue
		}
		if inTriangle(p, a, b, c) {
			return false
		}
	}
	return true
}

// cross is twice the signed area of triangle abc.
func cross(a, b, c geo.Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

func inTriangle(p, a, b, c geo.Point) bool {
	return cross(a, b, p) >= 0 && cross(b, c, p) >= 0 && cross(c, a, p) >= 0
}
