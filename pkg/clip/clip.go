// Package clip implements point/line/triangle admission tests and
// clipping against the homogeneous-coordinate view frustum and the 2D
// screen AABB.
//
// The near/far plane test follows the reverse-Z convention fixed by the
// design notes: a point is in-frustum when 0 <= z <= w (near=0, far=w,
// smaller depth closer), not the OpenGL-style [-w,+w] convention some
// grounding material uses. Every frustum test in this package (point,
// line, polygon) applies that convention consistently.
package clip

import (
	"math"

	"github.com/mbrt/rasterkit/pkg/math3d"
	"github.com/mbrt/rasterkit/pkg/varying"
)

// PointInFrustum reports whether p is strictly admitted by the homogeneous
// frustum: w>0 and -w<=x<=w, -w<=y<=w, 0<=z<=w. The exact zero vector is
// degenerate and rejected.
func PointInFrustum(p math3d.Vec4) bool {
	if p == (math3d.Vec4{}) {
		return false
	}
	if p.W <= 0 {
		return false
	}
	w := p.W
	return -w <= p.X && p.X <= w &&
		-w <= p.Y && p.Y <= w &&
		0 <= p.Z && p.Z <= w
}

// PointInScreen reports whether p lies within the fixed [-1,+1]^2 screen
// AABB.
func PointInScreen(p math3d.Vec2) bool {
	return -1 <= p.X && p.X <= 1 && -1 <= p.Y && p.Y <= 1
}

// frustumPlane is a linear functional over clip space; d(p) >= 0 means p is
// on the inside half-space of this plane.
type frustumPlane struct {
	d func(p math3d.Vec4) math3d.Float
}

// frustumPlanes lists the six clip-space planes in a fixed order. Near is
// z>=0, far is w-z>=0, matching the reverse-Z convention.
func frustumPlanes() [6]frustumPlane {
	return [6]frustumPlane{
		{func(p math3d.Vec4) math3d.Float { return p.W - p.X }}, // x <= w
		{func(p math3d.Vec4) math3d.Float { return p.W + p.X }}, // x >= -w
		{func(p math3d.Vec4) math3d.Float { return p.W - p.Y }}, // y <= w
		{func(p math3d.Vec4) math3d.Float { return p.W + p.Y }}, // y >= -w
		{func(p math3d.Vec4) math3d.Float { return p.Z }},       // z >= 0 (near)
		{func(p math3d.Vec4) math3d.Float { return p.W - p.Z }}, // z <= w (far)
	}
}

type screenPlane struct {
	d func(p math3d.Vec2) math3d.Float
}

func screenPlanes() [4]screenPlane {
	return [4]screenPlane{
		{func(p math3d.Vec2) math3d.Float { return 1 - p.X }},
		{func(p math3d.Vec2) math3d.Float { return 1 + p.X }},
		{func(p math3d.Vec2) math3d.Float { return 1 - p.Y }},
		{func(p math3d.Vec2) math3d.Float { return 1 + p.Y }},
	}
}

// LineResult is the (t0,t1) trim parameters returned by the Liang-Barsky
// clippers below, or Ok=false when the whole segment is rejected.
type LineResult struct {
	T0, T1 math3d.Float
	Ok     bool
}

// liangBarsky runs the parametric clip for a single plane's (q,p) pair, per
// §4.1: q is the signed distance from the tail to the plane, p is
// -(head-tail).n with n flipped to face the plane. Mutates and returns
// (t0,t1,ok).
func liangBarsky(q, p, t0, t1 math3d.Float) (math3d.Float, math3d.Float, bool) {
	const eps = 1e-12
	switch {
	case math.Abs(p) < eps:
		if q < 0 {
			return t0, t1, false
		}
		return t0, t1, true
	case p < 0:
		t := q / p
		if t > t0 {
			t0 = t
		}
		if t1 < q/p {
			return t0, t1, false
		}
	default: // p > 0
		t := q / p
		if t < t1 {
			t1 = t
		}
		if t0 > q/p {
			return t0, t1, false
		}
	}
	if t0 > t1 {
		return t0, t1, false
	}
	return t0, t1, true
}

// ClipLineFrustum clips a homogeneous line segment p0->p1 against the six
// frustum planes, returning the surviving (t0,t1) trim parameters.
func ClipLineFrustum(p0, p1 math3d.Vec4) LineResult {
	if p0.W < 0 && p1.W < 0 {
		return LineResult{Ok: false}
	}
	t0, t1 := math3d.Float(0), math3d.Float(1)
	for _, pl := range frustumPlanes() {
		q := pl.d(p0)
		// p = -(d(head) - d(tail)) since d is itself the plane's signed
		// distance functional: p = -(d(p1)-d(p0)).
		p := -(pl.d(p1) - pl.d(p0))
		var ok bool
		t0, t1, ok = liangBarsky(q, p, t0, t1)
		if !ok {
			return LineResult{Ok: false}
		}
	}
	return LineResult{T0: t0, T1: t1, Ok: true}
}

// ClipLineScreen clips a 2D line segment p0->p1 against the [-1,+1]^2
// screen AABB.
func ClipLineScreen(p0, p1 math3d.Vec2) LineResult {
	t0, t1 := math3d.Float(0), math3d.Float(1)
	for _, pl := range screenPlanes() {
		q := pl.d(p0)
		p := -(pl.d(p1) - pl.d(p0))
		var ok bool
		t0, t1, ok = liangBarsky(q, p, t0, t1)
		if !ok {
			return LineResult{Ok: false}
		}
	}
	return LineResult{T0: t0, T1: t1, Ok: true}
}

// clipAgainstPlane runs one pass of the triangle-fan clip algorithm (§4.1
// steps 1-5) for a single plane over the current working set of triangles,
// returning the next working set. dist is the plane's signed-distance
// functional (>=0 inside); lerp interpolates a vertex between two others by
// parameter t.
func clipAgainstPlane[F any](tris [][3]F, dist func(F) math3d.Float, lerp func(a, b F, t math3d.Float) F) [][3]F {
	out := make([][3]F, 0, len(tris))
	for _, tri := range tris {
		d := [3]math3d.Float{dist(tri[0]), dist(tri[1]), dist(tri[2])}
		inside := 0
		for _, v := range d {
			if v >= 0 {
				inside++
			}
		}
		switch inside {
		case 0:
			continue
		case 3:
			out = append(out, tri)
		case 1:
			// Rotate so the inside vertex is v0.
			rot := rotateInsideFirst(tri, d)
			v, dd := rot.v, rot.d
			t01 := dd[0] / (dd[0] - dd[1])
			t02 := dd[0] / (dd[0] - dd[2])
			out = append(out, [3]F{v[0], lerp(v[0], v[1], t01), lerp(v[0], v[2], t02)})
		case 2:
			// Rotate so the outside vertex is last (v2).
			rot := rotateOutsideLast(tri, d)
			v, dd := rot.v, rot.d
			t02 := dd[0] / (dd[0] - dd[2])
			t12 := dd[1] / (dd[1] - dd[2])
			a2 := lerp(v[0], v[2], t02)
			inserted := [3]F{v[1], lerp(v[1], v[2], t12), a2}
			replaced := [3]F{v[0], v[1], a2}
			out = append(out, inserted, replaced)
		}
	}
	return out
}

type rotated[F any] struct {
	v [3]F
	d [3]math3d.Float
}

// rotateInsideFirst cyclically rotates the triple so that an inside vertex
// (d>=0) ends up at index 0, preserving v0->v1->v2 winding order.
func rotateInsideFirst[F any](tri [3]F, d [3]math3d.Float) rotated[F] {
	for i := 0; i < 3; i++ {
		if d[i] >= 0 {
			return rotated[F]{
				v: [3]F{tri[i], tri[(i+1)%3], tri[(i+2)%3]},
				d: [3]math3d.Float{d[i], d[(i+1)%3], d[(i+2)%3]},
			}
		}
	}
	return rotated[F]{v: tri, d: d}
}

// rotateOutsideLast cyclically rotates the triple so that the outside
// vertex (d<0) ends up at index 2, preserving winding order.
func rotateOutsideLast[F any](tri [3]F, d [3]math3d.Float) rotated[F] {
	for i := 0; i < 3; i++ {
		if d[i] < 0 {
			// i must land at index 2; rotate by (i+1) so i -> 2.
			j := (i + 1) % 3
			k := (i + 2) % 3
			return rotated[F]{
				v: [3]F{tri[j], tri[k], tri[i]},
				d: [3]math3d.Float{d[j], d[k], d[i]},
			}
		}
	}
	return rotated[F]{v: tri, d: d}
}

// ClipTriangleFrustum clips a clip-space triangle against the six frustum
// planes in order, splitting into zero or more output triangles. Attribute
// interpolation stays linear in t, per §4.1 (perspective correction is
// deferred until after the divide).
func ClipTriangleFrustum[V varying.Varying[V]](tri [3]varying.Fragment[V]) [][3]varying.Fragment[V] {
	tris := [][3]varying.Fragment[V]{tri}
	lerp := func(a, b varying.Fragment[V], t math3d.Float) varying.Fragment[V] {
		return a.Lerp(b, t)
	}
	for _, pl := range frustumPlanes() {
		dist := func(f varying.Fragment[V]) math3d.Float { return pl.d(f.Pos) }
		tris = clipAgainstPlane(tris, dist, lerp)
		if len(tris) == 0 {
			return tris
		}
	}
	return tris
}

// ClipTriangleScreen clips a post-divide triangle against the [-1,+1]^2
// screen AABB. Attributes are interpolated perspective-correctly via ZInv
// since the surviving endpoints already carry finite ZInv; positions,
// depth and ZInv remain linear in screen-space t since they are affine
// along the (already straight) screen-space edge.
func ClipTriangleScreen[V varying.Varying[V]](tri [3]varying.ProjectedFragment[V]) [][3]varying.ProjectedFragment[V] {
	tris := [][3]varying.ProjectedFragment[V]{tri}
	lerp := func(a, b varying.ProjectedFragment[V], t math3d.Float) varying.ProjectedFragment[V] {
		at := varying.PerspectiveCorrectedT(a.ZInv, b.ZInv, t)
		return varying.ProjectedFragment[V]{
			Pos:   a.Pos.Lerp(b.Pos, t),
			Depth: math3d.LerpScalar(a.Depth, b.Depth, t),
			ZInv:  math3d.LerpScalar(a.ZInv, b.ZInv, t),
			Attrs: a.Attrs.Scale(1 - at).Add(b.Attrs.Scale(at)),
		}
	}
	for _, pl := range screenPlanes() {
		dist := func(f varying.ProjectedFragment[V]) math3d.Float { return pl.d(f.Pos) }
		tris = clipAgainstPlane(tris, dist, lerp)
		if len(tris) == 0 {
			return tris
		}
	}
	return tris
}

// CullPoint reports whether a homogeneous point should be culled (i.e. is
// NOT admitted by the frustum). A thin, intention-revealing complement to
// PointInFrustum used at the point-draw call site.
func CullPoint(p math3d.Vec4) bool {
	return !PointInFrustum(p)
}
