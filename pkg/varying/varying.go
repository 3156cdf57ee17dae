// Package varying defines the interpolable per-vertex attribute trait and
// the fragment records the rasterizer core passes between pipeline stages.
package varying

import (
	"math"

	"github.com/mbrt/rasterkit/pkg/math3d"
)

// Varying is satisfied by any user attribute type that can be added to
// another instance of itself and scaled by a float. The core only ever
// composes these two operations; it never inspects attribute fields.
//
// The self-referential type parameter (T must implement Varying[T]) is the
// idiomatic Go stand-in for the distilled spec's "any user type T
// satisfying T+T->T, T*Float->T" contract, since Go has no operator
// overloading.
type Varying[T any] interface {
	Add(T) T
	Scale(math3d.Float) T
}

// Empty is the empty-attribute tag for primitives carrying no per-vertex
// varying data.
type Empty struct{}

// Add implements Varying[Empty].
func (Empty) Add(Empty) Empty { return Empty{} }

// Scale implements Varying[Empty].
func (Empty) Scale(math3d.Float) Empty { return Empty{} }

// Fragment is a vertex-shader output in clip space, before the perspective
// divide.
type Fragment[V Varying[V]] struct {
	Pos   math3d.Vec4
	Attrs V
}

// Lerp linearly interpolates two clip-space fragments by t. Used by the
// clipper, where interpolation must stay linear in t until after the divide.
func (f Fragment[V]) Lerp(other Fragment[V], t math3d.Float) Fragment[V] {
	return Fragment[V]{
		Pos:   f.Pos.Lerp(other.Pos, t),
		Attrs: f.Attrs.Scale(1 - t).Add(other.Attrs.Scale(t)),
	}
}

// ProjectedFragment is a fragment after the perspective divide: pos is in
// NDC/screen/window space (whichever stage produced it), depth is z/w, and
// ZInv is 1/w.
type ProjectedFragment[V Varying[V]] struct {
	Pos   math3d.Vec2
	Depth math3d.Float
	ZInv  math3d.Float
	Attrs V
}

// Project converts a clip-space Fragment into a ProjectedFragment via the
// perspective divide. w must be strictly positive (checked by the caller via
// the frustum test before this is ever invoked).
func Project[V Varying[V]](f Fragment[V]) ProjectedFragment[V] {
	w := f.Pos.W
	zInv := 1 / w
	return ProjectedFragment[V]{
		Pos:   math3d.Vec2{X: f.Pos.X * zInv, Y: f.Pos.Y * zInv},
		Depth: f.Pos.Z * zInv,
		ZInv:  zInv,
		Attrs: f.Attrs,
	}
}

// Lerp interpolates two already-projected fragments at screen-space
// parameter t. Pos, Depth and ZInv vary linearly in t; attributes are
// interpolated perspective-correctly, at the parameter PerspectiveCorrectedT
// derives from the endpoints' ZInv.
func (f ProjectedFragment[V]) Lerp(other ProjectedFragment[V], t math3d.Float) ProjectedFragment[V] {
	at := PerspectiveCorrectedT(f.ZInv, other.ZInv, t)
	return ProjectedFragment[V]{
		Pos:   f.Pos.Lerp(other.Pos, t),
		Depth: math3d.LerpScalar(f.Depth, other.Depth, t),
		ZInv:  math3d.LerpScalar(f.ZInv, other.ZInv, t),
		Attrs: f.Attrs.Scale(1 - at).Add(other.Attrs.Scale(at)),
	}
}

// PerspectiveCorrectedT converts a screen-space-linear parameter t0 (where
// the interpolated point would fall if attributes varied linearly in
// screen space) into the parameter that instead varies linearly in clip
// space, using the endpoints' ZInv. This is the standard "t -> t'"
// correction applied before clipping against screen planes, whose surviving
// endpoints already carry finite ZInv.
func PerspectiveCorrectedT(zInv0, zInv1, t0 math3d.Float) math3d.Float {
	denom := zInv0 + (zInv1-zInv0)*t0
	if denom == 0 {
		return t0
	}
	return (zInv1 * t0) / denom
}

// Barycentric interpolates three projected fragments' attributes at
// barycentric weights w0,w1,w2 (which must sum to 1). With perspectiveCorrect
// set, the weights are scaled by each fragment's ZInv and renormalized; plain
// interpolation is used when the flag is off or the ZInv-weighted sum is zero
// or not finite.
func Barycentric[V Varying[V]](f0, f1, f2 ProjectedFragment[V], w0, w1, w2 math3d.Float, perspectiveCorrect bool) V {
	if !perspectiveCorrect {
		return f0.Attrs.Scale(w0).Add(f1.Attrs.Scale(w1)).Add(f2.Attrs.Scale(w2))
	}
	z0, z1, z2 := w0*f0.ZInv, w1*f1.ZInv, w2*f2.ZInv
	sum := z0 + z1 + z2
	if sum == 0 || math.IsInf(sum, 0) || math.IsNaN(sum) {
		return f0.Attrs.Scale(w0).Add(f1.Attrs.Scale(w1)).Add(f2.Attrs.Scale(w2))
	}
	inv := 1 / sum
	return f0.Attrs.Scale(z0 * inv).Add(f1.Attrs.Scale(z1 * inv)).Add(f2.Attrs.Scale(z2 * inv))
}

// BarycentricScalar is Barycentric specialized for plain floats (used for
// depth and ZInv themselves, which are always interpolated linearly).
func BarycentricScalar(v0, v1, v2, w0, w1, w2 math3d.Float) math3d.Float {
	return v0*w0 + v1*w1 + v2*w2
}
