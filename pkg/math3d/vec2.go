package math3d

import "math"

// Vec2 represents a 2D vector or point.
type Vec2 struct {
	X, Y float64
}

// V2 creates a new Vec2.
func V2(x, y float64) Vec2 {
	return Vec2{x, y}
}

// Zero2 returns the zero vector.
func Zero2() Vec2 {
	return Vec2{}
}

// Add returns the vector sum a + b.
func (a Vec2) Add(b Vec2) Vec2 {
	return Vec2{a.X + b.X, a.Y + b.Y}
}

// Sub returns the vector difference a - b.
func (a Vec2) Sub(b Vec2) Vec2 {
	return Vec2{a.X - b.X, a.Y - b.Y}
}

// Mul returns the component-wise product a * b.
func (a Vec2) Mul(b Vec2) Vec2 {
	return Vec2{a.X * b.X, a.Y * b.Y}
}

// Scale returns the scalar product a * s.
func (a Vec2) Scale(s float64) Vec2 {
	return Vec2{a.X * s, a.Y * s}
}

// Dot returns the dot product a . b.
func (a Vec2) Dot(b Vec2) float64 {
	return a.X*b.X + a.Y*b.Y
}

// Cross returns the 2D "cross product" (scalar z-component of the 3D cross).
func (a Vec2) Cross(b Vec2) float64 {
	return a.X*b.Y - a.Y*b.X
}

// Len returns the magnitude of the vector.
func (a Vec2) Len() float64 {
	return math.Sqrt(a.X*a.X + a.Y*a.Y)
}

// LenSq returns the squared magnitude.
func (a Vec2) LenSq() float64 {
	return a.X*a.X + a.Y*a.Y
}

// Normalize returns the unit vector in the same direction.
func (a Vec2) Normalize() Vec2 {
	l := a.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{a.X / l, a.Y / l}
}

// Negate returns the negated vector.
func (a Vec2) Negate() Vec2 {
	return Vec2{-a.X, -a.Y}
}

// Lerp returns the linear interpolation between a and b by t.
func (a Vec2) Lerp(b Vec2, t float64) Vec2 {
	return Vec2{
		a.X + (b.X-a.X)*t,
		a.Y + (b.Y-a.Y)*t,
	}
}

// Min returns the component-wise minimum.
func (a Vec2) Min(b Vec2) Vec2 {
	return Vec2{math.Min(a.X, b.X), math.Min(a.Y, b.Y)}
}

// Max returns the component-wise maximum.
func (a Vec2) Max(b Vec2) Vec2 {
	return Vec2{math.Max(a.X, b.X), math.Max(a.Y, b.Y)}
}

// Clamp restricts each component to [lo, hi] component-wise.
func (a Vec2) Clamp(lo, hi Vec2) Vec2 {
	return Vec2{Clamp(a.X, lo.X, hi.X), Clamp(a.Y, lo.Y, hi.Y)}
}

// Abs returns the component-wise absolute value.
func (a Vec2) Abs() Vec2 {
	return Vec2{math.Abs(a.X), math.Abs(a.Y)}
}

// Floor returns the component-wise floor.
func (a Vec2) Floor() Vec2 {
	return Vec2{math.Floor(a.X), math.Floor(a.Y)}
}

// Ceil returns the component-wise ceiling.
func (a Vec2) Ceil() Vec2 {
	return Vec2{math.Ceil(a.X), math.Ceil(a.Y)}
}

// Round returns the component-wise round-half-away-from-zero.
func (a Vec2) Round() Vec2 {
	return Vec2{RoundHalfAwayFromZero(a.X), RoundHalfAwayFromZero(a.Y)}
}

// AlmostEqual reports approximate equality within ULP-ish tolerance.
func (a Vec2) AlmostEqual(b Vec2) bool {
	return AlmostEqual(a.X, b.X) && AlmostEqual(a.Y, b.Y)
}

// XY returns a copy (trivial swizzle, present for symmetry with Vec3/Vec4).
func (a Vec2) XY() Vec2 { return a }

// YX returns the components swapped.
func (a Vec2) YX() Vec2 { return Vec2{a.Y, a.X} }

// Vec3 promotes to a Vec3 with the given Z.
func (a Vec2) Vec3(z float64) Vec3 {
	return Vec3{a.X, a.Y, z}
}

// IVec2 is an integer 2D vector, used for window/pixel coordinates.
type IVec2 struct {
	X, Y Int
}

// IV2 creates a new IVec2.
func IV2(x, y Int) IVec2 {
	return IVec2{x, y}
}

// Vec2 converts to a floating-point Vec2.
func (p IVec2) Vec2() Vec2 {
	return Vec2{float64(p.X), float64(p.Y)}
}

// Add returns the component-wise sum.
func (p IVec2) Add(q IVec2) IVec2 {
	return IVec2{p.X + q.X, p.Y + q.Y}
}
