package math3d

import "math"

// Rot2 is a unit complex number carrying a 2D rotation.
type Rot2 struct {
	Cos, Sin float64
}

// Rot2Identity returns the identity rotation.
func Rot2Identity() Rot2 {
	return Rot2{Cos: 1, Sin: 0}
}

// Rot2FromAngle builds a rotation from an angle in radians.
func Rot2FromAngle(angle float64) Rot2 {
	return Rot2{Cos: math.Cos(angle), Sin: math.Sin(angle)}
}

// Rot2Between builds the rotation that takes unit vector from to unit vector to.
func Rot2Between(from, to Vec2) Rot2 {
	return Rot2{Cos: from.Dot(to), Sin: from.Cross(to)}
}

// Angle returns the rotation angle in radians.
func (r Rot2) Angle() float64 {
	return math.Atan2(r.Sin, r.Cos)
}

// Normalized renormalizes the complex number to unit length, correcting
// floating point drift accumulated across many Stack calls.
func (r Rot2) Normalized() Rot2 {
	l := math.Hypot(r.Cos, r.Sin)
	if l == 0 {
		return Rot2Identity()
	}
	return Rot2{Cos: r.Cos / l, Sin: r.Sin / l}
}

// Inversed negates the imaginary part, yielding the inverse rotation.
func (r Rot2) Inversed() Rot2 {
	return Rot2{Cos: r.Cos, Sin: -r.Sin}
}

// Stack post-multiplies this rotation by other and renormalizes.
func (r Rot2) Stack(other Rot2) Rot2 {
	return Rot2{
		Cos: r.Cos*other.Cos - r.Sin*other.Sin,
		Sin: r.Cos*other.Sin + r.Sin*other.Cos,
	}.Normalized()
}

// Apply rotates v by this rotation.
func (r Rot2) Apply(v Vec2) Vec2 {
	return Vec2{
		X: v.X*r.Cos - v.Y*r.Sin,
		Y: v.X*r.Sin + v.Y*r.Cos,
	}
}

// ApplyInv unrotates v by this rotation.
func (r Rot2) ApplyInv(v Vec2) Vec2 {
	return r.Inversed().Apply(v)
}

// ToMat returns the equivalent 2x2 rotation matrix, row-major as [a,b,c,d]
// for [[a,b],[c,d]].
func (r Rot2) ToMat() [4]float64 {
	return [4]float64{r.Cos, -r.Sin, r.Sin, r.Cos}
}
