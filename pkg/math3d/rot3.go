package math3d

import "math"

// Rot3 is a unit quaternion carrying a 3D rotation, stored as a scalar part
// W and vector part (X,Y,Z).
type Rot3 struct {
	X, Y, Z, W float64
}

// Rot3Identity returns the identity rotation.
func Rot3Identity() Rot3 {
	return Rot3{0, 0, 0, 1}
}

// Rot3FromAxisAngle builds a rotation from a (not necessarily normalized)
// axis and an angle in radians.
func Rot3FromAxisAngle(axis Vec3, angle float64) Rot3 {
	axis = axis.Normalize()
	half := angle / 2
	s := math.Sin(half)
	return Rot3{axis.X * s, axis.Y * s, axis.Z * s, math.Cos(half)}
}

// Rot3Between builds the shortest-arc rotation taking unit vector from to
// unit vector to.
func Rot3Between(from, to Vec3) Rot3 {
	d := from.Dot(to)
	if d < -1+1e-9 {
		// Antiparallel: pick any orthogonal axis.
		axis := Vec3{1, 0, 0}.Cross(from)
		if axis.LenSq() < 1e-12 {
			axis = Vec3{0, 1, 0}.Cross(from)
		}
		return Rot3FromAxisAngle(axis.Normalize(), math.Pi)
	}
	axis := from.Cross(to)
	w := d + 1
	return Rot3{axis.X, axis.Y, axis.Z, w}.Normalized()
}

// Normalized renormalizes the quaternion, correcting accumulated drift.
func (r Rot3) Normalized() Rot3 {
	l := math.Sqrt(r.X*r.X + r.Y*r.Y + r.Z*r.Z + r.W*r.W)
	if l == 0 {
		return Rot3Identity()
	}
	return Rot3{r.X / l, r.Y / l, r.Z / l, r.W / l}
}

// Inversed negates the vector part, yielding the conjugate/inverse rotation.
func (r Rot3) Inversed() Rot3 {
	return Rot3{-r.X, -r.Y, -r.Z, r.W}
}

// Stack post-multiplies this rotation by other and renormalizes.
func (r Rot3) Stack(other Rot3) Rot3 {
	return Rot3{
		X: r.W*other.X + r.X*other.W + r.Y*other.Z - r.Z*other.Y,
		Y: r.W*other.Y - r.X*other.Z + r.Y*other.W + r.Z*other.X,
		Z: r.W*other.Z + r.X*other.Y - r.Y*other.X + r.Z*other.W,
		W: r.W*other.W - r.X*other.X - r.Y*other.Y - r.Z*other.Z,
	}.Normalized()
}

// Apply rotates v by this rotation.
func (r Rot3) Apply(v Vec3) Vec3 {
	qv := Vec3{r.X, r.Y, r.Z}
	t := qv.Cross(v).Scale(2)
	return v.Add(t.Scale(r.W)).Add(qv.Cross(t))
}

// ApplyInv unrotates v by this rotation.
func (r Rot3) ApplyInv(v Vec3) Vec3 {
	return r.Inversed().Apply(v)
}

// ToMat returns the equivalent rotation matrix.
func (r Rot3) ToMat() Mat4 {
	x, y, z, w := r.X, r.Y, r.Z, r.W
	x2, y2, z2 := x+x, y+y, z+z
	xx, yy, zz := x*x2, y*y2, z*z2
	xy, xz, yz := x*y2, x*z2, y*z2
	wx, wy, wz := w*x2, w*y2, w*z2

	return Mat4{
		1 - (yy + zz), xy + wz, xz - wy, 0,
		xy - wz, 1 - (xx + zz), yz + wx, 0,
		xz + wy, yz - wx, 1 - (xx + yy), 0,
		0, 0, 0, 1,
	}
}
