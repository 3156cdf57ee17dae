package math3d

// Transform3D carries a 4x4 matrix and its inverse together so every
// primitive operation appends to both sides at once, never requiring a
// numerical re-inversion after composition.
type Transform3D struct {
	Mat    Mat4
	MatInv Mat4
}

// Identity3D returns the identity transform.
func Identity3D() Transform3D {
	return Transform3D{Mat: Identity(), MatInv: Identity()}
}

// Translate appends a translation by v.
func (t Transform3D) Translate(v Vec3) Transform3D {
	return Transform3D{
		Mat:    t.Mat.Mul(Translate(v)),
		MatInv: Translate(v.Negate()).Mul(t.MatInv),
	}
}

// Scale appends a non-uniform scale by v. v must have no zero components.
func (t Transform3D) Scale(v Vec3) Transform3D {
	inv := V3(1/v.X, 1/v.Y, 1/v.Z)
	return Transform3D{
		Mat:    t.Mat.Mul(Scale(v)),
		MatInv: Scale(inv).Mul(t.MatInv),
	}
}

// Rotate appends a rotation around axis by angle radians.
func (t Transform3D) Rotate(axis Vec3, angle float64) Transform3D {
	fwd := Rotate(axis, angle)
	inv := Rotate(axis, -angle)
	return Transform3D{
		Mat:    t.Mat.Mul(fwd),
		MatInv: inv.Mul(t.MatInv),
	}
}

// Stack post-multiplies this transform by other, carrying both inverses.
func (t Transform3D) Stack(other Transform3D) Transform3D {
	return Transform3D{
		Mat:    t.Mat.Mul(other.Mat),
		MatInv: other.MatInv.Mul(t.MatInv),
	}
}

// Inversed returns a new transform with the matrix/inverse pair swapped.
func (t Transform3D) Inversed() Transform3D {
	return Transform3D{Mat: t.MatInv, MatInv: t.Mat}
}

// ApplyPoint transforms a point (w=1).
func (t Transform3D) ApplyPoint(v Vec3) Vec3 {
	return t.Mat.MulVec3(v)
}

// ApplyDir transforms a direction (w=0).
func (t Transform3D) ApplyDir(v Vec3) Vec3 {
	return t.Mat.MulVec3Dir(v)
}

// ApplyVec4 transforms a homogeneous vector.
func (t Transform3D) ApplyVec4(v Vec4) Vec4 {
	return t.Mat.MulVec4(v)
}
