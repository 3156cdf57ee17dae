package math3d

import "math"

// Affine2 is a 2D affine map: p -> A*p + T, with A stored row-major
// (a,b / c,d).
type Affine2 struct {
	A, B, C, D float64
	Tx, Ty     float64
}

// Identity2 returns the identity affine map.
func Identity2() Affine2 {
	return Affine2{A: 1, D: 1}
}

// Apply maps a point through the affine transform.
func (m Affine2) Apply(v Vec2) Vec2 {
	return Vec2{
		X: m.A*v.X + m.B*v.Y + m.Tx,
		Y: m.C*v.X + m.D*v.Y + m.Ty,
	}
}

// ApplyDir maps a direction (ignores translation).
func (m Affine2) ApplyDir(v Vec2) Vec2 {
	return Vec2{X: m.A*v.X + m.B*v.Y, Y: m.C*v.X + m.D*v.Y}
}

// Mul composes two affine maps: (m ∘ other)(p) = m(other(p)).
func (m Affine2) Mul(other Affine2) Affine2 {
	return Affine2{
		A: m.A*other.A + m.B*other.C,
		B: m.A*other.B + m.B*other.D,
		C: m.C*other.A + m.D*other.C,
		D: m.C*other.B + m.D*other.D,
		Tx: m.A*other.Tx + m.B*other.Ty + m.Tx,
		Ty: m.C*other.Tx + m.D*other.Ty + m.Ty,
	}
}

// Inverse computes the numeric inverse of the affine map, used only to seed
// Transform2D; once seeded, Transform2D never re-derives an inverse.
func (m Affine2) Inverse() Affine2 {
	det := m.A*m.D - m.B*m.C
	if det == 0 {
		return Identity2()
	}
	invDet := 1 / det
	ia := m.D * invDet
	ib := -m.B * invDet
	ic := -m.C * invDet
	id := m.A * invDet
	return Affine2{
		A: ia, B: ib, C: ic, D: id,
		Tx: -(ia*m.Tx + ib*m.Ty),
		Ty: -(ic*m.Tx + id*m.Ty),
	}
}

// Transform2D carries an affine map and its inverse together so every
// primitive operation (translate, scale, rotate, reflect, shear) appends to
// both sides simultaneously.
type Transform2D struct {
	Mat    Affine2
	MatInv Affine2
}

// Identity2D returns the identity transform.
func Identity2D() Transform2D {
	return Transform2D{Mat: Identity2(), MatInv: Identity2()}
}

// Translate appends a translation by v.
func (t Transform2D) Translate(v Vec2) Transform2D {
	fwd := Affine2{A: 1, D: 1, Tx: v.X, Ty: v.Y}
	inv := Affine2{A: 1, D: 1, Tx: -v.X, Ty: -v.Y}
	return Transform2D{Mat: t.Mat.Mul(fwd), MatInv: inv.Mul(t.MatInv)}
}

// Scale appends a non-uniform scale by v. v must have no zero components.
func (t Transform2D) Scale(v Vec2) Transform2D {
	fwd := Affine2{A: v.X, D: v.Y}
	inv := Affine2{A: 1 / v.X, D: 1 / v.Y}
	return Transform2D{Mat: t.Mat.Mul(fwd), MatInv: inv.Mul(t.MatInv)}
}

// Rotate appends a rotation by angle radians.
func (t Transform2D) Rotate(angle float64) Transform2D {
	c, s := math.Cos(angle), math.Sin(angle)
	fwd := Affine2{A: c, B: -s, C: s, D: c}
	inv := Affine2{A: c, B: s, C: -s, D: c}
	return Transform2D{Mat: t.Mat.Mul(fwd), MatInv: inv.Mul(t.MatInv)}
}

// ReflectX appends a reflection across the X axis.
func (t Transform2D) ReflectX() Transform2D {
	fwd := Affine2{A: 1, D: -1}
	return Transform2D{Mat: t.Mat.Mul(fwd), MatInv: fwd.Mul(t.MatInv)}
}

// ReflectY appends a reflection across the Y axis.
func (t Transform2D) ReflectY() Transform2D {
	fwd := Affine2{A: -1, D: 1}
	return Transform2D{Mat: t.Mat.Mul(fwd), MatInv: fwd.Mul(t.MatInv)}
}

// Shear appends a shear with the given X-per-Y and Y-per-X factors.
func (t Transform2D) Shear(xy, yx float64) Transform2D {
	fwd := Affine2{A: 1, B: xy, C: yx, D: 1}
	return Transform2D{Mat: t.Mat.Mul(fwd), MatInv: fwd.Inverse().Mul(t.MatInv)}
}

// Stack post-composes this transform with other, carrying both inverses.
func (t Transform2D) Stack(other Transform2D) Transform2D {
	return Transform2D{
		Mat:    t.Mat.Mul(other.Mat),
		MatInv: other.MatInv.Mul(t.MatInv),
	}
}

// Inversed returns a new transform with the matrix/inverse pair swapped.
func (t Transform2D) Inversed() Transform2D {
	return Transform2D{Mat: t.MatInv, MatInv: t.Mat}
}

// Apply maps a point forward through the transform.
func (t Transform2D) Apply(v Vec2) Vec2 {
	return t.Mat.Apply(v)
}

// ApplyInv maps a point through the inverse transform.
func (t Transform2D) ApplyInv(v Vec2) Vec2 {
	return t.MatInv.Apply(v)
}
