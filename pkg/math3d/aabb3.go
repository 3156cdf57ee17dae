package math3d

// AABB3 is an axis-aligned bounding box stored as centre + half-extent.
type AABB3 struct {
	Centre     Vec3
	HalfExtent Vec3
}

// AABB3FromMinMax builds an AABB3 from a min/max pair, clamping the
// resulting size to be non-negative.
func AABB3FromMinMax(min, max Vec3) AABB3 {
	max = max.Max(min)
	return AABB3{
		Centre:     min.Add(max).Scale(0.5),
		HalfExtent: max.Sub(min).Scale(0.5),
	}
}

// Min returns the minimum corner.
func (b AABB3) Min() Vec3 { return b.Centre.Sub(b.HalfExtent) }

// Max returns the maximum corner.
func (b AABB3) Max() Vec3 { return b.Centre.Add(b.HalfExtent) }

// Contains reports whether the point lies within the AABB, inclusive.
func (b AABB3) Contains(p Vec3) bool {
	d := p.Sub(b.Centre).Abs()
	return d.X <= b.HalfExtent.X && d.Y <= b.HalfExtent.Y && d.Z <= b.HalfExtent.Z
}

// ContainsAABB reports whether other lies entirely within b.
func (b AABB3) ContainsAABB(other AABB3) bool {
	return b.Contains(other.Min()) && b.Contains(other.Max())
}

// Union returns the smallest AABB containing both b and other.
func (b AABB3) Union(other AABB3) AABB3 {
	return AABB3FromMinMax(b.Min().Min(other.Min()), b.Max().Max(other.Max()))
}

// ToTransform returns the Transform3D mapping the unit box [-1,1]^3 onto
// this AABB.
func (b AABB3) ToTransform() Transform3D {
	return Identity3D().Translate(b.Centre).Scale(b.HalfExtent)
}

// Corners returns the 8 corner points of the box.
func (b AABB3) Corners() [8]Vec3 {
	mn, mx := b.Min(), b.Max()
	return [8]Vec3{
		{X: mn.X, Y: mn.Y, Z: mn.Z},
		{X: mx.X, Y: mn.Y, Z: mn.Z},
		{X: mn.X, Y: mx.Y, Z: mn.Z},
		{X: mx.X, Y: mx.Y, Z: mn.Z},
		{X: mn.X, Y: mn.Y, Z: mx.Z},
		{X: mx.X, Y: mn.Y, Z: mx.Z},
		{X: mn.X, Y: mx.Y, Z: mx.Z},
		{X: mx.X, Y: mx.Y, Z: mx.Z},
	}
}
