package math3d

// AABB2 is an axis-aligned bounding box stored as centre + half-extent, per
// the spec's data model (rather than a min/max pair).
type AABB2 struct {
	Centre     Vec2
	HalfExtent Vec2
}

// AABB2FromMinMax builds an AABB2 from a min/max pair, clamping the
// resulting size to be non-negative.
func AABB2FromMinMax(min, max Vec2) AABB2 {
	max = max.Max(min)
	return AABB2{
		Centre:     min.Add(max).Scale(0.5),
		HalfExtent: max.Sub(min).Scale(0.5),
	}
}

// Min returns the minimum corner.
func (b AABB2) Min() Vec2 { return b.Centre.Sub(b.HalfExtent) }

// Max returns the maximum corner.
func (b AABB2) Max() Vec2 { return b.Centre.Add(b.HalfExtent) }

// Contains reports whether the point lies within the AABB, inclusive.
func (b AABB2) Contains(p Vec2) bool {
	d := p.Sub(b.Centre).Abs()
	return d.X <= b.HalfExtent.X && d.Y <= b.HalfExtent.Y
}

// ContainsAABB reports whether other lies entirely within b.
func (b AABB2) ContainsAABB(other AABB2) bool {
	return b.Contains(other.Min()) && b.Contains(other.Max())
}

// ToTransform returns the Transform2D mapping the unit box [-1,1]^2 onto
// this AABB.
func (b AABB2) ToTransform() Transform2D {
	return Identity2D().Translate(b.Centre).Scale(b.HalfExtent)
}

// ScreenAABB is the fixed [-1,+1]^2 screen bounds used by the clipper.
func ScreenAABB() AABB2 {
	return AABB2{Centre: Vec2{}, HalfExtent: Vec2{X: 1, Y: 1}}
}
