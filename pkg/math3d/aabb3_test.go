package math3d

import "testing"

func TestAABB3FromMinMax(t *testing.T) {
	b := AABB3FromMinMax(V3(-1, -2, -3), V3(4, 5, 6))
	if got := b.Min(); got != (Vec3{-1, -2, -3}) {
		t.Errorf("Min() = %v, want {-1 -2 -3}", got)
	}
	if got := b.Max(); got != (Vec3{4, 5, 6}) {
		t.Errorf("Max() = %v, want {4 5 6}", got)
	}
}

func TestAABB3Contains(t *testing.T) {
	b := AABB3FromMinMax(V3(-1, -1, -1), V3(1, 1, 1))
	if !b.Contains(V3(0, 0, 0)) {
		t.Error("Contains(origin) = false, want true")
	}
	if !b.Contains(V3(1, 1, 1)) {
		t.Error("Contains(corner) = false, want true (inclusive)")
	}
	if b.Contains(V3(1.1, 0, 0)) {
		t.Error("Contains(outside) = true, want false")
	}
}

func TestAABB3Union(t *testing.T) {
	a := AABB3FromMinMax(V3(-1, -1, -1), V3(1, 1, 1))
	b := AABB3FromMinMax(V3(0, 0, 0), V3(3, 3, 3))
	u := a.Union(b)
	if got := u.Min(); got != (Vec3{-1, -1, -1}) {
		t.Errorf("Union().Min() = %v, want {-1 -1 -1}", got)
	}
	if got := u.Max(); got != (Vec3{3, 3, 3}) {
		t.Errorf("Union().Max() = %v, want {3 3 3}", got)
	}
}

func TestAABB3Corners(t *testing.T) {
	b := AABB3FromMinMax(V3(0, 0, 0), V3(1, 1, 1))
	corners := b.Corners()
	if len(corners) != 8 {
		t.Fatalf("len(Corners()) = %d, want 8", len(corners))
	}
	seen := make(map[Vec3]bool)
	for _, c := range corners {
		seen[c] = true
	}
	if len(seen) != 8 {
		t.Errorf("Corners() produced %d distinct points, want 8", len(seen))
	}
}

func TestAABB3ToTransform(t *testing.T) {
	b := AABB3FromMinMax(V3(0, 0, 0), V3(2, 4, 6))
	tr := b.ToTransform()
	if got := tr.ApplyPoint(V3(-1, -1, -1)); !got.AlmostEqual(b.Min()) {
		t.Errorf("ToTransform().ApplyPoint(-1,-1,-1) = %v, want %v", got, b.Min())
	}
	if got := tr.ApplyPoint(V3(1, 1, 1)); !got.AlmostEqual(b.Max()) {
		t.Errorf("ToTransform().ApplyPoint(1,1,1) = %v, want %v", got, b.Max())
	}
}
