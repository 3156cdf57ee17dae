package math3d

import "testing"

func TestVec2AddSubScale(t *testing.T) {
	a := V2(1, 2)
	b := V2(3, 4)
	if got := a.Add(b); got != (Vec2{4, 6}) {
		t.Errorf("Add = %v, want {4 6}", got)
	}
	if got := b.Sub(a); got != (Vec2{2, 2}) {
		t.Errorf("Sub = %v, want {2 2}", got)
	}
	if got := a.Scale(2); got != (Vec2{2, 4}) {
		t.Errorf("Scale = %v, want {2 4}", got)
	}
}

func TestVec2DotCross(t *testing.T) {
	a := V2(1, 0)
	b := V2(0, 1)
	if got := a.Dot(b); got != 0 {
		t.Errorf("Dot = %v, want 0", got)
	}
	if got := a.Cross(b); got != 1 {
		t.Errorf("Cross = %v, want 1", got)
	}
}

func TestVec2Normalize(t *testing.T) {
	v := V2(3, 4).Normalize()
	if !AlmostEqual(v.Len(), 1) {
		t.Errorf("Len = %v, want 1", v.Len())
	}
	if got := Zero2().Normalize(); got != (Vec2{}) {
		t.Errorf("Normalize of zero = %v, want zero", got)
	}
}

func TestVec2Lerp(t *testing.T) {
	a, b := V2(0, 0), V2(10, 20)
	if got := a.Lerp(b, 0.5); got != (Vec2{5, 10}) {
		t.Errorf("Lerp(0.5) = %v, want {5 10}", got)
	}
	if got := a.Lerp(b, 0); got != a {
		t.Errorf("Lerp(0) = %v, want %v", got, a)
	}
	if got := a.Lerp(b, 1); got != b {
		t.Errorf("Lerp(1) = %v, want %v", got, b)
	}
}

func TestVec2MinMaxClamp(t *testing.T) {
	a, b := V2(1, 5), V2(3, 2)
	if got := a.Min(b); got != (Vec2{1, 2}) {
		t.Errorf("Min = %v, want {1 2}", got)
	}
	if got := a.Max(b); got != (Vec2{3, 5}) {
		t.Errorf("Max = %v, want {3 5}", got)
	}
	clamped := V2(-5, 10).Clamp(V2(0, 0), V2(1, 1))
	if clamped != (Vec2{0, 1}) {
		t.Errorf("Clamp = %v, want {0 1}", clamped)
	}
}

func TestVec2Swizzle(t *testing.T) {
	v := V2(1, 2)
	if got := v.YX(); got != (Vec2{2, 1}) {
		t.Errorf("YX = %v, want {2 1}", got)
	}
	if got := v.Vec3(3); got != (Vec3{1, 2, 3}) {
		t.Errorf("Vec3(3) = %v, want {1 2 3}", got)
	}
}

func TestIVec2Add(t *testing.T) {
	p := IV2(1, 2)
	q := IV2(3, 4)
	if got := p.Add(q); got != (IVec2{4, 6}) {
		t.Errorf("Add = %v, want {4 6}", got)
	}
	if got := p.Vec2(); got != (Vec2{1, 2}) {
		t.Errorf("Vec2() = %v, want {1 2}", got)
	}
}
