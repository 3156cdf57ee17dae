package math3d

import (
	"math"
	"testing"
)

func TestRot3FromAxisAngleApply(t *testing.T) {
	r := Rot3FromAxisAngle(V3(0, 0, 1), math.Pi/2)
	got := r.Apply(V3(1, 0, 0))
	want := V3(0, 1, 0)
	if !got.AlmostEqual(want) {
		t.Errorf("Apply = %v, want %v", got, want)
	}
}

func TestRot3Identity(t *testing.T) {
	v := V3(1, 2, 3)
	if got := Rot3Identity().Apply(v); !got.AlmostEqual(v) {
		t.Errorf("Identity().Apply(v) = %v, want %v", got, v)
	}
}

func TestRot3Inversed(t *testing.T) {
	r := Rot3FromAxisAngle(V3(1, 1, 0).Normalize(), 1.1)
	v := V3(2, -1, 3)
	roundTrip := r.Inversed().Apply(r.Apply(v))
	if !roundTrip.AlmostEqual(v) {
		t.Errorf("inverse roundtrip = %v, want %v", roundTrip, v)
	}
}

func TestRot3Stack(t *testing.T) {
	axis := V3(0, 1, 0)
	a := Rot3FromAxisAngle(axis, math.Pi/6)
	b := Rot3FromAxisAngle(axis, math.Pi/3)
	stacked := a.Stack(b)
	want := Rot3FromAxisAngle(axis, math.Pi/2)
	got := stacked.Apply(V3(1, 0, 0))
	if w := want.Apply(V3(1, 0, 0)); !got.AlmostEqual(w) {
		t.Errorf("Stack applied = %v, want %v", got, w)
	}
}

func TestRot3Between(t *testing.T) {
	from := V3(1, 0, 0)
	to := V3(0, 1, 0)
	r := Rot3Between(from, to)
	got := r.Apply(from)
	if !got.AlmostEqual(to) {
		t.Errorf("Rot3Between(from,to).Apply(from) = %v, want %v", got, to)
	}
}

func TestRot3BetweenAntiparallel(t *testing.T) {
	from := V3(1, 0, 0)
	to := V3(-1, 0, 0)
	r := Rot3Between(from, to)
	got := r.Apply(from)
	if !got.AlmostEqual(to) {
		t.Errorf("Rot3Between(antiparallel).Apply(from) = %v, want %v", got, to)
	}
}

func TestRot3ToMatMatchesApply(t *testing.T) {
	r := Rot3FromAxisAngle(V3(1, 2, 3).Normalize(), 0.8)
	v := V3(0.5, -0.2, 1.3)
	viaApply := r.Apply(v)
	viaMat := r.ToMat().MulVec3(v)
	if !viaApply.AlmostEqual(viaMat) {
		t.Errorf("Apply = %v, ToMat().MulVec3 = %v, want equal", viaApply, viaMat)
	}
}

func TestRot3Normalized(t *testing.T) {
	drifted := Rot3{X: 0, Y: 0, Z: 0, W: 2}
	n := drifted.Normalized()
	if !AlmostEqualEps(n.W, 1, 1e-9) {
		t.Errorf("Normalized().W = %v, want 1", n.W)
	}
}
