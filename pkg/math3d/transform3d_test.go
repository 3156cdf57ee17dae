package math3d

import (
	"math"
	"testing"
)

func TestTransform3DIdentity(t *testing.T) {
	v := V3(1, -2, 3)
	if got := Identity3D().ApplyPoint(v); !got.AlmostEqual(v) {
		t.Errorf("Identity3D().ApplyPoint(v) = %v, want %v", got, v)
	}
}

func TestTransform3DTranslateInverse(t *testing.T) {
	tr := Identity3D().Translate(V3(1, 2, 3))
	v := V3(0, 0, 0)
	fwd := tr.ApplyPoint(v)
	if want := V3(1, 2, 3); !fwd.AlmostEqual(want) {
		t.Errorf("Translate().ApplyPoint = %v, want %v", fwd, want)
	}
	inv := Transform3D{Mat: tr.MatInv}
	back := inv.ApplyPoint(fwd)
	if !back.AlmostEqual(v) {
		t.Errorf("inverse.ApplyPoint(fwd) = %v, want %v", back, v)
	}
}

func TestTransform3DScaleInverse(t *testing.T) {
	tr := Identity3D().Scale(V3(2, 3, 4))
	v := V3(1, 1, 1)
	fwd := tr.ApplyPoint(v)
	if want := V3(2, 3, 4); !fwd.AlmostEqual(want) {
		t.Errorf("Scale().ApplyPoint = %v, want %v", fwd, want)
	}
	inv := Transform3D{Mat: tr.MatInv}
	back := inv.ApplyPoint(fwd)
	if !back.AlmostEqual(v) {
		t.Errorf("inverse.ApplyPoint(fwd) = %v, want %v", back, v)
	}
}

func TestTransform3DRotateInverse(t *testing.T) {
	tr := Identity3D().Rotate(V3(0, 1, 0), math.Pi/2)
	v := V3(1, 0, 0)
	fwd := tr.ApplyPoint(v)
	inv := Transform3D{Mat: tr.MatInv}
	back := inv.ApplyPoint(fwd)
	if !back.AlmostEqual(v) {
		t.Errorf("inverse.ApplyPoint(fwd) = %v, want %v", back, v)
	}
}

func TestTransform3DApplyDirIgnoresTranslation(t *testing.T) {
	tr := Identity3D().Translate(V3(10, 20, 30))
	dir := V3(1, 0, 0)
	if got := tr.ApplyDir(dir); !got.AlmostEqual(dir) {
		t.Errorf("ApplyDir(dir) through a pure translation = %v, want %v", got, dir)
	}
}

func TestTransform3DStack(t *testing.T) {
	tr := Identity3D().Translate(V3(1, 0, 0)).Scale(V3(2, 2, 2))
	got := tr.ApplyPoint(V3(1, 1, 1))
	want := V3(3, 2, 2)
	if !got.AlmostEqual(want) {
		t.Errorf("Translate then Scale ApplyPoint = %v, want %v", got, want)
	}
}

func TestTransform3DInversed(t *testing.T) {
	tr := Identity3D().Translate(V3(1, 2, 3)).Rotate(V3(0, 0, 1), 0.6).Scale(V3(2, 1, 0.5))
	v := V3(-1, 2, 0.5)
	fwd := tr.ApplyPoint(v)
	back := tr.Inversed().ApplyPoint(fwd)
	if !back.AlmostEqual(v) {
		t.Errorf("Inversed().ApplyPoint(Apply(v)) = %v, want %v", back, v)
	}
}
