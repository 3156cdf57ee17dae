package varying

import (
	"testing"

	"github.com/mbrt/rasterkit/pkg/math3d"
)

type scalarAttr struct{ V math3d.Float }

func (a scalarAttr) Add(b scalarAttr) scalarAttr       { return scalarAttr{a.V + b.V} }
func (a scalarAttr) Scale(s math3d.Float) scalarAttr   { return scalarAttr{a.V * s} }

func TestFragmentLerp(t *testing.T) {
	f0 := Fragment[scalarAttr]{Pos: math3d.Vec4{X: 0, Y: 0, Z: 0, W: 1}, Attrs: scalarAttr{0}}
	f1 := Fragment[scalarAttr]{Pos: math3d.Vec4{X: 10, Y: 0, Z: 0, W: 1}, Attrs: scalarAttr{10}}

	got := f0.Lerp(f1, 0.5)
	if !math3d.AlmostEqual(got.Pos.X, 5) {
		t.Fatalf("Pos.X = %v, want 5", got.Pos.X)
	}
	if !math3d.AlmostEqual(got.Attrs.V, 5) {
		t.Fatalf("Attrs.V = %v, want 5", got.Attrs.V)
	}
}

func TestProject(t *testing.T) {
	f := Fragment[scalarAttr]{Pos: math3d.Vec4{X: 2, Y: 4, Z: 3, W: 2}, Attrs: scalarAttr{1}}
	p := Project(f)

	if !math3d.AlmostEqual(p.Pos.X, 1) || !math3d.AlmostEqual(p.Pos.Y, 2) {
		t.Fatalf("Pos = %+v, want (1,2)", p.Pos)
	}
	if !math3d.AlmostEqual(p.Depth, 1.5) {
		t.Fatalf("Depth = %v, want 1.5", p.Depth)
	}
	if !math3d.AlmostEqual(p.ZInv, 0.5) {
		t.Fatalf("ZInv = %v, want 0.5", p.ZInv)
	}
}

func TestBarycentricPerspectiveCorrected(t *testing.T) {
	// Invariant 6: interpolated = (sum a_i*w_i/z_i) / (sum w_i/z_i).
	f0 := ProjectedFragment[scalarAttr]{ZInv: 1.0, Attrs: scalarAttr{0}}
	f1 := ProjectedFragment[scalarAttr]{ZInv: 0.5, Attrs: scalarAttr{10}}
	f2 := ProjectedFragment[scalarAttr]{ZInv: 0.25, Attrs: scalarAttr{20}}

	w0, w1, w2 := 0.2, 0.3, 0.5

	got := Barycentric(f0, f1, f2, w0, w1, w2, true)

	num := f0.Attrs.V*w0*f0.ZInv + f1.Attrs.V*w1*f1.ZInv + f2.Attrs.V*w2*f2.ZInv
	den := w0*f0.ZInv + w1*f1.ZInv + w2*f2.ZInv
	want := num / den

	if !math3d.AlmostEqual(got.V, want) {
		t.Fatalf("Barycentric = %v, want %v", got.V, want)
	}
}

func TestBarycentricFlatVsSmoothDiffer(t *testing.T) {
	f0 := ProjectedFragment[scalarAttr]{ZInv: 1.0, Attrs: scalarAttr{0}}
	f1 := ProjectedFragment[scalarAttr]{ZInv: 0.2, Attrs: scalarAttr{10}}
	f2 := ProjectedFragment[scalarAttr]{ZInv: 0.2, Attrs: scalarAttr{20}}

	smooth := Barycentric(f0, f1, f2, 1.0/3, 1.0/3, 1.0/3, true)
	flat := Barycentric(f0, f1, f2, 1.0/3, 1.0/3, 1.0/3, false)

	if math3d.AlmostEqual(smooth.V, flat.V) {
		t.Fatalf("expected smooth (%v) and flat (%v) interpolation to differ", smooth.V, flat.V)
	}
}
