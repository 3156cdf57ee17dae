package texture

import (
	"testing"

	"github.com/mbrt/rasterkit/pkg/math3d"
)

func solid(c math3d.Vec4, n int) []math3d.Vec4 {
	out := make([]math3d.Vec4, n)
	for i := range out {
		out[i] = c
	}
	return out
}

func TestGenerateMipmapsChainShrinksToOne(t *testing.T) {
	red := math3d.Vec4{X: 1, Y: 0, Z: 0, W: 1}
	tex := New(8, 4, solid(red, 32))
	tex.GenerateMipmaps()

	if !tex.MipmapsGenerated() {
		t.Fatal("expected mipmaps to be generated")
	}
	wantDims := [][2]int{{8, 4}, {4, 2}, {2, 1}, {1, 1}}
	if len(tex.mips) != len(wantDims) {
		t.Fatalf("got %d levels, want %d", len(tex.mips), len(wantDims))
	}
	for i, d := range wantDims {
		m := tex.mips[i]
		if m.width != d[0] || m.height != d[1] {
			t.Errorf("level %d: got %dx%d, want %dx%d", i, m.width, m.height, d[0], d[1])
		}
	}
}

func TestGenerateMipmapsOddDimension(t *testing.T) {
	tex := New(3, 3, solid(math3d.Vec4{X: 1, Y: 1, Z: 1, W: 1}, 9))
	tex.GenerateMipmaps()
	// floor(3/2) = 1, clamped to min 1.
	if tex.mips[1].width != 1 || tex.mips[1].height != 1 {
		t.Fatalf("level 1 = %dx%d, want 1x1", tex.mips[1].width, tex.mips[1].height)
	}
}

func TestBoxDownsampleAverages(t *testing.T) {
	white := math3d.Vec4{X: 1, Y: 1, Z: 1, W: 1}
	black := math3d.Vec4{X: 0, Y: 0, Z: 0, W: 1}
	// 2x2 checkerboard: white,black / black,white.
	tex := New(2, 2, []math3d.Vec4{white, black, black, white})
	tex.GenerateMipmaps()

	got := tex.mips[1].at(0, 0)
	want := math3d.Vec4{X: 0.5, Y: 0.5, Z: 0.5, W: 1}
	if !got.AlmostEqual(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestBoxDownsampleWeightsByAlpha(t *testing.T) {
	// Opaque red and fully transparent green: the transparent texel should
	// not pull the averaged RGB toward green at all.
	opaqueRed := math3d.Vec4{X: 1, Y: 0, Z: 0, W: 1}
	transparentGreen := math3d.Vec4{X: 0, Y: 1, Z: 0, W: 0}
	tex := New(2, 2, []math3d.Vec4{opaqueRed, transparentGreen, transparentGreen, transparentGreen})
	tex.GenerateMipmaps()

	got := tex.mips[1].at(0, 0)
	want := math3d.Vec4{X: 1, Y: 0, Z: 0, W: 0.25}
	if !got.AlmostEqual(want) {
		t.Fatalf("got %v, want %v (alpha-weighted toward the only opaque texel)", got, want)
	}
}

func TestBoxDownsampleZeroAlphaFallsBackToPlainAverage(t *testing.T) {
	a := math3d.Vec4{X: 1, Y: 0, Z: 0, W: 0}
	b := math3d.Vec4{X: 0, Y: 1, Z: 0, W: 0}
	tex := New(2, 2, []math3d.Vec4{a, b, a, b})
	tex.GenerateMipmaps()

	got := tex.mips[1].at(0, 0)
	want := math3d.Vec4{X: 0.5, Y: 0.5, Z: 0, W: 0}
	if !got.AlmostEqual(want) {
		t.Fatalf("got %v, want %v (plain average when all alpha is zero)", got, want)
	}
}

func TestSamplePointNearestCorners(t *testing.T) {
	tl := math3d.Vec4{X: 1, Y: 0, Z: 0, W: 1}
	tr := math3d.Vec4{X: 0, Y: 1, Z: 0, W: 1}
	bl := math3d.Vec4{X: 0, Y: 0, Z: 1, W: 1}
	br := math3d.Vec4{X: 1, Y: 1, Z: 1, W: 1}
	tex := New(2, 2, []math3d.Vec4{tl, tr, bl, br})
	s := NewSampler(tex)
	s.Filter = Point

	if got := s.sampleLevel(math3d.Vec2{X: 0, Y: 0}, 0); !got.AlmostEqual(tl) {
		t.Errorf("(0,0) = %v, want %v", got, tl)
	}
	if got := s.sampleLevel(math3d.Vec2{X: 1, Y: 1}, 0); !got.AlmostEqual(br) {
		t.Errorf("(1,1) = %v, want %v", got, br)
	}
}

func TestSamplerWrapClamp(t *testing.T) {
	c := math3d.Vec4{X: 0.5, Y: 0.5, Z: 0.5, W: 1}
	tex := New(1, 1, []math3d.Vec4{c})
	s := NewSampler(tex)
	s.Wrap = Clamp

	got := s.colorAt(math3d.IVec2{X: 5, Y: -5}, 0)
	if !got.AlmostEqual(c) {
		t.Fatalf("got %v, want %v", got, c)
	}
}

func TestSamplerWrapBlank(t *testing.T) {
	c := math3d.Vec4{X: 0.5, Y: 0.5, Z: 0.5, W: 1}
	tex := New(1, 1, []math3d.Vec4{c})
	s := NewSampler(tex)
	s.Wrap = Blank

	got := s.colorAt(math3d.IVec2{X: 5, Y: 0}, 0)
	if !got.AlmostEqual(BlankColor) {
		t.Fatalf("got %v, want blank %v", got, BlankColor)
	}
}

func TestSamplerWrapRepeatNegative(t *testing.T) {
	red := math3d.Vec4{X: 1, Y: 0, Z: 0, W: 1}
	green := math3d.Vec4{X: 0, Y: 1, Z: 0, W: 1}
	tex := New(2, 1, []math3d.Vec4{red, green})
	s := NewSampler(tex)
	s.Wrap = Repeat

	// -1 mod 2, negative-safe, lands back at index 1 (green).
	got := s.colorAt(math3d.IVec2{X: -1, Y: 0}, 0)
	if !got.AlmostEqual(green) {
		t.Fatalf("got %v, want %v", got, green)
	}
}

func TestTextureLODLinearBlendsTowardNearerLevel(t *testing.T) {
	lo := math3d.Vec4{X: 0, Y: 0, Z: 0, W: 1}
	hi := math3d.Vec4{X: 1, Y: 1, Z: 1, W: 1}
	tex := New(2, 2, solid(lo, 4))
	tex.GenerateMipmaps()
	tex.mips[1] = mipLevel{width: 1, height: 1, pixels: []math3d.Vec4{hi}}
	s := NewSampler(tex)
	s.MipmapFilter = Linear

	// lod=0.1 is mostly level 0 (lo); the blend must lean toward it, not hi.
	got := s.TextureLOD(math3d.Vec2{X: 0, Y: 0}, 0.1)
	if got.X >= 0.5 {
		t.Fatalf("lod=0.1 got %v, want mostly level 0 (near 0, not near 1)", got)
	}
}

func TestTextureLODClampsToChain(t *testing.T) {
	tex := New(2, 2, solid(math3d.Vec4{X: 1, Y: 1, Z: 1, W: 1}, 4))
	tex.GenerateMipmaps()
	s := NewSampler(tex)
	s.MipmapFilter = Nearest

	// lod far beyond the chain must clamp, not panic or index out of range.
	got := s.TextureLOD(math3d.Vec2{X: 0, Y: 0}, 100)
	want := math3d.Vec4{X: 1, Y: 1, Z: 1, W: 1}
	if !got.AlmostEqual(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
