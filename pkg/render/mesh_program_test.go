package render

import (
	"iter"
	"testing"

	"github.com/mbrt/rasterkit/pkg/fragctx"
	"github.com/mbrt/rasterkit/pkg/math3d"
	"github.com/mbrt/rasterkit/pkg/texture"
	"github.com/mbrt/rasterkit/pkg/varying"
)

type testVertex struct {
	Pos, Normal math3d.Vec3
	UV          math3d.Vec2
}

func extractTestVertex(v testVertex) (pos, normal math3d.Vec3, uv math3d.Vec2) {
	return v.Pos, v.Normal, v.UV
}

func TestLitColorFacingLightIsBrighterThanAway(t *testing.T) {
	base := math3d.V3(1, 1, 1)
	lightDir := math3d.V3(0, 0, 1)

	facing := litColor(math3d.V3(0, 0, 1), lightDir, base)
	away := litColor(math3d.V3(0, 0, -1), lightDir, base)

	if facing.X <= away.X {
		t.Fatalf("facing intensity %v should exceed away intensity %v", facing.X, away.X)
	}
	if away.X < 0.29 || away.X > 0.31 {
		t.Fatalf("fully unlit surface should sit at the 0.3 ambient floor, got %v", away.X)
	}
	if facing.X < 0.99 || facing.X > 1.01 {
		t.Fatalf("fully lit surface should reach full intensity, got %v", facing.X)
	}
}

func TestToColorClampsOutOfRangeChannels(t *testing.T) {
	c := toColor(math3d.V3(-1, 0.5, 2))
	if c.R != 0 {
		t.Errorf("R = %d, want 0 (clamped negative)", c.R)
	}
	if c.B != 255 {
		t.Errorf("B = %d, want 255 (clamped above 1)", c.B)
	}
	if c.G < 126 || c.G > 129 {
		t.Errorf("G = %d, want ~127 (0.5 * 255)", c.G)
	}
}

func TestGouraudProgramOnVertexProjectsAndLights(t *testing.T) {
	prog := NewGouraudProgram(extractTestVertex)
	u := MeshUniforms{
		World:     math3d.Identity(),
		ViewProj:  math3d.Identity(),
		LightDir:  math3d.V3(0, 0, 1),
		BaseColor: math3d.V3(1, 1, 1),
	}
	v := testVertex{Pos: math3d.V3(1, 2, 3), Normal: math3d.V3(0, 0, 1), UV: math3d.V2(0.25, 0.75)}

	frag := prog.OnVertex(u, v)

	if frag.Pos != (math3d.Vec4{X: 1, Y: 2, Z: 3, W: 1}) {
		t.Fatalf("clip pos = %+v, want identity-transformed (1,2,3,1)", frag.Pos)
	}
	if frag.Attrs.UV != v.UV {
		t.Fatalf("UV = %+v, want %+v", frag.Attrs.UV, v.UV)
	}
	if frag.Attrs.Color.X < 0.99 {
		t.Fatalf("a normal facing the light should be fully lit, got %+v", frag.Attrs.Color)
	}
}

func TestMeshVaryingAddAndScale(t *testing.T) {
	a := MeshVarying{Color: math3d.V3(1, 2, 3), UV: math3d.V2(1, 1)}
	b := MeshVarying{Color: math3d.V3(4, 5, 6), UV: math3d.V2(2, 2)}

	sum := a.Add(b)
	if sum.Color != math3d.V3(5, 7, 9) || sum.UV != math3d.V2(3, 3) {
		t.Fatalf("Add = %+v, want Color(5,7,9) UV(3,3)", sum)
	}

	scaled := a.Scale(2)
	if scaled.Color != math3d.V3(2, 4, 6) || scaled.UV != math3d.V2(2, 2) {
		t.Fatalf("Scale(2) = %+v, want Color(2,4,6) UV(2,2)", scaled)
	}
}

func TestTexturedProgramModulatesLightingByTexture(t *testing.T) {
	// A flat gray texture modulates the lit color uniformly; driving the
	// program through a single-member Point bundle exercises the
	// Init/Synchronize/get cooperative protocol end to end.
	tex := texture.New(1, 1, []math3d.Vec4{{X: 0.5, Y: 0.5, Z: 0.5, W: 1}})
	sampler := texture.NewSampler(tex)
	prog := NewTexturedProgram(extractTestVertex, sampler)

	u := MeshUniforms{
		World:     math3d.Identity(),
		ViewProj:  math3d.Identity(),
		LightDir:  math3d.V3(0, 0, 1),
		BaseColor: math3d.V3(1, 1, 1),
	}
	v := testVertex{Pos: math3d.V3(0, 0, 0), Normal: math3d.V3(0, 0, 1), UV: math3d.V2(0.5, 0.5)}
	clip := prog.OnVertex(u, v)
	frag := varying.ProjectedFragment[MeshVarying]{Attrs: clip.Attrs}

	ctxs := fragctx.NewBundle(1, nil)
	var out Color
	toks := fragctx.Drive(
		[]iter.Seq[fragctx.Token]{prog.OnFragment(ctxs[0], u, frag, &out)},
		ctxs, fragctx.Point,
	)
	if len(toks) != 1 || toks[0] != fragctx.Keep {
		t.Fatalf("tokens = %v, want a single Keep", toks)
	}
	// Fully lit (intensity 1) modulated by a 0.5 gray texel halves each channel.
	if out.R < 126 || out.R > 129 {
		t.Fatalf("R = %d, want ~127 (lit * 0.5 texel)", out.R)
	}
}
