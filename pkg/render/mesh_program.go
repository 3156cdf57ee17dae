package render

import (
	"iter"
	"math"

	"github.com/mbrt/rasterkit/pkg/fragctx"
	"github.com/mbrt/rasterkit/pkg/math3d"
	"github.com/mbrt/rasterkit/pkg/texture"
	"github.com/mbrt/rasterkit/pkg/varying"
)

// MeshVarying is the interpolable per-vertex bundle mesh shading needs: a
// lit RGB color (for flat/Gouraud shading) and a texture coordinate (for
// textured lookups). Both fields always travel together; a shader that
// doesn't need one of them just ignores it.
type MeshVarying struct {
	Color math3d.Vec3
	UV    math3d.Vec2
}

// Add implements varying.Varying[MeshVarying].
func (v MeshVarying) Add(o MeshVarying) MeshVarying {
	return MeshVarying{Color: v.Color.Add(o.Color), UV: v.UV.Add(o.UV)}
}

// Scale implements varying.Varying[MeshVarying].
func (v MeshVarying) Scale(s math3d.Float) MeshVarying {
	return MeshVarying{Color: v.Color.Scale(s), UV: v.UV.Scale(s)}
}

// MeshUniforms is the per-draw-call uniform bundle shared by the mesh
// programs below: the model-to-world matrix (for positions and, via the
// direction-only multiply, normals), the combined view-projection matrix,
// a single directional light, and a base material color.
type MeshUniforms struct {
	World     math3d.Mat4
	ViewProj  math3d.Mat4
	LightDir  math3d.Vec3
	BaseColor math3d.Vec3
}

func litColor(worldNormal, lightDir, base math3d.Vec3) math3d.Vec3 {
	intensity := 0.3 + 0.7*math.Max(0, worldNormal.Dot(lightDir.Normalize()))
	return base.Scale(intensity)
}

func toColor(c math3d.Vec3) Color {
	clamp8 := func(f float64) uint8 {
		if f <= 0 {
			return 0
		}
		if f >= 1 {
			return 255
		}
		return uint8(f * 255)
	}
	return RGB(clamp8(c.X), clamp8(c.Y), clamp8(c.Z))
}

// gouraudVertexFunc builds the vertex stage shared by NewGouraudProgram: it
// lifts a caller-supplied vertex into world space, computes per-vertex
// lighting there (Gouraud shading interpolates the lit color, not the
// normal), and projects into clip space.
func gouraudVertexFunc[Vx any](extract func(Vx) (pos, normal math3d.Vec3, uv math3d.Vec2)) func(MeshUniforms, Vx) varying.Fragment[MeshVarying] {
	return func(u MeshUniforms, vtx Vx) varying.Fragment[MeshVarying] {
		pos, normal, uv := extract(vtx)
		worldPos := u.World.MulVec3(pos)
		worldNormal := u.World.MulVec3Dir(normal).Normalize()
		clip := u.ViewProj.MulVec4(math3d.V4FromV3(worldPos, 1))
		return varying.Fragment[MeshVarying]{
			Pos:   clip,
			Attrs: MeshVarying{Color: litColor(worldNormal, u.LightDir, u.BaseColor), UV: uv},
		}
	}
}

// NewGouraudProgram builds a non-cooperative Program that flat/Gouraud-shades
// a mesh with a single directional light and no texture, for any vertex type
// Vx the caller knows how to decompose into position/normal/uv via extract.
func NewGouraudProgram[Vx any](extract func(Vx) (pos, normal math3d.Vec3, uv math3d.Vec2)) Program[MeshUniforms, Vx, MeshVarying, Color] {
	return RegularProgram[MeshUniforms, Vx, MeshVarying, Color]{
		Vertex: gouraudVertexFunc(extract),
		Fragment: func(_ MeshUniforms, frag varying.ProjectedFragment[MeshVarying], out *Color) bool {
			*out = toColor(frag.Attrs.Color)
			return true
		},
	}
}

// texturedProgram is a cooperative Program that Gouraud-shades a mesh and
// modulates the result by a texture lookup whose mip level of detail is
// derived from the screen-space UV derivatives across the fragment's bundle,
// per sampler.Prepare's two-stage init/Synchronize/get protocol.
type texturedProgram[Vx any] struct {
	vertex  func(MeshUniforms, Vx) varying.Fragment[MeshVarying]
	sampler *texture.Sampler
}

// NewTexturedProgram builds a cooperative Program combining Gouraud lighting
// with a derivative-correct texture lookup through sampler.
func NewTexturedProgram[Vx any](extract func(Vx) (pos, normal math3d.Vec3, uv math3d.Vec2), sampler *texture.Sampler) Program[MeshUniforms, Vx, MeshVarying, Color] {
	return texturedProgram[Vx]{vertex: gouraudVertexFunc(extract), sampler: sampler}
}

func (p texturedProgram[Vx]) OnVertex(u MeshUniforms, v Vx) varying.Fragment[MeshVarying] {
	return p.vertex(u, v)
}

func (p texturedProgram[Vx]) OnFragment(ctx *fragctx.Context, _ MeshUniforms, frag varying.ProjectedFragment[MeshVarying], out *Color) iter.Seq[fragctx.Token] {
	return func(yield func(fragctx.Token) bool) {
		texel, get := p.sampler.Prepare(frag.Attrs.UV)
		ctx.Init(texel)
		if !yield(fragctx.Synchronize) {
			return
		}
		texel4 := get(ctx)
		modulated := math3d.Vec3{X: frag.Attrs.Color.X * texel4.X, Y: frag.Attrs.Color.Y * texel4.Y, Z: frag.Attrs.Color.Z * texel4.Z}
		*out = toColor(modulated)
		yield(fragctx.Keep)
	}
}
