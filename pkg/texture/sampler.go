package texture

import (
	"math"

	"github.com/mbrt/rasterkit/pkg/fragctx"
	"github.com/mbrt/rasterkit/pkg/math3d"
)

// WrapMode determines how a denormalized texel coordinate outside
// [0,size) is handled.
type WrapMode int

const (
	Blank WrapMode = iota
	Clamp
	Periodic
	Repeat
)

// SampleMode selects how a single mip level (or the mip chain itself) is
// sampled from a continuous coordinate.
type SampleMode int

const (
	Point SampleMode = iota
	Nearest
	Linear
)

// BlankColor is returned for out-of-bounds texels under WrapMode Blank and
// as the fallback for an invalid bundle type.
var BlankColor = math3d.Vec4{X: 1, Y: 0, Z: 1, W: 1}

// Sampler wraps a Texture with the wrap/filter configuration used to
// convert a uv coordinate (and, for mip selection, a level of detail) into
// a color.
type Sampler struct {
	Tex          *Texture
	Wrap         WrapMode
	Filter       SampleMode
	MipmapFilter SampleMode
}

// NewSampler returns a sampler over tex with the core's defaults: clamp to
// edge, nearest-pixel filtering, nearest-mip selection.
func NewSampler(tex *Texture) *Sampler {
	return &Sampler{Tex: tex, Wrap: Clamp, Filter: Nearest, MipmapFilter: Nearest}
}

// remainder is the negative-safe modulo used by Repeat wrapping: it never
// reflects the sign of x into the result, instead wrapping negative
// coordinates back from the far edge.
func remainder(x, size int) int {
	m := x % size
	if m < 0 {
		m += size
	}
	return m
}

// abs is the negative-safe absolute value used by Periodic wrapping, which
// reflects a coordinate about zero instead of wrapping it from the far edge.
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func (s *Sampler) colorAt(pos math3d.IVec2, level int) math3d.Vec4 {
	m := s.Tex.mips[level]
	x, y := int(pos.X), int(pos.Y)

	switch s.Wrap {
	case Blank:
		if x < 0 || x >= m.width || y < 0 || y >= m.height {
			return BlankColor
		}
	case Clamp:
		x = int(math3d.Clamp(float64(x), 0, float64(m.width-1)))
		y = int(math3d.Clamp(float64(y), 0, float64(m.height-1)))
	case Periodic:
		x = abs(x) % m.width
		y = abs(y) % m.height
	case Repeat:
		x = remainder(x, m.width)
		y = remainder(y, m.height)
	}
	return m.at(x, y)
}

// sampleLevel samples a single mip level at uv in [0,1]^2.
func (s *Sampler) sampleLevel(uv math3d.Vec2, level int) math3d.Vec4 {
	m := s.Tex.mips[level]
	scaled := math3d.Vec2{X: float64(m.width - 1), Y: float64(m.height - 1)}.Mul(uv)

	switch s.Filter {
	case Point:
		return s.colorAt(math3d.IVec2{X: math3d.Int(scaled.X), Y: math3d.Int(scaled.Y)}, level)
	case Nearest:
		r := scaled.Sub(math3d.Vec2{X: 0.5, Y: 0.5}).Round()
		return s.colorAt(math3d.IVec2{X: math3d.Int(r.X), Y: math3d.Int(r.Y)}, level)
	default: // Linear
		s2 := scaled.Sub(math3d.Vec2{X: 0.5, Y: 0.5})
		whole := s2.Floor()
		frac := s2.Sub(whole)
		wx, wy := math3d.Int(whole.X), math3d.Int(whole.Y)

		c00 := s.colorAt(math3d.IVec2{X: wx, Y: wy}, level)
		c01 := s.colorAt(math3d.IVec2{X: wx, Y: wy + 1}, level)
		c10 := s.colorAt(math3d.IVec2{X: wx + 1, Y: wy}, level)
		c11 := s.colorAt(math3d.IVec2{X: wx + 1, Y: wy + 1}, level)

		c0t := c00.Lerp(c01, frac.Y)
		c1t := c10.Lerp(c11, frac.Y)
		return c0t.Lerp(c1t, frac.X)
	}
}

// TextureLOD samples the mip chain at uv, choosing between levels
// according to lod and MipmapFilter. lod is clamped to the chain's valid
// range; if mipmaps were never generated, level 0 is used unconditionally.
func (s *Sampler) TextureLOD(uv math3d.Vec2, lod math3d.Float) math3d.Vec4 {
	maxLevel := s.Tex.levels() - 1
	l := math3d.Clamp(lod, 0, float64(maxLevel))

	switch s.MipmapFilter {
	case Point:
		return s.sampleLevel(uv, int(l))
	case Nearest:
		return s.sampleLevel(uv, int(math3d.RoundHalfAwayFromZero(l)))
	default: // Linear
		lo := math.Floor(l)
		hi := math.Ceil(l)
		t := l - lo
		sampleLo := s.sampleLevel(uv, int(lo))
		sampleHi := s.sampleLevel(uv, int(hi))
		return sampleLo.Lerp(sampleHi, t)
	}
}

// Prepare computes the derivative-tracking texel coordinate for a texture
// lookup inside a fragment program, and returns a closure to finish the
// lookup once the bundle's type has been established. The caller is
// expected to Init the fragment context's slot with texel, yield
// Synchronize, and only then call get — the same two-stage shape the
// core's other cooperative lookups use, expressed as plain closures
// instead of an explicit init/get method pair.
func (s *Sampler) Prepare(uv math3d.Vec2) (texel math3d.Vec2, get func(ctx *fragctx.Context) math3d.Vec4) {
	texel = math3d.Vec2{X: float64(s.Tex.Width()), Y: float64(s.Tex.Height())}.Mul(uv)

	get = func(ctx *fragctx.Context) math3d.Vec4 {
		switch ctx.Type() {
		case fragctx.Point:
			return s.TextureLOD(uv, 0)
		case fragctx.Line:
			dFdv := fragctx.DFdv[math3d.Vec2](ctx)
			d := dFdv.Dot(dFdv)
			lod := 0.5 * math.Log2(math.Max(1, d))
			return s.TextureLOD(uv, lod)
		case fragctx.Filled:
			dFdx := fragctx.DFdx[math3d.Vec2](ctx)
			dFdy := fragctx.DFdy[math3d.Vec2](ctx)
			d := math.Max(dFdx.Dot(dFdx), dFdy.Dot(dFdy))
			lod := 0.5 * math.Log2(d)
			return s.TextureLOD(uv, lod)
		default:
			return BlankColor
		}
	}
	return texel, get
}
