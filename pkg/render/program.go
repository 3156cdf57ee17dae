package render

import (
	"iter"

	"github.com/mbrt/rasterkit/pkg/fragctx"
	"github.com/mbrt/rasterkit/pkg/math3d"
	"github.com/mbrt/rasterkit/pkg/varying"
)

// Program is user shader code: a vertex stage that lifts a vertex into clip
// space plus attributes, and a cooperative fragment stage driven through
// the token stream described in pkg/fragctx.
//
// U is the uniform bundle, Vx the input vertex type, Va the interpolable
// varying attribute type, T the framebuffer's per-pixel target type.
type Program[U any, Vx any, Va varying.Varying[Va], T any] interface {
	OnVertex(u U, v Vx) varying.Fragment[Va]
	OnFragment(ctx *fragctx.Context, u U, frag varying.ProjectedFragment[Va], out *T) iter.Seq[fragctx.Token]
}

// SimpleFragmentFunc is a plain, non-cooperative fragment shader: compute
// the output targets from the interpolated attributes and report whether to
// keep or discard. RegularProgram wraps one into the cooperative Program
// interface for shaders with no need for quad/line derivatives.
type SimpleFragmentFunc[U any, Va varying.Varying[Va], T any] func(u U, frag varying.ProjectedFragment[Va], out *T) bool

// RegularProgram adapts a plain vertex+fragment function pair into the
// cooperative Program interface, yielding a single Keep/Discard with no
// Synchronize step. Use this for shaders that need no derivatives.
type RegularProgram[U any, Vx any, Va varying.Varying[Va], T any] struct {
	Vertex   func(u U, v Vx) varying.Fragment[Va]
	Fragment SimpleFragmentFunc[U, Va, T]
}

func (p RegularProgram[U, Vx, Va, T]) OnVertex(u U, v Vx) varying.Fragment[Va] {
	return p.Vertex(u, v)
}

func (p RegularProgram[U, Vx, Va, T]) OnFragment(ctx *fragctx.Context, u U, frag varying.ProjectedFragment[Va], out *T) iter.Seq[fragctx.Token] {
	return func(yield func(fragctx.Token) bool) {
		if p.Fragment(u, frag, out) {
			yield(fragctx.Keep)
		} else {
			yield(fragctx.Discard)
		}
	}
}

// Framebuffer is the trait the core requires of a render target: a
// reverse-Z depth test ("closer" means numerically smaller), a plot call,
// the screen-to-window affine map, and the window-space rectangle the
// rasterizer may write into.
type Framebuffer[T any] interface {
	TestAndSetDepth(pos math3d.IVec2, depth math3d.Float) bool
	Plot(pos math3d.IVec2, targets T)
	ScreenToWindow() math3d.Transform2D
	Bounds() (min, max math3d.IVec2)
}
