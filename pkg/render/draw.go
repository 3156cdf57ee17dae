package render

import (
	"iter"

	"github.com/mbrt/rasterkit/pkg/clip"
	"github.com/mbrt/rasterkit/pkg/fragctx"
	"github.com/mbrt/rasterkit/pkg/math3d"
	"github.com/mbrt/rasterkit/pkg/raster"
	"github.com/mbrt/rasterkit/pkg/varying"
)

// Draw submits a vertex source through the full pipeline: vertex shader,
// frustum clip, perspective divide, viewport scale, optional screen clip,
// rasterization, and the cooperative fragment shader, per primitive kind.
func Draw[U any, Vx any, Va varying.Varying[Va], T any](
	r *Renderer,
	program Program[U, Vx, Va, T],
	uniforms U,
	src Source[Vx],
	fb Framebuffer[T],
) {
	n := src.Len()
	switch src.Kind() {
	case Points:
		for i := 0; i < n; i++ {
			drawPoint(r, program, uniforms, src.At(i), fb)
		}
	case Lines:
		for i := 0; i+1 < n; i += 2 {
			drawLine(r, program, uniforms, src.At(i), src.At(i+1), fb)
		}
	case LineStrip:
		for i := 0; i+1 < n; i++ {
			drawLine(r, program, uniforms, src.At(i), src.At(i+1), fb)
		}
	case LineLoop:
		for i := 0; i < n; i++ {
			j := (i + 1) % n
			drawLine(r, program, uniforms, src.At(i), src.At(j), fb)
		}
	case Triangles:
		for i := 0; i+2 < n; i += 3 {
			drawTriangle(r, program, uniforms, src.At(i), src.At(i+1), src.At(i+2), fb)
		}
	case TriangleStrip:
		for i := 0; i+2 < n; i++ {
			a, b, c := src.At(i), src.At(i+1), src.At(i+2)
			if i%2 == 1 {
				b, c = c, b
			}
			drawTriangle(r, program, uniforms, a, b, c, fb)
		}
	case TriangleFan:
		if n < 3 {
			return
		}
		hub := src.At(0)
		for i := 1; i+1 < n; i++ {
			drawTriangle(r, program, uniforms, hub, src.At(i), src.At(i+1), fb)
		}
	}
}

func drawPoint[U any, Vx any, Va varying.Varying[Va], T any](
	r *Renderer, program Program[U, Vx, Va, T], u U, v Vx, fb Framebuffer[T],
) {
	vtx := program.OnVertex(u, v)
	if clip.CullPoint(vtx.Pos) {
		return
	}
	proj := varying.Project(vtx)
	proj.Pos = r.ScaleToViewport.Apply(proj.Pos)
	if r.RequiresScreenClipping && !clip.PointInScreen(proj.Pos) {
		return
	}
	proj.Pos = fb.ScreenToWindow().Apply(proj.Pos)
	window := math3d.IVec2{X: math3d.Int(math3d.RoundHalfAwayFromZero(proj.Pos.X)), Y: math3d.Int(math3d.RoundHalfAwayFromZero(proj.Pos.Y))}

	ctxs := fragctx.NewBundle(1, nil)
	var out T
	seq := program.OnFragment(ctxs[0], u, proj, &out)
	tokens := fragctx.Drive([]iter.Seq[fragctx.Token]{seq}, ctxs, fragctx.Point)

	if tokens[0] != fragctx.Keep {
		return
	}
	if fb.TestAndSetDepth(window, proj.Depth) {
		fb.Plot(window, out)
	}
}

func drawLine[U any, Vx any, Va varying.Varying[Va], T any](
	r *Renderer, program Program[U, Vx, Va, T], u U, va, vb Vx, fb Framebuffer[T],
) {
	f0 := program.OnVertex(u, va)
	f1 := program.OnVertex(u, vb)

	res := clip.ClipLineFrustum(f0.Pos, f1.Pos)
	if !res.Ok {
		return
	}
	clipped0 := f0.Lerp(f1, res.T0)
	clipped1 := f0.Lerp(f1, res.T1)

	p0 := varying.Project(clipped0)
	p1 := varying.Project(clipped1)
	p0.Pos = r.ScaleToViewport.Apply(p0.Pos)
	p1.Pos = r.ScaleToViewport.Apply(p1.Pos)

	if r.RequiresScreenClipping {
		sres := clip.ClipLineScreen(p0.Pos, p1.Pos)
		if !sres.Ok {
			return
		}
		p0, p1 = p0.Lerp(p1, sres.T0), p0.Lerp(p1, sres.T1)
	}

	screenToWindow := fb.ScreenToWindow()
	p0.Pos = screenToWindow.Apply(p0.Pos)
	p1.Pos = screenToWindow.Apply(p1.Pos)

	emit := func(cur, next raster.LineSample[Va]) {
		ctxs := fragctx.NewBundle(2, []bool{cur.Helper, true})
		var out0, out1 T
		seq0 := program.OnFragment(ctxs[0], u, cur.Frag, &out0)
		seq1 := program.OnFragment(ctxs[1], u, next.Frag, &out1)
		tokens := fragctx.Drive([]iter.Seq[fragctx.Token]{seq0, seq1}, ctxs, fragctx.Line)

		if cur.Helper || tokens[0] != fragctx.Keep {
			return
		}
		if fb.TestAndSetDepth(cur.Window, cur.Frag.Depth) {
			fb.Plot(cur.Window, out0)
		}
	}

	raster.RasterizeLine(p0, p1, r.Options.LineDrawingDirection, r.Options.LineEndsInclusion, r.Options.PerspectiveCorrect, emit)
}

func drawTriangle[U any, Vx any, Va varying.Varying[Va], T any](
	r *Renderer, program Program[U, Vx, Va, T], u U, va, vb, vc Vx, fb Framebuffer[T],
) {
	tri := [3]varying.Fragment[Va]{program.OnVertex(u, va), program.OnVertex(u, vb), program.OnVertex(u, vc)}

	for _, clipped := range clip.ClipTriangleFrustum(tri) {
		var proj [3]varying.ProjectedFragment[Va]
		for i, f := range clipped {
			p := varying.Project(f)
			p.Pos = r.ScaleToViewport.Apply(p.Pos)
			proj[i] = p
		}

		ordered, ok := backfaceCullAndOrder(proj, r.Options.WindingOrder)
		if !ok {
			continue
		}

		subTris := [][3]varying.ProjectedFragment[Va]{ordered}
		if r.RequiresScreenClipping {
			subTris = clip.ClipTriangleScreen(ordered)
		}

		for _, st := range subTris {
			drawClippedTriangle(r, program, u, st, fb)
		}
	}
}

// backfaceCullAndOrder computes the signed double area of the triangle in
// screen space, culls it against the configured winding order, and
// reorders the vertices so that a Clockwise-wound triangle (or an
// either-winding one with negative area) is passed through as-is, and a
// counter-clockwise one has its last two vertices swapped - matching the
// rasterizer's own area2>0 convention.
func backfaceCullAndOrder[V varying.Varying[V]](v [3]varying.ProjectedFragment[V], winding WindingOrder) ([3]varying.ProjectedFragment[V], bool) {
	area2 := v[2].Pos.Sub(v[0].Pos).Cross(v[1].Pos.Sub(v[0].Pos))
	switch winding {
	case Clockwise:
		if area2 > 0 {
			return v, false
		}
	case CounterClockwise:
		if area2 < 0 {
			return v, false
		}
	}
	if winding == Clockwise || (winding == NeitherWinding && area2 < 0) {
		return v, true
	}
	return [3]varying.ProjectedFragment[V]{v[0], v[2], v[1]}, true
}

func drawClippedTriangle[U any, Vx any, Va varying.Varying[Va], T any](
	r *Renderer, program Program[U, Vx, Va, T], u U, tri [3]varying.ProjectedFragment[Va], fb Framebuffer[T],
) {
	screenToWindow := fb.ScreenToWindow()
	for i := range tri {
		tri[i].Pos = screenToWindow.Apply(tri[i].Pos)
	}
	boundsMin, boundsMax := fb.Bounds()

	emit := func(quad [4]raster.QuadSample[Va]) {
		helpers := [4]bool{quad[0].Helper, quad[1].Helper, quad[2].Helper, quad[3].Helper}
		ctxs := fragctx.NewBundle(4, helpers[:])
		var outs [4]T
		seqs := make([]iter.Seq[fragctx.Token], 4)
		for i := range quad {
			i := i
			seqs[i] = program.OnFragment(ctxs[i], u, quad[i].Frag, &outs[i])
		}
		tokens := fragctx.Drive(seqs, ctxs, fragctx.Filled)

		for i := range quad {
			if quad[i].Helper || tokens[i] != fragctx.Keep {
				continue
			}
			if fb.TestAndSetDepth(quad[i].Window, quad[i].Frag.Depth) {
				fb.Plot(quad[i].Window, outs[i])
			}
		}
	}

	raster.RasterizeTriangle(tri[0], tri[1], tri[2], r.Options.TriangleFillBias, r.Options.PerspectiveCorrect, boundsMin, boundsMax, emit)
}
