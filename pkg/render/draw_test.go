package render

import (
	"iter"
	"math"
	"testing"

	"github.com/mbrt/rasterkit/pkg/fragctx"
	"github.com/mbrt/rasterkit/pkg/math3d"
	"github.com/mbrt/rasterkit/pkg/raster"
	"github.com/mbrt/rasterkit/pkg/varying"
)

// fakeFB is a minimal in-memory Framebuffer[math3d.Vec4] for exercising the
// draw pipeline end to end without pulling in the terminal renderer.
type fakeFB struct {
	width, height int
	depth         []math3d.Float
	colors        []math3d.Vec4
	screenToWin   math3d.Transform2D
	plotted       map[[2]int]bool
}

func newFakeFB(width, height int, screenToWin math3d.Transform2D) *fakeFB {
	depth := make([]math3d.Float, width*height)
	for i := range depth {
		depth[i] = math.Inf(1)
	}
	return &fakeFB{
		width: width, height: height,
		depth: depth, colors: make([]math3d.Vec4, width*height),
		screenToWin: screenToWin,
		plotted:     map[[2]int]bool{},
	}
}

func (f *fakeFB) index(pos math3d.IVec2) (int, bool) {
	x, y := int(pos.X), int(pos.Y)
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return 0, false
	}
	return y*f.width + x, true
}

func (f *fakeFB) TestAndSetDepth(pos math3d.IVec2, depth math3d.Float) bool {
	i, ok := f.index(pos)
	if !ok {
		return false
	}
	if depth < f.depth[i] {
		f.depth[i] = depth
		return true
	}
	return false
}

func (f *fakeFB) Plot(pos math3d.IVec2, c math3d.Vec4) {
	i, ok := f.index(pos)
	if !ok {
		return
	}
	f.colors[i] = c
	f.plotted[[2]int{int(pos.X), int(pos.Y)}] = true
}

func (f *fakeFB) ScreenToWindow() math3d.Transform2D { return f.screenToWin }

func (f *fakeFB) Bounds() (math3d.IVec2, math3d.IVec2) {
	return math3d.IVec2{X: 0, Y: 0}, math3d.IVec2{X: math3d.Int(f.width - 1), Y: math3d.Int(f.height - 1)}
}

// scaleToWindow builds the affine map ndc in [-1,1] -> window [0,w-1]x[0,h-1],
// with no inverse (unused by the draw path's forward Apply calls).
func scaleToWindow(w, h int) math3d.Transform2D {
	sx, sy := math3d.Float(w-1)/2, math3d.Float(h-1)/2
	return math3d.Transform2D{Mat: math3d.Affine2{A: sx, D: sy, Tx: sx, Ty: sy}}
}

// solidProgram is a Program with no varying attributes that always keeps
// and writes a fixed color, used to probe rasterizer coverage.
type solidProgram struct{ color math3d.Vec4 }

func (p solidProgram) OnVertex(_ struct{}, v math3d.Vec4) varying.Fragment[varying.Empty] {
	return varying.Fragment[varying.Empty]{Pos: v, Attrs: varying.Empty{}}
}

func (p solidProgram) OnFragment(_ *fragctx.Context, _ struct{}, _ varying.ProjectedFragment[varying.Empty], out *math3d.Vec4) iter.Seq[fragctx.Token] {
	return func(yield func(fragctx.Token) bool) {
		*out = p.color
		yield(fragctx.Keep)
	}
}

// TestDrawPointSinglePixel is spec scenario S1: a single point at the NDC
// origin, full-screen viewport, 3x3 framebuffer, expect exactly window
// pixel (1,1) at depth 0.
func TestDrawPointSinglePixel(t *testing.T) {
	r := NewRenderer(math3d.Vec2{X: -1, Y: -1}, math3d.Vec2{X: 1, Y: 1}, DefaultRendererOptions())
	fb := newFakeFB(3, 3, scaleToWindow(3, 3))
	src := VertexBuffer[math3d.Vec4]{Shape: Points, Vertices: []math3d.Vec4{{X: 0, Y: 0, Z: 0, W: 1}}}

	Draw[struct{}, math3d.Vec4, varying.Empty, math3d.Vec4](r, solidProgram{color: math3d.Vec4{X: 1, Y: 1, Z: 1, W: 1}}, struct{}{}, src, fb)

	if !fb.plotted[[2]int{1, 1}] {
		t.Fatalf("expected pixel (1,1) plotted, got %v", fb.plotted)
	}
	if len(fb.plotted) != 1 {
		t.Fatalf("expected exactly 1 plotted pixel, got %d", len(fb.plotted))
	}
	idx, _ := fb.index(math3d.IVec2{X: 1, Y: 1})
	if !math3d.AlmostEqual(fb.depth[idx], 0) {
		t.Fatalf("depth at (1,1) = %v, want 0", fb.depth[idx])
	}
}

// TestDrawLineRightwardsOrder is spec scenario S2: a horizontal line from
// (-1,0) to (1,0), Rightwards + IncludeBoth, 5x1 framebuffer, expect every
// x in [0,4] plotted.
func TestDrawLineRightwardsOrder(t *testing.T) {
	opts := DefaultRendererOptions()
	opts.LineDrawingDirection = raster.Rightwards
	opts.LineEndsInclusion = raster.IncludeBoth
	r := NewRenderer(math3d.Vec2{X: -1, Y: -1}, math3d.Vec2{X: 1, Y: 1}, opts)
	fb := newFakeFB(5, 1, scaleToWindow(5, 1))
	src := VertexBuffer[math3d.Vec4]{Shape: Lines, Vertices: []math3d.Vec4{
		{X: -1, Y: 0, Z: 0, W: 1}, {X: 1, Y: 0, Z: 0, W: 1},
	}}

	Draw[struct{}, math3d.Vec4, varying.Empty, math3d.Vec4](r, solidProgram{color: math3d.Vec4{X: 1, Y: 1, Z: 1, W: 1}}, struct{}{}, src, fb)

	for x := 0; x <= 4; x++ {
		if !fb.plotted[[2]int{x, 0}] {
			t.Errorf("expected x=%d plotted, got %v", x, fb.plotted)
		}
	}
}

// TestDrawTriangleInteriorBounded is spec scenario S3: a fully-inside CCW
// triangle on a 10x10 framebuffer plots only within the hull's bounding box
// and at depth 0 everywhere.
func TestDrawTriangleInteriorBounded(t *testing.T) {
	r := NewRenderer(math3d.Vec2{X: -1, Y: -1}, math3d.Vec2{X: 1, Y: 1}, DefaultRendererOptions())
	fb := newFakeFB(10, 10, scaleToWindow(10, 10))
	src := VertexBuffer[math3d.Vec4]{Shape: Triangles, Vertices: []math3d.Vec4{
		{X: -0.5, Y: -0.5, Z: 0, W: 1},
		{X: 0.5, Y: -0.5, Z: 0, W: 1},
		{X: 0, Y: 0.5, Z: 0, W: 1},
	}}

	Draw[struct{}, math3d.Vec4, varying.Empty, math3d.Vec4](r, solidProgram{color: math3d.Vec4{X: 1, Y: 1, Z: 1, W: 1}}, struct{}{}, src, fb)

	if len(fb.plotted) == 0 {
		t.Fatal("expected at least one plotted pixel")
	}
	for pos := range fb.plotted {
		x, y := pos[0], pos[1]
		if x < 1 || x > 8 || y < 1 || y > 8 {
			t.Errorf("plotted pixel (%d,%d) outside the triangle's bounding box", x, y)
		}
		idx, _ := fb.index(math3d.IVec2{X: math3d.Int(x), Y: math3d.Int(y)})
		if !math3d.AlmostEqual(fb.depth[idx], 0) {
			t.Errorf("pixel (%d,%d) depth = %v, want 0", x, y, fb.depth[idx])
		}
	}
}

func projAt(x, y math3d.Float) varying.ProjectedFragment[varying.Empty] {
	return varying.ProjectedFragment[varying.Empty]{Pos: math3d.Vec2{X: x, Y: y}}
}

// triArea2 mirrors backfaceCullAndOrder's own signed-area formula, used by
// the tests below to check its output without depending on internals.
func triArea2(v [3]varying.ProjectedFragment[varying.Empty]) math3d.Float {
	return v[2].Pos.Sub(v[0].Pos).Cross(v[1].Pos.Sub(v[0].Pos))
}

func TestBackfaceCullAndOrderCullsNegativeAreaUnderCCW(t *testing.T) {
	// area2 = Cross(p2-p0, p1-p0) = Cross((0,1),(1,0)) = -1 < 0.
	tri := [3]varying.ProjectedFragment[varying.Empty]{projAt(0, 0), projAt(1, 0), projAt(0, 1)}
	if triArea2(tri) >= 0 {
		t.Fatalf("fixture area2 = %v, want < 0", triArea2(tri))
	}
	if _, ok := backfaceCullAndOrder(tri, CounterClockwise); ok {
		t.Fatal("expected negative-area2 triangle to be culled under CounterClockwise winding")
	}
	if _, ok := backfaceCullAndOrder(tri, Clockwise); !ok {
		t.Fatal("negative-area2 triangle should survive Clockwise winding")
	}
}

func TestBackfaceCullAndOrderNeitherPassesThroughNegativeArea(t *testing.T) {
	tri := [3]varying.ProjectedFragment[varying.Empty]{projAt(0, 0), projAt(1, 0), projAt(0, 1)}
	out, ok := backfaceCullAndOrder(tri, NeitherWinding)
	if !ok {
		t.Fatal("NeitherWinding should never cull")
	}
	if out != tri {
		t.Fatalf("expected negative-area2 triangle passed through unswapped, got %+v", out)
	}
}

func TestBackfaceCullAndOrderNeitherSwapsPositiveArea(t *testing.T) {
	// area2 = Cross(p2-p0, p1-p0) = Cross((1,0),(0,1)) = 1 > 0.
	tri := [3]varying.ProjectedFragment[varying.Empty]{projAt(0, 0), projAt(0, 1), projAt(1, 0)}
	if triArea2(tri) <= 0 {
		t.Fatalf("fixture area2 = %v, want > 0", triArea2(tri))
	}
	out, ok := backfaceCullAndOrder(tri, NeitherWinding)
	if !ok {
		t.Fatal("NeitherWinding should never cull")
	}
	if triArea2(out) >= 0 {
		t.Fatalf("expected reordered triangle to have negative area2, got %v", triArea2(out))
	}
}
