package raster

import (
	"math"

	"github.com/mbrt/rasterkit/pkg/math3d"
	"github.com/mbrt/rasterkit/pkg/varying"
)

// TriangleFillBias selects which diagonal of shared edges gets the
// top-left fill-rule bias.
type TriangleFillBias int

const (
	TopLeft TriangleFillBias = iota
	BottomRight
	Neither
)

// QuadSample is one of the four lanes of a 2x2 rasterized block.
type QuadSample[V varying.Varying[V]] struct {
	Frag     varying.ProjectedFragment[V]
	Window   math3d.IVec2
	Inside   bool // pixel centre lies inside the triangle's edge functions
	InBounds bool // pixel lies within the destination rectangle
	Helper   bool // not independently plotted: !Inside || !InBounds
	Weights  [3]math3d.Float
}

// isTopLeftEdge implements the rasterizer's top-left tie-break: an edge is
// top-left iff it is horizontal and points right, or it points "up"
// (positive y in the edge-function's coordinate convention).
func isTopLeftEdge(edge math3d.Vec2) bool {
	return (edge.Y == 0 && edge.X > 0) || edge.Y > 0
}

func edgeBias(edge math3d.Vec2, fillBias TriangleFillBias) math3d.Float {
	switch fillBias {
	case Neither:
		return 0
	case BottomRight:
		if !isTopLeftEdge(edge) {
			return 0
		}
		return -1
	default: // TopLeft
		if isTopLeftEdge(edge) {
			return 0
		}
		return -1
	}
}

// RasterizeTriangle walks the integer bounding box of a window-space
// triangle in 2x2 blocks using incremental edge functions, emitting one
// quad per block that contains at least one covered lane. bounds is the inclusive [min,max] pixel rectangle of the
// destination framebuffer; lanes outside it are marked Helper and never
// independently plotted.
func RasterizeTriangle[V varying.Varying[V]](
	v0, v1, v2 varying.ProjectedFragment[V],
	fillBias TriangleFillBias,
	perspectiveCorrect bool,
	boundsMin, boundsMax math3d.IVec2,
	emit func(quad [4]QuadSample[V]),
) {
	p0, p1, p2 := v0.Pos, v1.Pos, v2.Pos

	e12 := p2.Sub(p1)
	e20 := p0.Sub(p2)
	e01 := p1.Sub(p0)

	area2 := e01.Cross(p2.Sub(p0))
	if area2 == 0 {
		return
	}

	bias0 := edgeBias(e12, fillBias)
	bias1 := edgeBias(e20, fillBias)
	bias2 := edgeBias(e01, fillBias)

	minXf := math.Min(p0.X, math.Min(p1.X, p2.X))
	maxXf := math.Max(p0.X, math.Max(p1.X, p2.X))
	minYf := math.Min(p0.Y, math.Min(p1.Y, p2.Y))
	maxYf := math.Max(p0.Y, math.Max(p1.Y, p2.Y))

	ix0 := int(math.Floor(minXf - 0.5))
	ix1 := int(math.Ceil(maxXf - 0.5))
	iy0 := int(math.Floor(minYf - 0.5))
	iy1 := int(math.Ceil(maxYf - 0.5))

	if ix0 < int(boundsMin.X) {
		ix0 = int(boundsMin.X)
	}
	if iy0 < int(boundsMin.Y) {
		iy0 = int(boundsMin.Y)
	}
	if ix1 > int(boundsMax.X) {
		ix1 = int(boundsMax.X)
	}
	if iy1 > int(boundsMax.Y) {
		iy1 = int(boundsMax.Y)
	}
	if ix0 > ix1 || iy0 > iy1 {
		return
	}
	// Align the block grid so 2x2 blocks are stable across draw calls.
	ix0 -= ix0 & 1
	iy0 -= iy0 & 1

	edgeFn := func(edge, src, p math3d.Vec2) math3d.Float {
		return edge.X*(p.Y-src.Y) - edge.Y*(p.X-src.X)
	}

	lane := func(px, py int) QuadSample[V] {
		inBounds := px >= int(boundsMin.X) && px <= int(boundsMax.X) && py >= int(boundsMin.Y) && py <= int(boundsMax.Y)
		p := math3d.Vec2{X: float64(px) + 0.5, Y: float64(py) + 0.5}
		w0 := edgeFn(e12, p1, p) + bias0
		w1 := edgeFn(e20, p2, p) + bias1
		w2 := edgeFn(e01, p0, p) + bias2

		var inside bool
		if area2 > 0 {
			inside = w0 >= 0 && w1 >= 0 && w2 >= 0
		} else {
			inside = w0 <= 0 && w1 <= 0 && w2 <= 0
		}

		b0, b1, b2 := w0/area2, w1/area2, w2/area2

		// Attributes are always extrapolated, even for a lane that will
		// never be plotted (outside the triangle or the destination
		// rectangle): a neighbouring covered lane may still need it to
		// compute its own quad derivative.
		depth := varying.BarycentricScalar(v0.Depth, v1.Depth, v2.Depth, b0, b1, b2)
		zInv := varying.BarycentricScalar(v0.ZInv, v1.ZInv, v2.ZInv, b0, b1, b2)
		attrs := varying.Barycentric(v0, v1, v2, b0, b1, b2, perspectiveCorrect)
		frag := varying.ProjectedFragment[V]{Pos: p, Depth: depth, ZInv: zInv, Attrs: attrs}

		return QuadSample[V]{
			Frag:     frag,
			Window:   math3d.IVec2{X: math3d.Int(px), Y: math3d.Int(py)},
			Inside:   inside,
			InBounds: inBounds,
			Helper:   !inside || !inBounds,
			Weights:  [3]math3d.Float{b0, b1, b2},
		}
	}

	for by := iy0; by <= iy1; by += 2 {
		for bx := ix0; bx <= ix1; bx += 2 {
			quad := [4]QuadSample[V]{
				lane(bx, by),
				lane(bx+1, by),
				lane(bx, by+1),
				lane(bx+1, by+1),
			}
			if !quad[0].Inside && !quad[1].Inside && !quad[2].Inside && !quad[3].Inside {
				continue
			}
			emit(quad)
		}
	}
}
