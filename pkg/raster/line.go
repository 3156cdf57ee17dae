// Package raster implements the DDA line walk and the incremental
// edge-function triangle walk, the core's two primitive-to-fragment
// conversions.
package raster

import (
	"math"

	"github.com/mbrt/rasterkit/pkg/math3d"
	"github.com/mbrt/rasterkit/pkg/varying"
)

// LineEndsInclusion configures whether the line walk's first/last samples
// are eligible for plotting.
type LineEndsInclusion int

const (
	ExcludeBoth LineEndsInclusion = iota
	IncludeStart
	IncludeEnd
	IncludeBoth
)

// LineDrawingDirection is the canonical walk direction; if the segment's
// actual delta disagrees with it along the governing axis, the endpoints
// are swapped before walking, guaranteeing identical output regardless of
// input order (invariant 5).
type LineDrawingDirection int

const (
	Upwards LineDrawingDirection = iota
	Downwards
	Leftwards
	Rightwards
)

// LineSample is one fragment emitted by the line walk, tagged with its
// window-space integer position and whether it is a helper invocation
// (never independently plotted).
type LineSample[V varying.Varying[V]] struct {
	Frag   varying.ProjectedFragment[V]
	Window math3d.IVec2
	Helper bool
}

func canonicalize[V varying.Varying[V]](p0, p1 varying.ProjectedFragment[V], dir LineDrawingDirection) (varying.ProjectedFragment[V], varying.ProjectedFragment[V]) {
	delta := p1.Pos.Sub(p0.Pos)
	var governing math3d.Float
	var wantPositive bool
	switch dir {
	case Leftwards:
		governing, wantPositive = delta.X, false
	case Rightwards:
		governing, wantPositive = delta.X, true
	case Upwards:
		governing, wantPositive = delta.Y, false
	default: // Downwards
		governing, wantPositive = delta.Y, true
	}
	actualPositive := governing >= 0
	if governing != 0 && actualPositive != wantPositive {
		return p1, p0
	}
	return p0, p1
}

// RasterizeLine walks the DDA line from p0 to p1 (already in window space),
// calling emit once per step with the current sample and a 1-ahead lookahead
// sample for line derivatives. perspectiveCorrect selects whether attribute
// interpolation along the walk corrects for perspective via ZInv.
func RasterizeLine[V varying.Varying[V]](
	p0, p1 varying.ProjectedFragment[V],
	dir LineDrawingDirection,
	inclusion LineEndsInclusion,
	perspectiveCorrect bool,
	emit func(cur, next LineSample[V]),
) {
	p0, p1 = canonicalize(p0, p1, dir)

	dx := p1.Pos.X - p0.Pos.X
	dy := p1.Pos.Y - p0.Pos.Y
	length := math.Max(math.Abs(dx), math.Abs(dy))
	steps := int(math3d.RoundHalfAwayFromZero(length))
	if steps < 0 {
		steps = 0
	}

	includeStart := inclusion == IncludeStart || inclusion == IncludeBoth
	includeEnd := inclusion == IncludeEnd || inclusion == IncludeBoth

	sampleAt := func(i int) varying.ProjectedFragment[V] {
		if steps == 0 {
			return p0
		}
		t := math3d.Float(i) / math3d.Float(steps)
		tAttr := t
		if perspectiveCorrect && t >= 0 && t <= 1 {
			tAttr = varying.PerspectiveCorrectedT(p0.ZInv, p1.ZInv, t)
		}
		pos := p0.Pos.Lerp(p1.Pos, t)
		depth := math3d.LerpScalar(p0.Depth, p1.Depth, t)
		zInv := math3d.LerpScalar(p0.ZInv, p1.ZInv, t)
		attrs := p0.Attrs.Scale(1 - tAttr).Add(p1.Attrs.Scale(tAttr))
		return varying.ProjectedFragment[V]{Pos: pos, Depth: depth, ZInv: zInv, Attrs: attrs}
	}

	toWindow := func(f varying.ProjectedFragment[V]) math3d.IVec2 {
		r := f.Pos.Round()
		return math3d.IVec2{X: math3d.Int(r.X), Y: math3d.Int(r.Y)}
	}

	for i := 0; i <= steps; i++ {
		curHelper := (i == 0 && !includeStart) || (i == steps && !includeEnd)
		curFrag := sampleAt(i)
		nextFrag := sampleAt(i + 1)
		emit(
			LineSample[V]{Frag: curFrag, Window: toWindow(curFrag), Helper: curHelper},
			LineSample[V]{Frag: nextFrag, Window: toWindow(nextFrag), Helper: true},
		)
	}
}
