package render

import "github.com/mbrt/rasterkit/pkg/raster"

// WindingOrder selects which triangle winding is front-facing, or accepts
// both (disabling backface culling).
type WindingOrder int

const (
	Clockwise WindingOrder = iota
	CounterClockwise
	NeitherWinding
)

// RendererOptions configures the draw pipeline: winding/culling, triangle
// fill tie-break, line direction/endpoint conventions, and whether
// attribute interpolation corrects for perspective.
type RendererOptions struct {
	WindingOrder         WindingOrder
	TriangleFillBias     raster.TriangleFillBias
	LineDrawingDirection raster.LineDrawingDirection
	LineEndsInclusion    raster.LineEndsInclusion
	PerspectiveCorrect   bool
}

// DefaultRendererOptions mirrors the reference library's defaults: no
// forced winding, top-left fill bias, downward line walk, both endpoints
// included, perspective-correct interpolation on.
func DefaultRendererOptions() RendererOptions {
	return RendererOptions{
		WindingOrder:         NeitherWinding,
		TriangleFillBias:     raster.TopLeft,
		LineDrawingDirection: raster.Downwards,
		LineEndsInclusion:    raster.IncludeBoth,
		PerspectiveCorrect:   true,
	}
}
