package render

import "github.com/mbrt/rasterkit/pkg/math3d"

// screenMin and screenMax bound the fixed [-1,+1]^2 NDC screen AABB that
// pkg/clip's screen-plane tests clip against.
var (
	screenMin = math3d.Vec2{X: -1, Y: -1}
	screenMax = math3d.Vec2{X: 1, Y: 1}
)

// Renderer holds the state shared across draw calls: the viewport
// transform and the configured options. It owns no framebuffer; one is
// passed to each Draw call.
type Renderer struct {
	ScaleToViewport        math3d.Transform2D
	Options                RendererOptions
	RequiresScreenClipping bool
}

// NewRenderer builds a Renderer for a viewport occupying the sub-rectangle
// [viewportMin,viewportMax] of the [-1,+1]^2 NDC screen. The scale-to-
// viewport transform maps NDC into that sub-rectangle; screen clipping
// against the full screen AABB is skipped unless the viewport is a strict
// subset of it.
func NewRenderer(viewportMin, viewportMax math3d.Vec2, opts RendererOptions) *Renderer {
	size := viewportMax.Sub(viewportMin)
	scaleToViewport := math3d.Identity2D().
		Translate(viewportMin).
		Scale(size).
		Scale(math3d.Vec2{X: 0.5, Y: 0.5}).
		Translate(math3d.Vec2{X: 1, Y: 1})

	inside := viewportMin.X >= screenMin.X && viewportMin.Y >= screenMin.Y &&
		viewportMax.X <= screenMax.X && viewportMax.Y <= screenMax.Y
	requiresClip := inside && (viewportMin != screenMin || viewportMax != screenMax)

	return &Renderer{
		ScaleToViewport:        scaleToViewport,
		Options:                opts,
		RequiresScreenClipping: requiresClip,
	}
}
