package main

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mbrt/rasterkit/pkg/math3d"
	"github.com/mbrt/rasterkit/pkg/models"
	"github.com/mbrt/rasterkit/pkg/render"
	"github.com/mbrt/rasterkit/pkg/texture"
)

func newBenchCmd() *cobra.Command {
	var texturePath string
	var frames int
	var width, height int

	cmd := &cobra.Command{
		Use:   "bench <model.glb|model.gltf>",
		Short: "Render a fixed number of frames off-screen and report throughput",
		Long: "bench drives the same draw pipeline as view, but against an off-screen " +
			"framebuffer with no terminal I/O, to isolate the rasterizer's own cost.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
			return runBench(cmd.Context(), args[0], texturePath, frames, width, height)
		},
	}

	cmd.Flags().StringVarP(&texturePath, "texture", "t", "", "path to an explicit texture image (PNG/JPEG)")
	cmd.Flags().IntVarP(&frames, "frames", "n", 300, "number of frames to render")
	cmd.Flags().IntVar(&width, "width", 160, "framebuffer pixel width")
	cmd.Flags().IntVar(&height, "height", 100, "framebuffer pixel height")
	return cmd
}

func runBench(ctx context.Context, modelPath, texturePath string, frames, width, height int) error {
	a, err := loadAsset(ctx, modelPath, texturePath)
	if err != nil {
		return err
	}
	mesh := a.mesh
	sampler := texture.NewSampler(a.texture)

	fb := render.NewTerminalFramebuffer(width, height)
	camera := render.NewCamera()
	camera.SetAspectRatio(float64(width) / float64(height))
	camera.SetFOV(math.Pi / 3)
	camera.SetClipPlanes(0.1, 100)
	camera.SetPosition(math3d.V3(0, 0, 5))
	camera.LookAt(math3d.Zero3())

	r := render.NewRenderer(math3d.Vec2{X: -1, Y: -1}, math3d.Vec2{X: 1, Y: 1}, render.DefaultRendererOptions())
	prog := render.NewTexturedProgram(models.VertexExtract, sampler)
	buf := mesh.IndexedVertexBuffer()
	boundsMin, boundsMax := mesh.GetBounds()

	start := time.Now()
	culledFrames := 0
	for i := 0; i < frames; i++ {
		angle := float64(i) * 0.02
		world := math3d.RotateY(angle)
		viewProj := camera.ViewProjectionMatrix()
		fb.ClearDepth()

		worldBounds := render.TransformAABB(render.AABB{Min: boundsMin, Max: boundsMax}, world)
		if !render.ExtractFrustum(viewProj).IntersectsFrustum(worldBounds) {
			culledFrames++
			continue
		}

		uniforms := render.MeshUniforms{
			World:     world,
			ViewProj:  viewProj,
			LightDir:  math3d.V3(0.5, 1, 0.3).Normalize(),
			BaseColor: math3d.V3(1, 1, 1),
		}
		render.Draw[render.MeshUniforms, models.MeshVertex, render.MeshVarying, render.Color](r, prog, uniforms, buf, fb)
	}
	elapsed := time.Since(start)

	fps := float64(frames) / elapsed.Seconds()
	fmt.Printf("%d frames in %s (%.1f fps, %.2fms/frame) at %dx%d, %d triangles, %d culled\n",
		frames, elapsed.Round(time.Millisecond), fps, elapsed.Seconds()*1000/float64(frames),
		width, height, mesh.TriangleCount(), culledFrames)
	return nil
}
