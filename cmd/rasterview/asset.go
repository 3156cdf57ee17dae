package main

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/mbrt/rasterkit/pkg/math3d"
	"github.com/mbrt/rasterkit/pkg/models"
	"github.com/mbrt/rasterkit/pkg/texture"
)

// asset bundles a loaded mesh with its texture (either embedded in the
// glTF/GLB document or supplied separately on the command line).
type asset struct {
	mesh    *models.Mesh
	texture *texture.Texture
}

// loadAsset loads modelPath's mesh and, if texturePath is set, an explicit
// texture, concurrently: the two decodes share no state and neither is on
// the per-frame draw path, so there's nothing to lose by overlapping them.
func loadAsset(ctx context.Context, modelPath, texturePath string) (*asset, error) {
	ext := strings.ToLower(filepath.Ext(modelPath))
	if ext != ".glb" && ext != ".gltf" {
		return nil, fmt.Errorf("load asset: unsupported model format %q (use .glb or .gltf)", ext)
	}

	g, _ := errgroup.WithContext(ctx)
	var mesh *models.Mesh
	var embedded image.Image
	var explicitTex *texture.Texture

	g.Go(func() error {
		m, img, err := models.LoadGLBWithTexture(modelPath)
		if err != nil {
			return fmt.Errorf("load mesh: %w", err)
		}
		mesh, embedded = m, img
		return nil
	})
	if texturePath != "" {
		g.Go(func() error {
			t, err := texture.Load(texturePath)
			if err != nil {
				return fmt.Errorf("load texture: %w", err)
			}
			explicitTex = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	tex := explicitTex
	switch {
	case tex != nil:
		slog.Info("using explicit texture", "path", texturePath)
	case embedded != nil:
		tex = texture.FromImage(embedded)
		slog.Info("using embedded texture", "width", tex.Width(), "height", tex.Height())
	default:
		tex = checkerTexture(64, 64, 8)
		slog.Info("no texture found, using checker fallback")
	}
	tex.GenerateMipmaps()

	mesh.CalculateBounds()
	center := mesh.Center()
	size := mesh.Size()
	maxDim := size.X
	if size.Y > maxDim {
		maxDim = size.Y
	}
	if size.Z > maxDim {
		maxDim = size.Z
	}
	if maxDim > 0 {
		scale := 2.0 / maxDim
		transform := math3d.Scale(math3d.V3(scale, scale, scale)).Mul(math3d.Translate(center.Negate()))
		mesh.Transform(transform)
	}

	slog.Info("loaded model", "path", filepath.Base(modelPath),
		"vertices", mesh.VertexCount(), "triangles", mesh.TriangleCount())

	return &asset{mesh: mesh, texture: tex}, nil
}

// checkerTexture builds a procedural dark/light gray checkerboard, used when a
// model has neither an embedded nor an explicit texture.
func checkerTexture(width, height, cell int) *texture.Texture {
	pixels := make([]math3d.Vec4, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			light := (x/cell+y/cell)%2 == 0
			v := 0.3
			if light {
				v = 0.8
			}
			pixels[y*width+x] = math3d.Vec4{X: v, Y: v, Z: v, W: 1}
		}
	}
	return texture.New(width, height, pixels)
}
