// Package texture implements the mipmapped texture and its sampler, the
// core's only built-in user-facing shader helper.
package texture

import (
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"os"

	"github.com/mbrt/rasterkit/pkg/math3d"
)

// mipLevel is one level of a texture's mip chain: width*height RGBA pixels
// in [0,1], row-major.
type mipLevel struct {
	width, height int
	pixels        []math3d.Vec4
}

func (m mipLevel) at(x, y int) math3d.Vec4 {
	return m.pixels[y*m.width+x]
}

// Texture holds a base image plus, once built, its mip chain.
type Texture struct {
	mips []mipLevel
}

// New wraps a base RGBA image (row-major, [0,1] components) as a Texture
// with only mip level 0 populated; call GenerateMipmaps before sampling
// with a nonzero LOD.
func New(width, height int, pixels []math3d.Vec4) *Texture {
	if len(pixels) != width*height {
		panic(fmt.Sprintf("texture: got %d pixels, want %d for %dx%d", len(pixels), width*height, width, height))
	}
	return &Texture{mips: []mipLevel{{width: width, height: height, pixels: pixels}}}
}

// Load decodes an image file (PNG or JPEG) into a base-level Texture.
func Load(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("texture: open %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", path, err)
	}
	return FromImage(img), nil
}

// FromImage converts a decoded image.Image into a base-level Texture.
func FromImage(img image.Image) *Texture {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]math3d.Vec4, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			pixels[y*w+x] = math3d.Vec4{
				X: float64(r) / 65535,
				Y: float64(g) / 65535,
				Z: float64(b) / 65535,
				W: float64(a) / 65535,
			}
		}
	}
	return New(w, h, pixels)
}

// Width and Height report the base level's dimensions.
func (t *Texture) Width() int  { return t.mips[0].width }
func (t *Texture) Height() int { return t.mips[0].height }

// MipmapsGenerated reports whether GenerateMipmaps has been called.
func (t *Texture) MipmapsGenerated() bool { return len(t.mips) > 1 }

// levels returns the number of mip levels (at least 1).
func (t *Texture) levels() int { return len(t.mips) }

// GenerateMipmaps builds the full chain down to a 1x1 level, each level a
// 2x2 box downsample of the previous one (floor-divided dimensions,
// clamped to a minimum of 1).
func (t *Texture) GenerateMipmaps() {
	t.mips = t.mips[:1]
	for {
		prev := t.mips[len(t.mips)-1]
		if prev.width == 1 && prev.height == 1 {
			return
		}
		w := prev.width / 2
		if w < 1 {
			w = 1
		}
		h := prev.height / 2
		if h < 1 {
			h = 1
		}
		next := mipLevel{width: w, height: h, pixels: make([]math3d.Vec4, w*h)}
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				next.pixels[y*w+x] = boxDownsample(prev, x, y)
			}
		}
		t.mips = append(t.mips, next)
	}
}

// boxDownsample reduces the up-to-4 source texels covering destination
// texel (x,y), clamping source coordinates that run past the edge for
// odd-sized source levels. RGB is alpha-weighted (rgb_out = Σrgb·a / Σa,
// falling back to a plain average when Σa is zero) and alpha is a plain
// average, matching premultiplied-alpha mip generation.
func boxDownsample(src mipLevel, x, y int) math3d.Vec4 {
	x0, y0 := x*2, y*2
	x1, y1 := x0+1, y0+1
	if x1 >= src.width {
		x1 = src.width - 1
	}
	if y1 >= src.height {
		y1 = src.height - 1
	}
	texels := [4]math3d.Vec4{src.at(x0, y0), src.at(x1, y0), src.at(x0, y1), src.at(x1, y1)}

	var rgbWeighted math3d.Vec3
	var alphaSum float64
	for _, t := range texels {
		rgbWeighted = rgbWeighted.Add(math3d.V3(t.X, t.Y, t.Z).Scale(t.W))
		alphaSum += t.W
	}

	var rgb math3d.Vec3
	if alphaSum > 0 {
		rgb = rgbWeighted.Scale(1 / alphaSum)
	} else {
		for _, t := range texels {
			rgb = rgb.Add(math3d.V3(t.X, t.Y, t.Z))
		}
		rgb = rgb.Scale(0.25)
	}
	return math3d.Vec4{X: rgb.X, Y: rgb.Y, Z: rgb.Z, W: alphaSum / 4}
}
