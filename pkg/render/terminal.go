package render

import (
	"image/color"
	"math"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/mbrt/rasterkit/pkg/math3d"
)

// TerminalFramebuffer is a Framebuffer[color.RGBA] backed by a PixelBuffer
// plus a parallel depth buffer, sized for half-block terminal output: its
// pixel height is twice the terminal row count it is drawn into.
type TerminalFramebuffer struct {
	Pixels *PixelBuffer
	depth  []math3d.Float

	screenToWindow math3d.Transform2D
}

// NewTerminalFramebuffer builds a TerminalFramebuffer of the given pixel
// dimensions, with the depth buffer cleared to +Inf (worse than any valid
// reverse-Z depth) and the screen-to-window map set for a full NDC [-1,1]^2
// viewport onto [0,width-1]x[0,height-1].
func NewTerminalFramebuffer(width, height int) *TerminalFramebuffer {
	fb := &TerminalFramebuffer{
		Pixels: NewPixelBuffer(width, height),
		depth:  make([]math3d.Float, width*height),
	}
	fb.screenToWindow = screenToWindowTransform(width, height)
	fb.ClearDepth()
	return fb
}

func screenToWindowTransform(width, height int) math3d.Transform2D {
	sx := math3d.Float(width-1) / 2
	sy := math3d.Float(height-1) / 2
	return math3d.Transform2D{Mat: math3d.Affine2{A: sx, D: sy, Tx: sx, Ty: sy}}
}

// ClearDepth resets every depth sample to +Inf, so the next frame's first
// write at any pixel always wins the reverse-Z test.
func (fb *TerminalFramebuffer) ClearDepth() {
	for i := range fb.depth {
		fb.depth[i] = math3d.Float(math.Inf(1))
	}
}

func (fb *TerminalFramebuffer) index(pos math3d.IVec2) (int, bool) {
	x, y := int(pos.X), int(pos.Y)
	if x < 0 || x >= fb.Pixels.Width || y < 0 || y >= fb.Pixels.Height {
		return 0, false
	}
	return y*fb.Pixels.Width + x, true
}

// TestAndSetDepth implements render.Framebuffer: reverse-Z, smaller wins.
func (fb *TerminalFramebuffer) TestAndSetDepth(pos math3d.IVec2, depth math3d.Float) bool {
	i, ok := fb.index(pos)
	if !ok {
		return false
	}
	if depth < fb.depth[i] {
		fb.depth[i] = depth
		return true
	}
	return false
}

// Plot implements render.Framebuffer by writing into the backing PixelBuffer.
func (fb *TerminalFramebuffer) Plot(pos math3d.IVec2, c color.RGBA) {
	fb.Pixels.SetPixel(int(pos.X), int(pos.Y), c)
}

// ScreenToWindow implements render.Framebuffer.
func (fb *TerminalFramebuffer) ScreenToWindow() math3d.Transform2D {
	return fb.screenToWindow
}

// Bounds implements render.Framebuffer.
func (fb *TerminalFramebuffer) Bounds() (math3d.IVec2, math3d.IVec2) {
	return math3d.IVec2{X: 0, Y: 0}, math3d.IVec2{X: math3d.Int(fb.Pixels.Width - 1), Y: math3d.Int(fb.Pixels.Height - 1)}
}

// Draw converts the pixel buffer to terminal cells and draws them on the
// screen. It delegates to the backing PixelBuffer.
func (fb *TerminalFramebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	fb.Pixels.Draw(scr, area)
}

// TerminalRenderer sizes a TerminalFramebuffer for half-block output to a
// uv.Terminal and pushes completed frames to it. Each terminal row holds two
// framebuffer rows (upper/lower half block), so FramebufferSize reports
// double the terminal's row count.
type TerminalRenderer struct {
	term    *uv.Terminal
	cols    int
	rows    int
	pending *TerminalFramebuffer
}

// NewTerminalRenderer builds a TerminalRenderer for a terminal of the given
// size in columns and rows.
func NewTerminalRenderer(term *uv.Terminal, cols, rows int) *TerminalRenderer {
	return &TerminalRenderer{term: term, cols: cols, rows: rows}
}

// FramebufferSize returns the pixel dimensions a TerminalFramebuffer must
// use to fill this renderer's viewport.
func (r *TerminalRenderer) FramebufferSize() (width, height int) {
	return r.cols, r.rows * 2
}

// Render stages fb as the next frame to push to the terminal.
func (r *TerminalRenderer) Render(fb *TerminalFramebuffer) {
	r.pending = fb
}

// Flush draws the staged frame's cells into the terminal and repaints it.
func (r *TerminalRenderer) Flush() error {
	if r.pending == nil {
		return nil
	}
	r.pending.Draw(r.term, uv.Rectangle{Max: uv.Position{X: r.cols, Y: r.rows}})
	return r.term.Render()
}

// Draw converts the pixel buffer to terminal cells and draws them on the
// screen.
// The buffer height should be 2x the terminal height.
func (r *PixelBuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	// Each terminal row represents 2 framebuffer rows
	// We use ▀ (upper half block) with fg=top color and bg=bottom color

	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := row * 2
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X && col < r.Width; col++ {
			topColor := r.GetPixel(col, topY)
			botColor := r.GetPixel(col, botY)

			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: rgbaToColor(topColor),
					Bg: rgbaToColor(botColor),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// rgbaToColor converts color.RGBA to Go's color.Color interface.
func rgbaToColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil // Transparent = no color
	}
	return c
}

// Color is an alias for color.RGBA for convenience.
type Color = color.RGBA

// Colors for convenience
var (
	ColorBlack   = color.RGBA{0, 0, 0, 255}
	ColorWhite   = color.RGBA{255, 255, 255, 255}
	ColorRed     = color.RGBA{255, 0, 0, 255}
	ColorGreen   = color.RGBA{0, 255, 0, 255}
	ColorBlue    = color.RGBA{0, 0, 255, 255}
	ColorYellow  = color.RGBA{255, 255, 0, 255}
	ColorCyan    = color.RGBA{0, 255, 255, 255}
	ColorMagenta = color.RGBA{255, 0, 255, 255}
	ColorGray    = color.RGBA{128, 128, 128, 255}
	ColorSky     = color.RGBA{135, 206, 235, 255}
	ColorGrass   = color.RGBA{34, 139, 34, 255}
	ColorRoad    = color.RGBA{64, 64, 64, 255}
)

// RGB creates a color from RGB values.
func RGB(r, g, b uint8) color.RGBA {
	return color.RGBA{r, g, b, 255}
}

// RGBA creates a color from RGBA values.
func RGBA(r, g, b, a uint8) color.RGBA {
	return color.RGBA{r, g, b, a}
}
