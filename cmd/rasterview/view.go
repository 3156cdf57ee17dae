package main

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/spf13/cobra"

	"github.com/mbrt/rasterkit/pkg/math3d"
	"github.com/mbrt/rasterkit/pkg/models"
	"github.com/mbrt/rasterkit/pkg/render"
	"github.com/mbrt/rasterkit/pkg/texture"
)

func newViewCmd() *cobra.Command {
	var texturePath string
	var targetFPS int
	var bgColor string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "view <model.glb|model.gltf>",
		Short: "Open an interactive terminal view of a 3D model",
		Long: "view renders a glTF/GLB model in the terminal using the rasterizer core, " +
			"with mouse-drag rotation, scroll zoom, and toggleable wireframe/texture modes.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
			return runView(cmd.Context(), args[0], texturePath, targetFPS, bgColor)
		},
	}

	cmd.Flags().StringVarP(&texturePath, "texture", "t", "", "path to an explicit texture image (PNG/JPEG)")
	cmd.Flags().IntVar(&targetFPS, "fps", 60, "target frame rate")
	cmd.Flags().StringVar(&bgColor, "bg", "30,30,40", "background color as R,G,B")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log per-frame debug stats")
	return cmd
}

// rotationAxis tracks position and velocity for one rotation axis with
// spring-damped velocity decay, exactly the reference viewer's scheme.
type rotationAxis struct {
	Position  float64
	Velocity  float64
	velSpring harmonica.Spring
	velAccel  float64
}

func newRotationAxis(fps int) rotationAxis {
	return rotationAxis{velSpring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0)}
}

func (a *rotationAxis) Update() {
	a.Position += a.Velocity
	a.Velocity, a.velAccel = a.velSpring.Update(a.Velocity, a.velAccel, 0)
}

type rotationState struct {
	Pitch, Yaw, Roll rotationAxis
	fps              int
}

func newRotationState(fps int) *rotationState {
	return &rotationState{Pitch: newRotationAxis(fps), Yaw: newRotationAxis(fps), Roll: newRotationAxis(fps), fps: fps}
}

func (r *rotationState) Update() {
	r.Pitch.Update()
	r.Yaw.Update()
	r.Roll.Update()
}

func (r *rotationState) ApplyImpulse(pitch, yaw, roll float64) {
	r.Pitch.Velocity += pitch
	r.Yaw.Velocity += yaw
	r.Roll.Velocity += roll
}

func (r *rotationState) Reset() {
	*r = *newRotationState(r.fps)
}

type renderMode int

const (
	modeTextured renderMode = iota
	modeFlat
	modeWireframe
)

type viewState struct {
	TextureEnabled bool
	Mode           renderMode
	LightDir       math3d.Vec3
	ShowHUD        bool
}

func newViewState() *viewState {
	return &viewState{TextureEnabled: true, Mode: modeTextured, LightDir: math3d.V3(0.5, 1, 0.3).Normalize(), ShowHUD: true}
}

// hud renders a lipgloss-styled status line; the reference viewer hand-built
// the same information with raw ANSI escapes.
type hud struct {
	filename   string
	polyCount  int
	fps        float64
	fpsFrames  int
	fpsSince   time.Time
	culled     bool
	labelStyle lipgloss.Style
	valueStyle lipgloss.Style
}

func newHUD(filename string, polyCount int) *hud {
	return &hud{
		filename:  filename,
		polyCount: polyCount,
		fpsSince:  time.Now(),
		labelStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")),
		valueStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")),
	}
}

func (h *hud) tick() {
	h.fpsFrames++
	if elapsed := time.Since(h.fpsSince); elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsSince = time.Now()
	}
}

func (h *hud) line(v *viewState) string {
	mode := "textured"
	switch v.Mode {
	case modeFlat:
		mode = "flat"
	case modeWireframe:
		mode = "wireframe"
	}
	culled := ""
	if h.culled {
		culled = "  " + h.labelStyle.Render("culled")
	}
	return fmt.Sprintf(
		"%s %s  %s %s  %s %.0f  %s %d%s",
		h.labelStyle.Render("model"), h.valueStyle.Render(h.filename),
		h.labelStyle.Render("mode"), h.valueStyle.Render(mode),
		h.labelStyle.Render("fps"), h.fps,
		h.labelStyle.Render("polys"), h.polyCount,
		culled,
	)
}

// drawMeshWireframe draws a mesh's edges through w, applying world to each
// vertex before submission: Wireframe's own DrawLine3D only knows about the
// camera's view-projection, not a per-object world transform.
func drawMeshWireframe(w *render.Wireframe, mesh *models.Mesh, world math3d.Mat4, color render.Color) {
	for _, f := range mesh.Faces {
		v0 := world.MulVec3(mesh.Vertices[f.V[0]].Position)
		v1 := world.MulVec3(mesh.Vertices[f.V[1]].Position)
		v2 := world.MulVec3(mesh.Vertices[f.V[2]].Position)
		w.DrawLine3D(v0, v1, color)
		w.DrawLine3D(v1, v2, color)
		w.DrawLine3D(v2, v0, color)
	}
}

func screenToLightDir(x, y, width, height int) math3d.Vec3 {
	nx := (float64(x)/float64(width))*2 - 1
	ny := (float64(y)/float64(height))*2 - 1
	if lenSq := nx*nx + ny*ny; lenSq > 1 {
		l := math.Sqrt(lenSq)
		nx, ny = nx/l, ny/l
	}
	nz := math.Sqrt(math.Max(0, 1-(nx*nx+ny*ny)))
	return math3d.V3(nx, -ny, nz).Normalize()
}

func runView(ctx context.Context, modelPath, texturePath string, targetFPS int, bgColor string) error {
	var bgR, bgG, bgB uint8 = 30, 30, 40
	fmt.Sscanf(bgColor, "%d,%d,%d", &bgR, &bgG, &bgB)

	a, err := loadAsset(ctx, modelPath, texturePath)
	if err != nil {
		return err
	}
	mesh := a.mesh
	sampler := texture.NewSampler(a.texture)

	term := uv.DefaultTerminal()
	cols, rows, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(cols, rows)
	fmt.Fprint(os.Stdout, "\x1b[?1003h\x1b[?1006h")

	termRenderer := render.NewTerminalRenderer(term, cols, rows)
	fbWidth, fbHeight := termRenderer.FramebufferSize()
	fb := render.NewTerminalFramebuffer(fbWidth, fbHeight)

	camera := render.NewCamera()
	camera.SetAspectRatio(float64(fbWidth) / float64(fbHeight))
	camera.SetFOV(math.Pi / 3)
	camera.SetClipPlanes(0.1, 100)
	cameraZ := 5.0
	camera.SetPosition(math3d.V3(0, 0, cameraZ))
	camera.LookAt(math3d.Zero3())

	fullScreen := render.NewRenderer(math3d.Vec2{X: -1, Y: -1}, math3d.Vec2{X: 1, Y: 1}, render.DefaultRendererOptions())
	wireframe := render.NewWireframe(camera, fb)
	gouraudProg := render.NewGouraudProgram(models.VertexExtract)
	texturedProg := render.NewTexturedProgram(models.VertexExtract, sampler)

	boundsMin, boundsMax := mesh.GetBounds()

	h := newHUD(filepath.Base(modelPath), mesh.TriangleCount())
	rotation := newRotationState(targetFPS)
	view := newViewState()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() { <-sigCh; cancel() }()

	var inputTorque struct{ pitch, yaw, roll float64 }
	const torqueStrength = 3.0
	var mouseDown bool
	var lastMouseX, lastMouseY int

	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				cols, rows = ev.Width, ev.Height
				term.Erase()
				term.Resize(cols, rows)
				termRenderer = render.NewTerminalRenderer(term, cols, rows)
				fbWidth, fbHeight = termRenderer.FramebufferSize()
				fb = render.NewTerminalFramebuffer(fbWidth, fbHeight)
				wireframe = render.NewWireframe(camera, fb)
				camera.SetAspectRatio(float64(fbWidth) / float64(fbHeight))

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape"), ev.MatchString("ctrl+c"):
					cancel()
					return
				case ev.MatchString("r"):
					rotation.Reset()
					cameraZ = 5.0
					camera.SetPosition(math3d.V3(0, 0, cameraZ))
				case ev.MatchString("w", "up"):
					inputTorque.pitch = -torqueStrength
				case ev.MatchString("s", "down"):
					inputTorque.pitch = torqueStrength
				case ev.MatchString("a", "left"):
					inputTorque.yaw = -torqueStrength
				case ev.MatchString("d", "right"):
					inputTorque.yaw = torqueStrength
				case ev.MatchString("q"):
					inputTorque.roll = -torqueStrength
				case ev.MatchString("e"):
					inputTorque.roll = torqueStrength
				case ev.MatchString("space"):
					rotation.ApplyImpulse((rand.Float64()-0.5)*1.5, (rand.Float64()-0.5)*1.5, (rand.Float64()-0.5)*1.5)
				case ev.MatchString("+", "="):
					cameraZ = math.Max(1, cameraZ-0.5)
					camera.SetPosition(math3d.V3(0, 0, cameraZ))
				case ev.MatchString("-", "_"):
					cameraZ = math.Min(20, cameraZ+0.5)
					camera.SetPosition(math3d.V3(0, 0, cameraZ))
				case ev.MatchString("t"):
					view.TextureEnabled = !view.TextureEnabled
				case ev.MatchString("x"):
					if view.Mode == modeWireframe {
						view.Mode = modeTextured
					} else {
						view.Mode = modeWireframe
					}
				case ev.MatchString("?"), ev.MatchString("shift+/"):
					view.ShowHUD = !view.ShowHUD
				}

			case uv.KeyReleaseEvent:
				switch {
				case ev.MatchString("w"), ev.MatchString("up"), ev.MatchString("s"), ev.MatchString("down"):
					inputTorque.pitch = 0
				case ev.MatchString("a"), ev.MatchString("left"), ev.MatchString("d"), ev.MatchString("right"):
					inputTorque.yaw = 0
				case ev.MatchString("q"), ev.MatchString("e"):
					inputTorque.roll = 0
				}

			case uv.MouseClickEvent:
				mouseDown = true
				lastMouseX, lastMouseY = ev.X, ev.Y

			case uv.MouseReleaseEvent:
				mouseDown = false

			case uv.MouseMotionEvent:
				if mouseDown {
					dx, dy := ev.X-lastMouseX, ev.Y-lastMouseY
					rotation.ApplyImpulse(float64(dy)*0.03, float64(dx)*0.03, 0)
					lastMouseX, lastMouseY = ev.X, ev.Y
				}

			case uv.MouseWheelEvent:
				switch ev.Button {
				case uv.MouseWheelUp:
					cameraZ = math.Max(1, cameraZ-0.5)
				case uv.MouseWheelDown:
					cameraZ = math.Min(20, cameraZ+0.5)
				}
				camera.SetPosition(math3d.V3(0, 0, cameraZ))
			}
		}
	}()

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	targetDuration := time.Second / time.Duration(targetFPS)
	lastFrame := time.Now()

	for {
		select {
		case <-runCtx.Done():
			cleanup()
			return nil
		default:
		}

		now := time.Now()
		dt := now.Sub(lastFrame).Seconds()
		lastFrame = now
		if dt > 0.1 {
			dt = 0.1
		}

		rotation.ApplyImpulse(inputTorque.pitch*dt, inputTorque.yaw*dt, inputTorque.roll*dt)
		inputTorque.pitch *= 0.9
		inputTorque.yaw *= 0.9
		inputTorque.roll *= 0.9
		rotation.Update()

		world := math3d.RotateX(rotation.Pitch.Position).
			Mul(math3d.RotateY(rotation.Yaw.Position)).
			Mul(math3d.RotateZ(rotation.Roll.Position))

		fb.Pixels.Clear(render.RGB(bgR, bgG, bgB))
		fb.ClearDepth()

		viewProj := camera.ViewProjectionMatrix()
		worldBounds := render.TransformAABB(render.AABB{Min: boundsMin, Max: boundsMax}, world)
		culled := !render.ExtractFrustum(viewProj).IntersectsFrustum(worldBounds)

		uniforms := render.MeshUniforms{
			World:     world,
			ViewProj:  viewProj,
			LightDir:  view.LightDir,
			BaseColor: math3d.V3(200.0/255, 200.0/255, 200.0/255),
		}

		if !culled {
			switch view.Mode {
			case modeWireframe:
				drawMeshWireframe(wireframe, mesh, world, render.RGB(0, 255, 128))
			case modeFlat:
				render.Draw[render.MeshUniforms, models.MeshVertex, render.MeshVarying, render.Color](
					fullScreen, gouraudProg, uniforms, mesh.IndexedVertexBuffer(), fb)
			default:
				if view.TextureEnabled {
					render.Draw[render.MeshUniforms, models.MeshVertex, render.MeshVarying, render.Color](
						fullScreen, texturedProg, uniforms, mesh.IndexedVertexBuffer(), fb)
				} else {
					render.Draw[render.MeshUniforms, models.MeshVertex, render.MeshVarying, render.Color](
						fullScreen, gouraudProg, uniforms, mesh.IndexedVertexBuffer(), fb)
				}
			}
		}
		h.culled = culled

		termRenderer.Render(fb)
		if err := termRenderer.Flush(); err != nil {
			cleanup()
			return fmt.Errorf("flush: %w", err)
		}

		h.tick()
		if view.ShowHUD {
			fmt.Printf("\x1b[%d;1H\x1b[2K%s", rows, h.line(view))
		}

		slog.Debug("frame", "fps", h.fps, "mode", view.Mode)

		if elapsed := time.Since(now); elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}
