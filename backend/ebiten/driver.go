// Package ebiten runs an Application in an ebiten window: it feeds keyboard,
// mouse and window events into the world and draws the render system's
// drawables.
package ebiten

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rotisserie/eris"

	"github.com/plus3/kite/app"
	"github.com/plus3/kite/ecs"
	"github.com/plus3/kite/input"
	"github.com/plus3/kite/render"
)

// Overlay is drawn over every frame, such as the Dear ImGui debug overlay.
type Overlay interface {
	BeginFrame()
	EndFrame()
	Draw(screen *ebiten.Image)
	Resize(width, height int)
}

// Driver implements app.Driver and ebiten.Game.
type Driver struct {
	// Overlay is optional.
	Overlay Overlay

	cfg      app.Config
	host     app.Host
	renderer *Renderer
	frame    app.FrameFunc
	last     time.Time

	keys             []ebiten.Key
	cursorX, cursorY int
	width, height    int
}

func New() *Driver {
	return &Driver{}
}

func (d *Driver) Start(cfg app.Config, host app.Host) error {
	if cfg.LogicalWidth <= 0 || cfg.LogicalHeight <= 0 {
		return eris.Errorf("invalid logical size %dx%d", cfg.LogicalWidth, cfg.LogicalHeight)
	}

	d.cfg = cfg
	d.host = host
	d.renderer = NewRenderer(host.Assets())
	d.renderer.Clear = cfg.ClearColor

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.WindowWidth, cfg.WindowHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(cfg.Fullscreen)
	if cfg.TargetFPS > 0 {
		ebiten.SetTPS(cfg.TargetFPS)
	} else {
		ebiten.SetTPS(ebiten.SyncWithFPS)
	}
	return nil
}

func (d *Driver) Renderer() render.Renderer {
	return d.renderer
}

func (d *Driver) SetFullscreen(fullscreen bool) {
	ebiten.SetFullscreen(fullscreen)
}

// Loop blocks in ebiten.RunGame until frame stops the application.
func (d *Driver) Loop(frame app.FrameFunc) error {
	d.frame = frame
	d.last = time.Now()
	if err := ebiten.RunGame(d); err != nil {
		return eris.Wrap(err, "ebiten")
	}
	return nil
}

func (d *Driver) Close() error {
	return nil
}

func (d *Driver) Update() error {
	now := time.Now()
	dt := now.Sub(d.last)
	d.last = now

	d.pollInput()

	if d.Overlay != nil {
		d.Overlay.BeginFrame()
	}
	running, err := d.frame(dt)
	if d.Overlay != nil {
		d.Overlay.EndFrame()
	}

	if err != nil {
		return err
	}
	if !running {
		return ebiten.Termination
	}
	return nil
}

func (d *Driver) Draw(screen *ebiten.Image) {
	d.renderer.Draw(screen)
	if d.Overlay != nil {
		d.Overlay.Draw(screen)
	}
}

// Layout keeps the screen at the logical size; ebiten scales it into the
// window with letterboxing, so cursor positions arrive in logical units.
func (d *Driver) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != d.width || outsideHeight != d.height {
		d.width, d.height = outsideWidth, outsideHeight
		d.host.Emit(ecs.WindowResized{
			Width:  outsideWidth,
			Height: outsideHeight,
			Logical: ecs.Viewport{
				Width:  float32(d.cfg.LogicalWidth),
				Height: float32(d.cfg.LogicalHeight),
			},
		})
	}

	if d.Overlay != nil {
		d.Overlay.Resize(d.cfg.LogicalWidth, d.cfg.LogicalHeight)
	}
	return d.cfg.LogicalWidth, d.cfg.LogicalHeight
}

func (d *Driver) pollInput() {
	mod := heldModifiers()

	d.keys = inpututil.AppendJustPressedKeys(d.keys[:0])
	for _, key := range d.keys {
		if code := KeyCode(key); code != input.KeyUnknown {
			d.host.Emit(ecs.KeyDown{KeyModifier: input.Key(code, mod)})
		}
	}

	d.keys = inpututil.AppendJustReleasedKeys(d.keys[:0])
	for _, key := range d.keys {
		if code := KeyCode(key); code != input.KeyUnknown {
			d.host.Emit(ecs.KeyUp{KeyModifier: input.Key(code, mod)})
		}
	}

	x, y := ebiten.CursorPosition()
	if x != d.cursorX || y != d.cursorY {
		d.host.Emit(ecs.MouseMoved{
			X:  float32(x),
			Y:  float32(y),
			DX: float32(x - d.cursorX),
			DY: float32(y - d.cursorY),
		})
		d.cursorX, d.cursorY = x, y
	}

	for _, b := range mouseButtons {
		if inpututil.IsMouseButtonJustPressed(b.button) {
			d.host.Emit(ecs.MouseButtonDown{MouseButton: b.input, X: float32(x), Y: float32(y)})
		}
		if inpututil.IsMouseButtonJustReleased(b.button) {
			d.host.Emit(ecs.MouseButtonUp{MouseButton: b.input, X: float32(x), Y: float32(y)})
		}
	}

	if wx, wy := ebiten.Wheel(); wx != 0 || wy != 0 {
		d.host.Emit(ecs.MouseWheel{DX: float32(wx), DY: float32(wy)})
	}
}
