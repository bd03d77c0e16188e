// Package ebiten bridges the Dear ImGui overlay to the ebiten backend.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/kite/app"
	kiteebiten "github.com/plus3/kite/backend/ebiten"
	"github.com/plus3/kite/debugui"
	"github.com/plus3/kite/input"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation
// and adapts it to the overlay contract of the ebiten driver.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

var _ kiteebiten.Overlay = ImguiBackend{}

// NewImguiBackend creates the ImGui context for an ebiten window.
func NewImguiBackend(title string, width, height int) ImguiBackend {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return ImguiBackend{EbitenBackend: backend}
}

func (b ImguiBackend) BeginFrame()               { b.EbitenBackend.BeginFrame() }
func (b ImguiBackend) EndFrame()                 { b.EbitenBackend.EndFrame() }
func (b ImguiBackend) Draw(screen *ebiten.Image) { b.EbitenBackend.Draw(screen) }
func (b ImguiBackend) Resize(width, height int)  { b.EbitenBackend.Layout(width, height) }

// Attach installs the overlay on the driver and, once the application starts,
// spawns the panels and adds the overlay systems. The panels toggle with toggleKey.
func Attach(a *app.Application, driver *kiteebiten.Driver, toggleKey input.KeyModifier) ImguiBackend {
	cfg := a.Config()
	backend := NewImguiBackend(cfg.Title, cfg.WindowWidth, cfg.WindowHeight)
	driver.Overlay = backend

	debugui.RegisterDebugUIComponents(a.Registry())
	a.OnStart(func(a *app.Application) error {
		debugui.SpawnDebugUI(a.World())
		return a.Register(
			&debugui.ImguiSystem{},
			&debugui.PanelSystem{Scheduler: a.Scheduler(), ToggleKey: toggleKey},
		)
	})
	return backend
}
