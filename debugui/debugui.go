// Package debugui is a Dear ImGui overlay for inspecting a running World:
// entities, their components, storages, queries and frame timings.
package debugui

import (
	"time"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/kite/ecs"
)

// PriorityOverlay runs after the render system so the overlay sees the final
// state of the frame.
const PriorityOverlay = ecs.PriorityRender + 50

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks whether Dear ImGui is consuming mouse or keyboard input.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem defers the render function of every ImguiItem to the flush that
// ends its turn, and refreshes the ImguiInputState singleton.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
}

func (s *ImguiSystem) Priority() int { return PriorityOverlay }

func (s *ImguiSystem) Init(w *ecs.World) error {
	ecs.NewSingleton[ImguiInputState](w)
	return nil
}

func (s *ImguiSystem) Update(w *ecs.World, _ time.Duration) {
	state := s.InputState.Get()
	io := imgui.CurrentIO()
	state.WantCaptureMouse = io.WantCaptureMouse()
	state.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for item := range s.Items.Values() {
		if item.Render != nil {
			w.Commands().Defer(item.Render)
		}
	}
}
