// Package systems holds the built-in systems: input translation, effects,
// layout and render orchestration.
package systems

import (
	"log/slog"
	"time"

	"github.com/plus3/kite/ecs"
	"github.com/plus3/kite/input"
	"github.com/plus3/kite/logging"
)

// InputSystem folds the backend's input events into the Keyboard, Mouse and
// Viewport singletons, and turns the exit and fullscreen bindings into
// ApplicationWantClosing and ToggleFullscreen events when their key is released.
// A binding with KeyUnknown is disabled.
type InputSystem struct {
	ExitKey       input.KeyModifier
	FullscreenKey input.KeyModifier

	keyboard *ecs.Singleton[input.Keyboard]
	mouse    *ecs.Singleton[input.Mouse]
	viewport *ecs.Singleton[ecs.Viewport]
}

func (s *InputSystem) Priority() int { return ecs.PriorityInput }

func (s *InputSystem) Init(w *ecs.World) error {
	s.keyboard = ecs.NewSingleton[input.Keyboard](w)
	s.mouse = ecs.NewSingleton[input.Mouse](w)
	s.viewport = ecs.NewSingleton[ecs.Viewport](w)
	return nil
}

func (s *InputSystem) Update(w *ecs.World, _ time.Duration) {
	keyboard := s.keyboard.Get()
	mouse := s.mouse.Get()

	keyboard.BeginFrame()
	mouse.BeginFrame()

	for event := range w.Events().All() {
		switch ev := event.(type) {
		case ecs.KeyDown:
			keyboard.Press(ev.KeyModifier)
		case ecs.KeyUp:
			keyboard.Release(ev.KeyModifier)
			s.checkBindings(w, ev.KeyModifier)
		case ecs.MouseButtonDown:
			mouse.Press(ev.MouseButton, ev.X, ev.Y)
		case ecs.MouseButtonUp:
			mouse.Release(ev.MouseButton, ev.X, ev.Y)
		case ecs.MouseMoved:
			mouse.MoveTo(ev.X, ev.Y, ev.DX, ev.DY)
		case ecs.MouseWheel:
			mouse.Scroll(ev.DX, ev.DY)
		case ecs.WindowResized:
			*s.viewport.Get() = ev.Logical
		}
	}
}

func (s *InputSystem) checkBindings(w *ecs.World, key input.KeyModifier) {
	if s.ExitKey.Code != input.KeyUnknown && key.Matches(s.ExitKey) {
		logging.Logger().Debug("exit key released", slog.String("key", key.String()))
		w.Emit(ecs.ApplicationWantClosing{})
	}
	if s.FullscreenKey.Code != input.KeyUnknown && key.Matches(s.FullscreenKey) {
		logging.Logger().Debug("fullscreen key released", slog.String("key", key.String()))
		w.Emit(ecs.ToggleFullscreen{})
	}
}
