package ecs

import (
	"reflect"

	"github.com/rotisserie/eris"

	"github.com/plus3/kite/input"
)

// EventKind is the discriminant of every event payload.
type EventKind uint8

const (
	KindUnknown EventKind = iota
	KindKeyDown
	KindKeyUp
	KindMouseButtonDown
	KindMouseButtonUp
	KindMouseMoved
	KindMouseWheel
	KindWindowResized
	KindToggleFullscreen
	KindApplicationWantClosing
	KindAddComponent
	KindTyped
)

var kindNames = [...]string{
	KindUnknown:                "unknown",
	KindKeyDown:                "key_down",
	KindKeyUp:                  "key_up",
	KindMouseButtonDown:        "mouse_button_down",
	KindMouseButtonUp:          "mouse_button_up",
	KindMouseMoved:             "mouse_moved",
	KindMouseWheel:             "mouse_wheel",
	KindWindowResized:          "window_resized",
	KindToggleFullscreen:       "toggle_fullscreen",
	KindApplicationWantClosing: "application_want_closing",
	KindAddComponent:           "add_component",
	KindTyped:                  "typed",
}

func (k EventKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return kindNames[KindUnknown]
}

// Event is the closed set of payloads carried by the event channel. Payloads are
// plain values; a queued event is never modified.
type Event interface {
	Kind() EventKind
}

// KeyEvent is the family of keyboard events (KeyDown and KeyUp).
type KeyEvent interface {
	Event
	Key() input.KeyModifier
}

// MouseButtonEvent is the family of mouse button events (MouseButtonDown and MouseButtonUp).
type MouseButtonEvent interface {
	Event
	Button() input.MouseButton
	At() (x, y float32)
}

// KeyDown is emitted by the backend when a key is pressed.
type KeyDown struct {
	input.KeyModifier
}

// KeyUp is emitted by the backend when a key is released.
type KeyUp struct {
	input.KeyModifier
}

func (KeyDown) Kind() EventKind          { return KindKeyDown }
func (e KeyDown) Key() input.KeyModifier { return e.KeyModifier }

func (KeyUp) Kind() EventKind          { return KindKeyUp }
func (e KeyUp) Key() input.KeyModifier { return e.KeyModifier }

func (MouseButtonDown) Kind() EventKind        { return KindMouseButtonDown }
func (MouseButtonUp) Kind() EventKind          { return KindMouseButtonUp }
func (MouseMoved) Kind() EventKind             { return KindMouseMoved }
func (MouseWheel) Kind() EventKind             { return KindMouseWheel }
func (WindowResized) Kind() EventKind          { return KindWindowResized }
func (ToggleFullscreen) Kind() EventKind       { return KindToggleFullscreen }
func (ApplicationWantClosing) Kind() EventKind { return KindApplicationWantClosing }

// MouseButtonDown is emitted when a mouse button is pressed at a window position.
type MouseButtonDown struct {
	MouseButton input.MouseButton
	X, Y        float32
}

func (e MouseButtonDown) Button() input.MouseButton { return e.MouseButton }
func (e MouseButtonDown) At() (float32, float32)    { return e.X, e.Y }

// MouseButtonUp is emitted when a mouse button is released at a window position.
type MouseButtonUp struct {
	MouseButton input.MouseButton
	X, Y        float32
}

func (e MouseButtonUp) Button() input.MouseButton { return e.MouseButton }
func (e MouseButtonUp) At() (float32, float32)    { return e.X, e.Y }

// MouseMoved carries the new cursor position and the delta from the previous one.
type MouseMoved struct {
	X, Y   float32
	DX, DY float32
}

// MouseWheel carries a scroll delta.
type MouseWheel struct {
	DX, DY float32
}

// WindowResized carries the new window size and the logical viewport inside it.
type WindowResized struct {
	Width, Height int
	Logical       Viewport
}

// Viewport is a rectangle in logical coordinates.
type Viewport struct {
	X, Y          float32
	Width, Height float32
}

// ToggleFullscreen asks the backend to switch between windowed and fullscreen.
type ToggleFullscreen struct{}

// ApplicationWantClosing asks the application loop to stop after the current frame.
type ApplicationWantClosing struct{}

// ComponentRequest is the family of AddComponent events, whatever their component type.
type ComponentRequest interface {
	Event
	Target() Entity
	ComponentType() reflect.Type
	apply(w *World) error
}

// AddComponent requests that Entity receives Component. The request is applied by
// the World at the flush point that follows the turn in which it was emitted, and
// stays in the channel so later systems can react to it.
type AddComponent[T any] struct {
	Entity    Entity
	Component T
}

func (AddComponent[T]) Kind() EventKind             { return KindAddComponent }
func (a AddComponent[T]) Target() Entity            { return a.Entity }
func (AddComponent[T]) ComponentType() reflect.Type { return reflect.TypeFor[T]() }

func (a AddComponent[T]) apply(w *World) error {
	if storageFor[T](w) == nil {
		return eris.Wrapf(ErrNotFound, "component type %s not registered", reflect.TypeFor[T]())
	}
	return Add(w, a.Entity, a.Component)
}

// Typed wraps an application defined payload so it can travel through the channel.
// Drain[Typed[T]] yields only the payloads of type T.
type Typed[T any] struct {
	Payload T
}

func (Typed[T]) Kind() EventKind { return KindTyped }
