package input

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseLeft MouseButton = iota
	MouseMiddle
	MouseRight
	MouseBack
	MouseForward

	mouseButtonCount
)

var buttonNames = [...]string{"Left", "Middle", "Right", "Back", "Forward"}

func (b MouseButton) String() string {
	if int(b) < len(buttonNames) {
		return buttonNames[b]
	}
	return "Unknown"
}

// Keyboard is the held state of every key, updated by the input system from
// key events. Pressed and Released only hold for the frame they happened in.
type Keyboard struct {
	down     [keyCount]bool
	pressed  [keyCount]bool
	released [keyCount]bool
	Modifier Modifier
}

// BeginFrame clears the per-frame edges.
func (k *Keyboard) BeginFrame() {
	k.pressed = [keyCount]bool{}
	k.released = [keyCount]bool{}
}

// Press records a key going down.
func (k *Keyboard) Press(key KeyModifier) {
	if !valid(key.Code) {
		return
	}
	if !k.down[key.Code] {
		k.pressed[key.Code] = true
	}
	k.down[key.Code] = true
	k.Modifier = key.Modifier | ModifierFor(key.Code)
}

// Release records a key going up.
func (k *Keyboard) Release(key KeyModifier) {
	if !valid(key.Code) {
		return
	}
	k.down[key.Code] = false
	k.released[key.Code] = true
	k.Modifier = key.Modifier &^ ModifierFor(key.Code)
}

// Down reports whether the key is held.
func (k *Keyboard) Down(code Code) bool {
	return valid(code) && k.down[code]
}

// Pressed reports whether the key went down this frame.
func (k *Keyboard) Pressed(code Code) bool {
	return valid(code) && k.pressed[code]
}

// Released reports whether the key went up this frame.
func (k *Keyboard) Released(code Code) bool {
	return valid(code) && k.released[code]
}

func valid(code Code) bool {
	return code > KeyUnknown && code < keyCount
}

// Mouse is the cursor position, held buttons and accumulated wheel of the current frame.
type Mouse struct {
	X, Y     float32
	DX, DY   float32
	WheelX   float32
	WheelY   float32
	down     [mouseButtonCount]bool
	pressed  [mouseButtonCount]bool
	released [mouseButtonCount]bool
}

// BeginFrame clears the per-frame deltas and edges.
func (m *Mouse) BeginFrame() {
	m.DX, m.DY = 0, 0
	m.WheelX, m.WheelY = 0, 0
	m.pressed = [mouseButtonCount]bool{}
	m.released = [mouseButtonCount]bool{}
}

// MoveTo records a new cursor position.
func (m *Mouse) MoveTo(x, y, dx, dy float32) {
	m.X, m.Y = x, y
	m.DX += dx
	m.DY += dy
}

// Scroll accumulates a wheel delta.
func (m *Mouse) Scroll(dx, dy float32) {
	m.WheelX += dx
	m.WheelY += dy
}

// Press records a button going down at a position.
func (m *Mouse) Press(button MouseButton, x, y float32) {
	if button >= mouseButtonCount {
		return
	}
	m.X, m.Y = x, y
	m.down[button] = true
	m.pressed[button] = true
}

// Release records a button going up at a position.
func (m *Mouse) Release(button MouseButton, x, y float32) {
	if button >= mouseButtonCount {
		return
	}
	m.X, m.Y = x, y
	m.down[button] = false
	m.released[button] = true
}

func (m *Mouse) Down(button MouseButton) bool {
	return button < mouseButtonCount && m.down[button]
}

func (m *Mouse) Pressed(button MouseButton) bool {
	return button < mouseButtonCount && m.pressed[button]
}

func (m *Mouse) Released(button MouseButton) bool {
	return button < mouseButtonCount && m.released[button]
}
