// Package input defines backend independent key codes, modifiers and mouse
// buttons, plus the keyboard and mouse state records kept by the input system.
package input

import "strings"

// Code identifies a physical key.
type Code int32

const (
	KeyUnknown Code = iota
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyTab
	KeySpace
	KeyMinus
	KeyEquals
	KeyLeftBracket
	KeyRightBracket
	KeyBackslash
	KeySlash
	KeySemicolon
	KeyQuote
	KeyBackquote
	KeyComma
	KeyPeriod
	KeyCapsLock
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyPrintScreen
	KeyScrollLock
	KeyPause
	KeyInsert
	KeyHome
	KeyPageUp
	KeyDelete
	KeyEnd
	KeyPageDown
	KeyRight
	KeyLeft
	KeyDown
	KeyUp
	KeyLeftShift
	KeyRightShift
	KeyLeftControl
	KeyRightControl
	KeyLeftAlt
	KeyRightAlt
	KeyLeftMeta
	KeyRightMeta

	keyCount
)

// codeNames is indexed by Code
var codeNames = [...]string{
	"Unknown", "A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L", "M", "N", "O", "P", "Q",
	"R", "S", "T", "U", "V", "W", "X", "Y", "Z", "0", "1", "2", "3", "4", "5", "6", "7", "8", "9",
	"Return", "Escape", "Backspace", "Tab", "Space", "-", "=", "[", "]", "\\", "/", ";", "'", "`",
	",", ".", "CapsLock", "F1", "F2", "F3", "F4", "F5", "F6", "F7", "F8", "F9", "F10", "F11", "F12",
	"PrintScreen", "ScrollLock", "Pause", "Insert", "Home", "PageUp", "Delete", "End", "PageDown",
	"Right", "Left", "Down", "Up", "Left Shift", "Right Shift", "Left Ctrl", "Right Ctrl", "Left Alt",
	"Right Alt", "Left Meta", "Right Meta",
}

func (c Code) String() string {
	if c >= 0 && int(c) < len(codeNames) {
		return codeNames[c]
	}
	return codeNames[KeyUnknown]
}

// Modifier is a bit set of held modifier keys.
type Modifier uint16

const ModNone Modifier = 0

const (
	ModLeftShift Modifier = 1 << iota
	ModRightShift
	ModLeftControl
	ModRightControl
	ModLeftAlt
	ModRightAlt
	ModLeftMeta
	ModRightMeta
)

const (
	ModShift   = ModLeftShift | ModRightShift
	ModControl = ModLeftControl | ModRightControl
	ModAlt     = ModLeftAlt | ModRightAlt
	ModMeta    = ModLeftMeta | ModRightMeta
)

// Has reports whether any of the bits of other are set.
func (m Modifier) Has(other Modifier) bool {
	return m&other != 0
}

func (m Modifier) String() string {
	if m == ModNone {
		return ""
	}

	var parts []string
	for _, named := range []struct {
		mask Modifier
		name string
	}{
		{ModControl, "Ctrl"},
		{ModAlt, "Alt"},
		{ModShift, "Shift"},
		{ModMeta, "Meta"},
	} {
		if m.Has(named.mask) {
			parts = append(parts, named.name)
		}
	}
	return strings.Join(parts, "+")
}

// KeyModifier is a key code plus the modifiers held when it was pressed.
type KeyModifier struct {
	Code     Code
	Modifier Modifier
}

// Key builds a KeyModifier.
func Key(code Code, modifier Modifier) KeyModifier {
	return KeyModifier{Code: code, Modifier: modifier}
}

// Matches reports whether k satisfies the binding. A binding with no modifier
// only matches when no modifier is held; otherwise any of its bits must be held,
// so a ModControl binding accepts either control key.
func (k KeyModifier) Matches(binding KeyModifier) bool {
	if k.Code != binding.Code {
		return false
	}
	if binding.Modifier == ModNone {
		return k.Modifier == ModNone
	}
	return k.Modifier.Has(binding.Modifier)
}

func (k KeyModifier) String() string {
	if k.Modifier == ModNone {
		return k.Code.String()
	}
	return k.Modifier.String() + "+" + k.Code.String()
}

// ModifierFor returns the modifier bit a modifier key contributes, or ModNone.
func ModifierFor(code Code) Modifier {
	switch code {
	case KeyLeftShift:
		return ModLeftShift
	case KeyRightShift:
		return ModRightShift
	case KeyLeftControl:
		return ModLeftControl
	case KeyRightControl:
		return ModRightControl
	case KeyLeftAlt:
		return ModLeftAlt
	case KeyRightAlt:
		return ModRightAlt
	case KeyLeftMeta:
		return ModLeftMeta
	case KeyRightMeta:
		return ModRightMeta
	default:
		return ModNone
	}
}
