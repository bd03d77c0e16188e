package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/kite/input"
)

var keyCodes = buildKeyCodes()

func buildKeyCodes() map[ebiten.Key]input.Code {
	codes := map[ebiten.Key]input.Code{
		ebiten.KeyEnter:        input.KeyEnter,
		ebiten.KeyNumpadEnter:  input.KeyEnter,
		ebiten.KeyEscape:       input.KeyEscape,
		ebiten.KeyBackspace:    input.KeyBackspace,
		ebiten.KeyTab:          input.KeyTab,
		ebiten.KeySpace:        input.KeySpace,
		ebiten.KeyMinus:        input.KeyMinus,
		ebiten.KeyEqual:        input.KeyEquals,
		ebiten.KeyBracketLeft:  input.KeyLeftBracket,
		ebiten.KeyBracketRight: input.KeyRightBracket,
		ebiten.KeyBackslash:    input.KeyBackslash,
		ebiten.KeySlash:        input.KeySlash,
		ebiten.KeySemicolon:    input.KeySemicolon,
		ebiten.KeyQuote:        input.KeyQuote,
		ebiten.KeyBackquote:    input.KeyBackquote,
		ebiten.KeyComma:        input.KeyComma,
		ebiten.KeyPeriod:       input.KeyPeriod,
		ebiten.KeyCapsLock:     input.KeyCapsLock,
		ebiten.KeyPrintScreen:  input.KeyPrintScreen,
		ebiten.KeyScrollLock:   input.KeyScrollLock,
		ebiten.KeyPause:        input.KeyPause,
		ebiten.KeyInsert:       input.KeyInsert,
		ebiten.KeyHome:         input.KeyHome,
		ebiten.KeyPageUp:       input.KeyPageUp,
		ebiten.KeyDelete:       input.KeyDelete,
		ebiten.KeyEnd:          input.KeyEnd,
		ebiten.KeyPageDown:     input.KeyPageDown,
		ebiten.KeyArrowRight:   input.KeyRight,
		ebiten.KeyArrowLeft:    input.KeyLeft,
		ebiten.KeyArrowDown:    input.KeyDown,
		ebiten.KeyArrowUp:      input.KeyUp,
		ebiten.KeyShiftLeft:    input.KeyLeftShift,
		ebiten.KeyShiftRight:   input.KeyRightShift,
		ebiten.KeyControlLeft:  input.KeyLeftControl,
		ebiten.KeyControlRight: input.KeyRightControl,
		ebiten.KeyAltLeft:      input.KeyLeftAlt,
		ebiten.KeyAltRight:     input.KeyRightAlt,
		ebiten.KeyMetaLeft:     input.KeyLeftMeta,
		ebiten.KeyMetaRight:    input.KeyRightMeta,
	}

	for i := range 26 {
		codes[ebiten.KeyA+ebiten.Key(i)] = input.KeyA + input.Code(i)
	}
	for i := range 10 {
		codes[ebiten.KeyDigit0+ebiten.Key(i)] = input.Key0 + input.Code(i)
	}
	for i := range 12 {
		codes[ebiten.KeyF1+ebiten.Key(i)] = input.KeyF1 + input.Code(i)
	}
	return codes
}

// KeyCode maps an ebiten key to its input code, or input.KeyUnknown.
func KeyCode(key ebiten.Key) input.Code {
	if code, ok := keyCodes[key]; ok {
		return code
	}
	return input.KeyUnknown
}

var modifierKeys = []struct {
	key ebiten.Key
	mod input.Modifier
}{
	{ebiten.KeyShiftLeft, input.ModLeftShift},
	{ebiten.KeyShiftRight, input.ModRightShift},
	{ebiten.KeyControlLeft, input.ModLeftControl},
	{ebiten.KeyControlRight, input.ModRightControl},
	{ebiten.KeyAltLeft, input.ModLeftAlt},
	{ebiten.KeyAltRight, input.ModRightAlt},
	{ebiten.KeyMetaLeft, input.ModLeftMeta},
	{ebiten.KeyMetaRight, input.ModRightMeta},
}

// heldModifiers returns the modifier keys currently down.
func heldModifiers() input.Modifier {
	var mod input.Modifier
	for _, m := range modifierKeys {
		if ebiten.IsKeyPressed(m.key) {
			mod |= m.mod
		}
	}
	return mod
}

var mouseButtons = []struct {
	button ebiten.MouseButton
	input  input.MouseButton
}{
	{ebiten.MouseButtonLeft, input.MouseLeft},
	{ebiten.MouseButtonMiddle, input.MouseMiddle},
	{ebiten.MouseButtonRight, input.MouseRight},
	{ebiten.MouseButton3, input.MouseBack},
	{ebiten.MouseButton4, input.MouseForward},
}
