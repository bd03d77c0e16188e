package ebiten

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"

	"github.com/plus3/kite/input"
	"github.com/plus3/kite/render"
)

func TestKeyCode(t *testing.T) {
	tests := []struct {
		key  ebiten.Key
		want input.Code
	}{
		{ebiten.KeyA, input.KeyA},
		{ebiten.KeyZ, input.KeyZ},
		{ebiten.KeyDigit0, input.Key0},
		{ebiten.KeyDigit9, input.Key9},
		{ebiten.KeyF1, input.KeyF1},
		{ebiten.KeyF12, input.KeyF12},
		{ebiten.KeyEscape, input.KeyEscape},
		{ebiten.KeyNumpadEnter, input.KeyEnter},
		{ebiten.KeyAltLeft, input.KeyLeftAlt},
		{ebiten.KeyArrowUp, input.KeyUp},
		{ebiten.KeyNumLock, input.KeyUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, KeyCode(tt.key))
		})
	}
}

func TestModifierKeysMatchCodes(t *testing.T) {
	for _, m := range modifierKeys {
		assert.Equal(t, m.mod, input.ModifierFor(KeyCode(m.key)), m.key.String())
	}
}

func TestRendererPresentSwapsFrames(t *testing.T) {
	r := NewRenderer(nil)

	r.BeginFrame()
	r.Submit(render.Drawable{Kind: render.KindLine})
	r.Submit(render.Drawable{Kind: render.KindBox})
	assert.Empty(t, r.presented, "nothing is drawn before Present")

	r.Present()
	assert.Len(t, r.presented, 2)

	r.BeginFrame()
	r.Submit(render.Drawable{Kind: render.KindSolidBox})
	assert.Len(t, r.presented, 2, "the previous frame stays until the next Present")

	r.Present()
	assert.Len(t, r.presented, 1)
	assert.Equal(t, render.KindSolidBox, r.presented[0].Kind)
}

func TestBounds(t *testing.T) {
	d := render.Drawable{}
	d.Position.X, d.Position.Y = 10, 20
	d.To.X, d.To.Y = 4, 30

	x, y, w, h := bounds(d)
	assert.Equal(t, float32(4), x)
	assert.Equal(t, float32(20), y)
	assert.Equal(t, float32(6), w)
	assert.Equal(t, float32(10), h)

	assert.Equal(t, float32(1), thickness(render.Drawable{}))
	assert.Equal(t, float32(3), thickness(render.Drawable{Thickness: 3}))
}
