// Package render defines the boundary between the render system and a drawing
// backend. Drawables are plain data; backends own every pixel.
package render

import (
	"github.com/plus3/kite/components"
	"github.com/plus3/kite/ecs"
)

// Kind selects how a Drawable is drawn.
type Kind uint8

const (
	KindSprite Kind = iota
	KindLabel
	KindLine
	KindBox
	KindSolidBox
	KindBorderBox
)

var kindNames = [...]string{"sprite", "label", "line", "box", "solid_box", "border_box"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Region is a rectangle inside a texture, in pixels.
type Region struct {
	X, Y          int
	Width, Height int
}

// Drawable is one draw call, in logical coordinates.
type Drawable struct {
	Kind   Kind
	Entity ecs.Entity
	Depth  float32

	Position components.Position
	Size     components.Size
	To       components.Position
	Color    components.Color

	// shapes
	Thickness float32
	Border    components.Color

	// sprites
	Texture  string
	Region   Region
	Pivot    components.Position
	FlipX    bool
	FlipY    bool
	Scale    float32
	Rotation float32

	// labels
	Text     string
	Font     string
	FontSize float32
}

// Renderer is implemented by drawing backends. The render system calls
// BeginFrame, then Submit once per visible drawable in depth order, then Present.
type Renderer interface {
	BeginFrame()
	Submit(d Drawable)
	Present()
}
