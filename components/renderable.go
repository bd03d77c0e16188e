package components

// Renderable marks an entity for drawing. Depth acts as a z-index: lower
// depths are drawn first.
type Renderable struct {
	Depth   float32
	Visible bool
}

// Visible returns a visible Renderable at the given depth.
func Visible(depth float32) Renderable {
	return Renderable{Depth: depth, Visible: true}
}

// Hidden is a tag that excludes an entity from rendering without touching its Renderable.
type Hidden struct{}

// DefaultFrame is the frame name of single-texture sprites.
const DefaultFrame = "default"

// Sprite draws a frame of a sprite sheet or a whole texture.
type Sprite struct {
	File     string
	Frame    string
	FlipX    bool
	FlipY    bool
	Scale    float32
	Rotation float32
}

// NewSprite returns a sprite with unit scale. An empty frame selects DefaultFrame.
func NewSprite(file, frame string) Sprite {
	if frame == "" {
		frame = DefaultFrame
	}
	return Sprite{File: file, Frame: frame, Scale: 1}
}
