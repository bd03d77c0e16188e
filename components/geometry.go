// Package components holds the plain data components understood by the
// built-in systems. Components never reference each other; relationships go
// through the entity that owns them.
package components

// Position is a point in logical coordinates. For anchored entities it is an
// offset from the anchor point.
type Position struct {
	X, Y float32
}

// Add returns the sum of both positions.
func (p Position) Add(other Position) Position {
	return Position{X: p.X + other.X, Y: p.Y + other.Y}
}

// Size is a width and height in logical units.
type Size struct {
	Width, Height float32
}

// Rect is an area in logical coordinates.
type Rect struct {
	Position
	Size
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && y >= r.Y && x < r.X+r.Width && y < r.Y+r.Height
}

// Line is drawn from the entity position to the point at offset To.
type Line struct {
	To        Position
	Thickness float32
}

// Box is an outlined rectangle from the entity position to the point at offset To.
type Box struct {
	To        Position
	Thickness float32
}

// SolidBox is a filled rectangle from the entity position to the point at offset To.
type SolidBox struct {
	To Position
}

// BorderBox is a filled rectangle with an outline of a different color.
type BorderBox struct {
	To        Position
	Thickness float32
	Border    Color
}
