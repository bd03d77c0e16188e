package components

// Horizontal is a horizontal alignment or anchor.
type Horizontal uint8

const (
	HorizontalNone Horizontal = iota
	Left
	HorizontalCenter
	Right
)

// Vertical is a vertical alignment or anchor.
type Vertical uint8

const (
	VerticalNone Vertical = iota
	Top
	VerticalCenter
	Bottom
)

// Alignment places an element relative to its layout point. As a component it
// shifts an entity by its Size; inside a Label it shifts the measured text.
// The zero value behaves as top-left.
type Alignment struct {
	Horizontal Horizontal
	Vertical   Vertical
}

// Offset returns how far the top-left corner of an element of the given size
// moves from the alignment point.
func (a Alignment) Offset(size Size) Position {
	var offset Position

	switch a.Horizontal {
	case HorizontalCenter:
		offset.X = -size.Width / 2
	case Right:
		offset.X = -size.Width
	}

	switch a.Vertical {
	case VerticalCenter:
		offset.Y = -size.Height / 2
	case Bottom:
		offset.Y = -size.Height
	}
	return offset
}

// Label is a line of text drawn with a font key from the asset cache.
type Label struct {
	Text      string
	Font      string
	Size      float32
	Alignment Alignment
}

// Anchor pins an entity to a point of the logical viewport. Its Position
// becomes an offset from that point.
type Anchor struct {
	Horizontal Horizontal
	Vertical   Vertical
}

// Layout is the absolute position computed by the layout system.
type Layout struct {
	Position
}
