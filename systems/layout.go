package systems

import (
	"log/slog"
	"time"

	"github.com/plus3/kite/components"
	"github.com/plus3/kite/ecs"
	"github.com/plus3/kite/logging"
)

type anchorRow struct {
	Entity    ecs.Entity
	Anchor    *components.Anchor
	Position  *components.Position  `ecs:"optional"`
	Size      *components.Size      `ecs:"optional"`
	Alignment *components.Alignment `ecs:"optional"`
	Layout    *components.Layout    `ecs:"optional"`
}

// LayoutSystem resolves every anchored entity to an absolute Layout: the anchor
// point of the logical viewport, plus the entity Position as an offset, shifted
// by Alignment against the entity Size. Anchored entities without a Position
// receive one at the origin.
type LayoutSystem struct {
	Anchored ecs.Query[anchorRow]
	Viewport ecs.Singleton[ecs.Viewport]
}

func (s *LayoutSystem) Priority() int { return ecs.PriorityLayout }

func (s *LayoutSystem) Update(w *ecs.World, _ time.Duration) {
	var viewport ecs.Viewport
	if v := s.Viewport.Get(); v != nil {
		viewport = *v
	}

	for e, row := range s.Anchored.Iter() {
		layout := AnchorPoint(viewport, *row.Anchor)

		if row.Position != nil {
			layout = layout.Add(*row.Position)
		} else {
			if err := ecs.Add(w, e, components.Position{}); err != nil {
				logRejected("add position", e, err)
			}
		}

		if row.Alignment != nil && row.Size != nil {
			layout = layout.Add(row.Alignment.Offset(*row.Size))
		}

		if row.Layout != nil {
			row.Layout.Position = layout
		} else {
			if err := ecs.Add(w, e, components.Layout{Position: layout}); err != nil {
				logRejected("add layout", e, err)
			}
		}
	}
}

// AnchorPoint returns the point of the viewport an anchor refers to.
// HorizontalNone and VerticalNone behave as left and top.
func AnchorPoint(viewport ecs.Viewport, anchor components.Anchor) components.Position {
	point := components.Position{X: viewport.X, Y: viewport.Y}

	switch anchor.Horizontal {
	case components.HorizontalCenter:
		point.X += viewport.Width / 2
	case components.Right:
		point.X += viewport.Width
	}

	switch anchor.Vertical {
	case components.VerticalCenter:
		point.Y += viewport.Height / 2
	case components.Bottom:
		point.Y += viewport.Height
	}
	return point
}

// logRejected records a structural change the world refused, typically because
// the entity is already scheduled for destruction.
func logRejected(op string, e ecs.Entity, err error) {
	logging.Logger().Debug("structural change rejected",
		slog.String("op", op),
		slog.String("entity", e.String()),
		slog.Any("error", err))
}
