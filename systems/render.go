package systems

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/plus3/kite/assets"
	"github.com/plus3/kite/components"
	"github.com/plus3/kite/ecs"
	"github.com/plus3/kite/logging"
	"github.com/plus3/kite/render"
)

type renderRow struct {
	Entity     ecs.Entity
	Renderable *components.Renderable
	Position   *components.Position  `ecs:"optional"`
	Layout     *components.Layout    `ecs:"optional"`
	Color      *components.Color     `ecs:"optional"`
	Size       *components.Size      `ecs:"optional"`
	Sprite     *components.Sprite    `ecs:"optional"`
	Label      *components.Label     `ecs:"optional"`
	Line       *components.Line      `ecs:"optional"`
	Box        *components.Box       `ecs:"optional"`
	SolidBox   *components.SolidBox  `ecs:"optional"`
	BorderBox  *components.BorderBox `ecs:"optional"`
	Hidden     *components.Hidden    `ecs:"optional"`
}

// RenderSystem gathers every visible Renderable, orders them by depth and
// submits one drawable per visual component to the Renderer. Entities are drawn
// at their Layout when they have one, at their Position otherwise.
type RenderSystem struct {
	Renderer render.Renderer
	Assets   *assets.Cache

	Renderables ecs.Query[renderRow]

	rows    []renderRow
	lastErr error
}

func (s *RenderSystem) Priority() int { return ecs.PriorityRender }

func (s *RenderSystem) Update(_ *ecs.World, _ time.Duration) {
	if s.Renderer == nil {
		return
	}

	s.rows = s.rows[:0]
	for row := range s.Renderables.Values() {
		if !row.Renderable.Visible || row.Hidden != nil {
			continue
		}
		s.rows = append(s.rows, row)
	}

	slices.SortFunc(s.rows, func(a, b renderRow) int {
		if c := cmp.Compare(a.Renderable.Depth, b.Renderable.Depth); c != 0 {
			return c
		}
		return cmp.Compare(a.Entity, b.Entity)
	})

	s.Renderer.BeginFrame()
	submitted := 0
	for _, row := range s.rows {
		submitted += s.submit(row)
	}
	s.Renderer.Present()

	logging.Logger().Log(context.Background(), logging.LevelTrace, "frame rendered", slog.Int("drawables", submitted))
}

// LastError returns the most recent failure to resolve a font or sprite, if any.
// Entities whose resources fail to load are skipped.
func (s *RenderSystem) LastError() error {
	return s.lastErr
}

func (s *RenderSystem) submit(row renderRow) int {
	base := render.Drawable{
		Entity:   row.Entity,
		Depth:    row.Renderable.Depth,
		Position: origin(row),
		Color:    components.White,
	}
	if row.Color != nil {
		base.Color = *row.Color
	}
	if row.Size != nil {
		base.Size = *row.Size
	}

	count := 0
	emit := func(d render.Drawable) {
		s.Renderer.Submit(d)
		count++
	}

	if row.Sprite != nil {
		if d, ok := s.sprite(base, *row.Sprite); ok {
			emit(d)
		}
	}
	if row.Label != nil {
		if d, ok := s.label(base, *row.Label); ok {
			emit(d)
		}
	}
	if row.Line != nil {
		d := base
		d.Kind = render.KindLine
		d.To = base.Position.Add(row.Line.To)
		d.Thickness = row.Line.Thickness
		emit(d)
	}
	if row.Box != nil {
		d := base
		d.Kind = render.KindBox
		d.To = base.Position.Add(row.Box.To)
		d.Thickness = row.Box.Thickness
		emit(d)
	}
	if row.SolidBox != nil {
		d := base
		d.Kind = render.KindSolidBox
		d.To = base.Position.Add(row.SolidBox.To)
		emit(d)
	}
	if row.BorderBox != nil {
		d := base
		d.Kind = render.KindBorderBox
		d.To = base.Position.Add(row.BorderBox.To)
		d.Thickness = row.BorderBox.Thickness
		d.Border = row.BorderBox.Border
		emit(d)
	}
	return count
}

func (s *RenderSystem) sprite(d render.Drawable, sprite components.Sprite) (render.Drawable, bool) {
	if s.Assets == nil {
		return d, false
	}

	resource, err := s.Assets.GetOrLoad(sprite.File)
	if err != nil {
		s.fail(d.Entity, err)
		return d, false
	}

	var sheet *render.SpriteSheet
	switch r := resource.(type) {
	case *render.SpriteSheet:
		sheet = r
	case *render.Texture:
		sheet = r.Sheet()
	default:
		s.fail(d.Entity, assets.ErrWrongType)
		return d, false
	}

	frame, err := sheet.Frame(sprite.Frame)
	if err != nil {
		s.fail(d.Entity, err)
		return d, false
	}

	scale := sprite.Scale
	if scale == 0 {
		scale = 1
	}

	d.Kind = render.KindSprite
	d.Texture = sheet.Image
	d.Region = frame.Region
	d.Pivot = frame.Pivot
	d.FlipX = sprite.FlipX
	d.FlipY = sprite.FlipY
	d.Scale = scale
	d.Rotation = sprite.Rotation
	d.Size = components.Size{
		Width:  float32(frame.Region.Width) * scale,
		Height: float32(frame.Region.Height) * scale,
	}
	return d, true
}

func (s *RenderSystem) label(d render.Drawable, label components.Label) (render.Drawable, bool) {
	d.Kind = render.KindLabel
	d.Text = render.NormalizeText(label.Text)
	d.Font = label.Font
	d.FontSize = label.Size
	if d.Font == "" {
		d.Font = assets.FontRegular
	}

	if s.Assets == nil {
		return d, true
	}

	font, err := assets.Get[*render.Font](s.Assets, d.Font)
	if err != nil {
		s.fail(d.Entity, err)
		return d, false
	}

	size, err := font.Measure(d.Text, label.Size)
	if err != nil {
		s.fail(d.Entity, err)
		return d, false
	}

	d.Size = size
	d.Position = d.Position.Add(label.Alignment.Offset(size))
	return d, true
}

func (s *RenderSystem) fail(e ecs.Entity, err error) {
	if s.lastErr == nil || s.lastErr.Error() != err.Error() {
		logging.Logger().Error("render resource failed", slog.String("entity", e.String()), slog.Any("error", err))
	}
	s.lastErr = err
}

func origin(row renderRow) components.Position {
	switch {
	case row.Layout != nil:
		return row.Layout.Position
	case row.Position != nil:
		return *row.Position
	default:
		return components.Position{}
	}
}
