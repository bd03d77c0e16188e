package ebiten

import (
	"bytes"
	"image"
	"log/slog"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/rotisserie/eris"

	"github.com/plus3/kite/assets"
	"github.com/plus3/kite/components"
	"github.com/plus3/kite/logging"
	"github.com/plus3/kite/render"
)

// Renderer keeps the drawables of the last presented frame and replays them
// onto the ebiten screen. Textures and font sources are created from the asset
// cache on first use.
type Renderer struct {
	Clear components.Color

	assets    *assets.Cache
	pending   []render.Drawable
	presented []render.Drawable

	textures map[string]*ebiten.Image
	sources  map[string]*text.GoTextFaceSource
	failed   map[string]bool
}

// NewRenderer creates a renderer resolving textures and fonts through cache.
func NewRenderer(cache *assets.Cache) *Renderer {
	return &Renderer{
		Clear:    components.Black,
		assets:   cache,
		textures: make(map[string]*ebiten.Image),
		sources:  make(map[string]*text.GoTextFaceSource),
		failed:   make(map[string]bool),
	}
}

func (r *Renderer) BeginFrame() {
	r.pending = r.pending[:0]
}

func (r *Renderer) Submit(d render.Drawable) {
	r.pending = append(r.pending, d)
}

func (r *Renderer) Present() {
	r.pending, r.presented = r.presented, r.pending
}

// Draw clears the screen and draws the last presented frame.
func (r *Renderer) Draw(screen *ebiten.Image) {
	screen.Fill(r.Clear)
	for _, d := range r.presented {
		switch d.Kind {
		case render.KindSprite:
			r.drawSprite(screen, d)
		case render.KindLabel:
			r.drawLabel(screen, d)
		case render.KindLine:
			vector.StrokeLine(screen, d.Position.X, d.Position.Y, d.To.X, d.To.Y, thickness(d), d.Color, true)
		case render.KindBox:
			x, y, w, h := bounds(d)
			vector.StrokeRect(screen, x, y, w, h, thickness(d), d.Color, false)
		case render.KindSolidBox:
			x, y, w, h := bounds(d)
			vector.DrawFilledRect(screen, x, y, w, h, d.Color, false)
		case render.KindBorderBox:
			x, y, w, h := bounds(d)
			vector.DrawFilledRect(screen, x, y, w, h, d.Color, false)
			vector.StrokeRect(screen, x, y, w, h, thickness(d), d.Border, false)
		}
	}
}

func (r *Renderer) drawSprite(screen *ebiten.Image, d render.Drawable) {
	img, ok := r.texture(d.Texture)
	if !ok {
		return
	}

	region := image.Rect(d.Region.X, d.Region.Y, d.Region.X+d.Region.Width, d.Region.Y+d.Region.Height)
	sub := img.SubImage(region).(*ebiten.Image)

	sx, sy := float64(d.Scale), float64(d.Scale)
	if d.FlipX {
		sx = -sx
	}
	if d.FlipY {
		sy = -sy
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(d.Pivot.X)*float64(d.Region.Width), -float64(d.Pivot.Y)*float64(d.Region.Height))
	op.GeoM.Scale(sx, sy)
	op.GeoM.Rotate(float64(d.Rotation) * math.Pi / 180)
	op.GeoM.Translate(float64(d.Position.X), float64(d.Position.Y))
	op.ColorScale.ScaleWithColor(d.Color)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(sub, op)
}

func (r *Renderer) drawLabel(screen *ebiten.Image, d render.Drawable) {
	source, ok := r.source(d.Font)
	if !ok {
		return
	}

	face := &text.GoTextFace{Source: source, Size: float64(d.FontSize)}
	metrics := face.Metrics()

	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(d.Position.X), float64(d.Position.Y))
	op.ColorScale.ScaleWithColor(d.Color)
	op.LineSpacing = metrics.HAscent + metrics.HDescent + metrics.HLineGap
	text.Draw(screen, d.Text, face, op)
}

func (r *Renderer) texture(key string) (*ebiten.Image, bool) {
	if img, ok := r.textures[key]; ok {
		return img, true
	}
	if r.failed[key] || r.assets == nil {
		return nil, false
	}

	texture, err := assets.Get[*render.Texture](r.assets, key)
	if err != nil {
		r.fail(key, err)
		return nil, false
	}

	img := ebiten.NewImageFromImage(texture.Image)
	r.textures[key] = img
	return img, true
}

func (r *Renderer) source(key string) (*text.GoTextFaceSource, bool) {
	if source, ok := r.sources[key]; ok {
		return source, true
	}
	if r.failed[key] || r.assets == nil {
		return nil, false
	}

	font, err := assets.Get[*render.Font](r.assets, key)
	if err != nil {
		r.fail(key, err)
		return nil, false
	}

	source, err := text.NewGoTextFaceSource(bytes.NewReader(font.Data()))
	if err != nil {
		r.fail(key, eris.Wrapf(err, "font source %s", key))
		return nil, false
	}

	r.sources[key] = source
	return source, true
}

func (r *Renderer) fail(key string, err error) {
	r.failed[key] = true
	logging.Logger().Error("backend resource failed", slog.String("key", key), slog.Any("error", err))
}

func thickness(d render.Drawable) float32 {
	if d.Thickness <= 0 {
		return 1
	}
	return d.Thickness
}

// bounds returns the rectangle spanned by Position and To with a positive size.
func bounds(d render.Drawable) (x, y, w, h float32) {
	x, y = min(d.Position.X, d.To.X), min(d.Position.Y, d.To.Y)
	w, h = abs(d.To.X-d.Position.X), abs(d.To.Y-d.Position.Y)
	return x, y, w, h
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
