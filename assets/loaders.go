package assets

import (
	"image"
	_ "image/png"
	"path"

	"github.com/rotisserie/eris"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	_ "golang.org/x/image/webp"

	"github.com/plus3/kite/render"
)

// Embedded font keys.
const (
	FontRegular = EmbeddedPrefix + "regular"
	FontBold    = EmbeddedPrefix + "bold"
	FontMono    = EmbeddedPrefix + "mono"
)

func registerDefaults(c *Cache) {
	c.Register(".ttf", loadFont)
	c.Register(".otf", loadFont)
	c.Register(".png", loadTexture)
	c.Register(".bmp", loadTexture)
	c.Register(".webp", loadTexture)
	c.Register(".json", loadSpriteSheet)

	c.RegisterEmbedded("regular", embeddedFont(goregular.TTF))
	c.RegisterEmbedded("bold", embeddedFont(gobold.TTF))
	c.RegisterEmbedded("mono", embeddedFont(gomono.TTF))
}

func embeddedFont(data []byte) Loader {
	return func(_ *Cache, key string) (any, error) {
		return render.ParseFont(key, data)
	}
}

func loadFont(c *Cache, key string) (any, error) {
	data, err := c.ReadFile(key)
	if err != nil {
		return nil, err
	}
	return render.ParseFont(key, data)
}

func loadTexture(c *Cache, key string) (any, error) {
	file, err := c.Open(key)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, eris.Wrapf(err, "decode image %s", key)
	}
	return &render.Texture{Name: key, Image: img}, nil
}

// loadSpriteSheet decodes the sheet and loads its texture so that a missing
// image fails at load time rather than on the first draw
func loadSpriteSheet(c *Cache, key string) (any, error) {
	file, err := c.Open(key)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	sheet, err := render.DecodeSpriteSheet(file, path.Dir(key))
	if err != nil {
		return nil, err
	}

	texture, err := Get[*render.Texture](c, sheet.Image)
	if err != nil {
		return nil, err
	}
	if sheet.Width == 0 || sheet.Height == 0 {
		sheet.Width, sheet.Height = texture.Size()
	}
	return sheet, nil
}
