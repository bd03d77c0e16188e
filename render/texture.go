package render

import "image"

// Texture is a decoded image resource.
type Texture struct {
	Name  string
	Image image.Image
}

// Size returns the texture dimensions in pixels.
func (t *Texture) Size() (int, int) {
	b := t.Image.Bounds()
	return b.Dx(), b.Dy()
}

// Sheet returns a single frame sheet covering the whole texture.
func (t *Texture) Sheet() *SpriteSheet {
	w, h := t.Size()
	return SingleTexture(t.Name, w, h)
}
