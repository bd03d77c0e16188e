package render

import (
	"strings"
	"sync"

	"github.com/rotisserie/eris"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/norm"

	"github.com/plus3/kite/components"
)

// Font is a parsed TrueType or OpenType font. Faces are created per size on demand.
type Font struct {
	Name string

	data  []byte
	sfnt  *opentype.Font
	mu    sync.Mutex
	faces map[float32]font.Face
}

// ParseFont parses font data. The data is kept so backends can build their own faces.
func ParseFont(name string, data []byte) (*Font, error) {
	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, eris.Wrapf(err, "parse font %s", name)
	}

	return &Font{
		Name:  name,
		data:  data,
		sfnt:  parsed,
		faces: make(map[float32]font.Face),
	}, nil
}

// Data returns the raw font file.
func (f *Font) Data() []byte {
	return f.data
}

// Face returns a face of the given size in logical pixels.
func (f *Font) Face(size float32) (font.Face, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if face, ok := f.faces[size]; ok {
		return face, nil
	}

	face, err := opentype.NewFace(f.sfnt, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, eris.Wrapf(err, "face %s at %.1f", f.Name, size)
	}
	f.faces[size] = face
	return face, nil
}

// Measure returns the size of text drawn at the given size. Lines are split on
// newlines; the width is the widest line.
func (f *Font) Measure(text string, size float32) (components.Size, error) {
	face, err := f.Face(size)
	if err != nil {
		return components.Size{}, err
	}

	lines := strings.Split(NormalizeText(text), "\n")

	var widest fixed.Int26_6
	for _, line := range lines {
		if advance := font.MeasureString(face, line); advance > widest {
			widest = advance
		}
	}

	lineHeight := face.Metrics().Height
	return components.Size{
		Width:  fixedToFloat(widest),
		Height: fixedToFloat(lineHeight) * float32(len(lines)),
	}, nil
}

// NormalizeText returns text in NFC form so composed and decomposed input measure and draw alike.
func NormalizeText(text string) string {
	return norm.NFC.String(text)
}

func fixedToFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}
