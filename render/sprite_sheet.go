package render

import (
	"encoding/json"
	"io"
	"path"

	"github.com/rotisserie/eris"

	"github.com/plus3/kite/components"
)

// ErrUnknownFrame is returned when a sprite references a frame its sheet does not define.
var ErrUnknownFrame = eris.New("unknown sprite frame")

// Frame is a named region of a sprite sheet texture.
type Frame struct {
	Name   string
	Region Region
	Pivot  components.Position
}

// SpriteSheet maps frame names to regions of one texture.
type SpriteSheet struct {
	Image  string
	Width  int
	Height int
	frames map[string]Frame
}

type sheetFile struct {
	Frames []struct {
		Filename string `json:"filename"`
		Frame    struct {
			X int `json:"x"`
			Y int `json:"y"`
			W int `json:"w"`
			H int `json:"h"`
		} `json:"frame"`
		Pivot *struct {
			X float32 `json:"x"`
			Y float32 `json:"y"`
		} `json:"pivot"`
	} `json:"frames"`
	Meta struct {
		Image string `json:"image"`
		Size  struct {
			W int `json:"w"`
			H int `json:"h"`
		} `json:"size"`
	} `json:"meta"`
}

// DecodeSpriteSheet reads a JSON sprite sheet. The image path in meta is
// resolved relative to dir. Frames without a pivot default to the center.
func DecodeSpriteSheet(r io.Reader, dir string) (*SpriteSheet, error) {
	var file sheetFile
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return nil, eris.Wrap(err, "decode sprite sheet")
	}

	if file.Meta.Image == "" {
		return nil, eris.New("sprite sheet has no image")
	}

	sheet := &SpriteSheet{
		Image:  path.Join(dir, file.Meta.Image),
		Width:  file.Meta.Size.W,
		Height: file.Meta.Size.H,
		frames: make(map[string]Frame, len(file.Frames)),
	}

	for _, f := range file.Frames {
		if f.Filename == "" {
			return nil, eris.New("sprite sheet frame without filename")
		}
		frame := Frame{
			Name:   f.Filename,
			Region: Region{X: f.Frame.X, Y: f.Frame.Y, Width: f.Frame.W, Height: f.Frame.H},
			Pivot:  components.Position{X: 0.5, Y: 0.5},
		}
		if f.Pivot != nil {
			frame.Pivot = components.Position{X: f.Pivot.X, Y: f.Pivot.Y}
		}
		sheet.frames[f.Filename] = frame
	}

	return sheet, nil
}

// SingleTexture returns a sheet with one DefaultFrame covering the whole image.
func SingleTexture(image string, width, height int) *SpriteSheet {
	return &SpriteSheet{
		Image:  image,
		Width:  width,
		Height: height,
		frames: map[string]Frame{
			components.DefaultFrame: {
				Name:   components.DefaultFrame,
				Region: Region{Width: width, Height: height},
				Pivot:  components.Position{X: 0.5, Y: 0.5},
			},
		},
	}
}

// Frame returns a frame by name.
func (s *SpriteSheet) Frame(name string) (Frame, error) {
	if name == "" {
		name = components.DefaultFrame
	}
	frame, ok := s.frames[name]
	if !ok {
		return Frame{}, eris.Wrapf(ErrUnknownFrame, "frame %q in %s", name, s.Image)
	}
	return frame, nil
}

// Len returns the number of frames.
func (s *SpriteSheet) Len() int {
	return len(s.frames)
}
