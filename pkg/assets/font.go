package assets

import (
	"os"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	apperrors "github.com/young-islanders/sharepic/pkg/errors"
)

// Font is a parsed typeface plus a cache of sized faces. Faces are reused
// across a render pass so metrics are computed once per size.
type Font struct {
	ttf *truetype.Font

	mu    sync.Mutex
	faces map[float64]font.Face
}

// LoadFont resolves a typeface. An explicit file wins over a family-name
// lookup through the system font directories. With neither given, the
// embedded Go Regular face is used so rendering works on bare systems.
func LoadFont(name, file string) (*Font, error) {
	switch {
	case file != "":
		return loadFontFile(file)
	case name != "":
		path, err := findfont.Find(name)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeFontLoad, err, "font %q not found", name)
		}
		return loadFontFile(path)
	default:
		return parseFont(goregular.TTF, "embedded Go Regular")
	}
}

func loadFontFile(path string) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeFontLoad, err, "read font %s", path)
	}
	return parseFont(data, path)
}

func parseFont(data []byte, origin string) (*Font, error) {
	ttf, err := truetype.Parse(data)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeFontLoad, err, "parse font %s", origin)
	}
	return &Font{ttf: ttf, faces: make(map[float64]font.Face)}, nil
}

// Face returns a face for the given point size, creating and caching it on
// first use.
func (f *Font) Face(size float64) font.Face {
	f.mu.Lock()
	defer f.mu.Unlock()

	if face, ok := f.faces[size]; ok {
		return face
	}
	face := truetype.NewFace(f.ttf, &truetype.Options{
		Size:    size,
		DPI:     96,
		Hinting: font.HintingFull,
	})
	f.faces[size] = face
	return face
}
