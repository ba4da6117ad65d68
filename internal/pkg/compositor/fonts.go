package compositor

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/ds124wfegd/WB_L3/6/internal/entity"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

var builtinFont = sync.OnceValues(func() (*opentype.Font, error) {
	return opentype.Parse(goregular.TTF)
})

// FontSpec is a font resource resolved at one point size.
type FontSpec struct {
	Path     string
	Size     int
	Fallback bool

	font    *opentype.Font
	loadErr error
}

// ResolveFont loads the TTF/OTF file at path for the given point size. When
// the file cannot be read or parsed the embedded Go Regular font is used and
// the second result is true. An empty path selects the embedded font without
// counting as a fallback.
func ResolveFont(path string, size int) (FontSpec, bool) {
	spec := FontSpec{Path: path, Size: size}

	if path != "" {
		parsed, err := parseFontFile(path)
		if err == nil {
			spec.font = parsed
			return spec, false
		}
		spec.loadErr = err
		spec.Fallback = true
	}

	parsed, err := builtinFont()
	if err != nil {
		// goregular.TTF is compiled in; this only fails on a broken build.
		panic(fmt.Sprintf("parse built-in font: %v", err))
	}
	spec.font = parsed
	return spec, spec.Fallback
}

func parseFontFile(path string) (*opentype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return opentype.Parse(data)
}

// LoadError returns the FontLoadError behind a fallback, or nil.
func (f FontSpec) LoadError() error {
	if !f.Fallback {
		return nil
	}
	return &entity.FontLoadError{Path: f.Path, Err: f.loadErr}
}

// Face returns a face at the resolved size. The caller closes it.
func (f FontSpec) Face() (font.Face, error) {
	if f.font == nil {
		return nil, errors.New("font spec is not resolved")
	}
	if f.Size <= 0 {
		return nil, fmt.Errorf("invalid font size %d", f.Size)
	}

	face, err := opentype.NewFace(f.font, &opentype.FaceOptions{
		Size:    float64(f.Size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}
	return face, nil
}
