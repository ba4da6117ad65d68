package compositor

import (
	"image"
	"image/color"
	"testing"

	"github.com/ds124wfegd/WB_L3/6/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSurface(t *testing.T) {
	tests := []struct {
		name string
		data func(t *testing.T) []byte
		w, h int
	}{
		{
			name: "png",
			data: func(t *testing.T) []byte { return solidPNG(t, 64, 32, red) },
			w:    64,
			h:    32,
		},
		{
			name: "jpeg without alpha",
			data: func(t *testing.T) []byte { return solidJPEG(t, 40, 50, blue) },
			w:    40,
			h:    50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			surface, err := DecodeSurface(tt.data(t), DefaultMaxPixels)
			require.NoError(t, err)
			assert.Equal(t, tt.w, surface.Width())
			assert.Equal(t, tt.h, surface.Height())
			assert.Equal(t, image.Point{}, surface.Bounds().Min)
			assert.Equal(t, uint8(255), surface.RGBAAt(tt.w/2, tt.h/2).A)
		})
	}
}

func TestDecodeRejectsInvalidBytes(t *testing.T) {
	for name, data := range map[string][]byte{
		"nil":       nil,
		"empty":     {},
		"garbage":   []byte("definitely not an image"),
		"truncated": solidPNG(t, 16, 16, red)[:20],
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(entity.KindLogo, data, DefaultMaxPixels)
			var decodeErr *entity.ImageDecodeError
			require.ErrorAs(t, err, &decodeErr)
			assert.Equal(t, entity.KindLogo, decodeErr.Kind)
		})
	}
}

func TestDecodeRejectsOversizedImages(t *testing.T) {
	tests := []struct {
		name      string
		data      func(t *testing.T) []byte
		maxPixels int
	}{
		{
			name:      "header claims 40000x40000",
			data:      func(t *testing.T) []byte { return pngHeader(40000, 40000) },
			maxPixels: DefaultMaxPixels,
		},
		{
			name:      "real image over a small limit",
			data:      func(t *testing.T) []byte { return solidPNG(t, 20, 20, red) },
			maxPixels: 399,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(entity.KindLogo, tt.data(t), tt.maxPixels)
			var decodeErr *entity.ImageDecodeError
			require.ErrorAs(t, err, &decodeErr)
			assert.Equal(t, entity.KindLogo, decodeErr.Kind)
			assert.ErrorIs(t, err, entity.ErrImageTooLarge)
		})
	}
}

func TestDecodeLimitIsInclusive(t *testing.T) {
	img, err := Decode(entity.KindLogo, solidPNG(t, 20, 20, red), 400)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(20, 20), imageSize(img))

	_, err = Decode(entity.KindLogo, solidPNG(t, 20, 20, red), 0)
	assert.NoError(t, err)
}

func TestNewSurfaceMovesOriginToZero(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 10, 30, 20))
	fillImageWithColor(src, green)

	surface := NewSurface(src)
	assert.Equal(t, image.Rect(0, 0, 20, 10), surface.Bounds())
	assert.Equal(t, green, surface.RGBAAt(0, 0))
}

func TestEncodePreservesAlpha(t *testing.T) {
	surface := NewSurface(image.NewRGBA(image.Rect(0, 0, 8, 8)))
	surface.SetRGBA(1, 1, color.RGBA{R: 64, G: 0, B: 0, A: 128})
	surface.SetRGBA(2, 2, red)

	out, err := Encode(surface)
	require.NoError(t, err)

	img := decodePNG(t, out)
	assert.Equal(t, image.Rect(0, 0, 8, 8), img.Bounds())
	assert.Equal(t, uint8(0), rgbaAt(img, 0, 0).A)
	assert.Equal(t, uint8(128), rgbaAt(img, 1, 1).A)
	assert.Equal(t, red, rgbaAt(img, 2, 2))
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in     string
		expect color.RGBA
		ok     bool
	}{
		{in: "#FF0000", expect: red, ok: true},
		{in: "#ffffff", expect: white, ok: true},
		{in: "000000", expect: black, ok: true},
		{in: "#0f0", expect: green, ok: true},
		{in: "", ok: false},
		{in: "#12345", ok: false},
		{in: "tomato", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := parseColor(tt.in)
			if !tt.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expect, c)
		})
	}
}
