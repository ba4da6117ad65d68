package compositor

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"

	"github.com/disintegration/imaging"
	"github.com/ds124wfegd/WB_L3/6/internal/entity"

	_ "golang.org/x/image/webp"
)

// DefaultMaxPixels bounds the decoded size of any input image, about
// 160 MB as RGBA.
const DefaultMaxPixels = 40_000_000

var errEmptyImage = errors.New("empty image data")

// Surface is the RGBA canvas a render draws on.
type Surface struct {
	*image.RGBA
}

// NewSurface copies img into a fresh RGBA buffer anchored at the origin.
func NewSurface(img image.Image) *Surface {
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return &Surface{RGBA: rgba}
}

func (s *Surface) Width() int  { return s.Bounds().Dx() }
func (s *Surface) Height() int { return s.Bounds().Dy() }

// Decode reads PNG, JPEG, GIF, BMP, TIFF or WebP bytes. The header is
// checked against maxPixels before any pixel buffer is allocated; a
// non-positive maxPixels disables the check.
func Decode(kind entity.OverlayKind, data []byte, maxPixels int) (image.Image, error) {
	if len(data) == 0 {
		return nil, &entity.ImageDecodeError{Kind: kind, Err: errEmptyImage}
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, &entity.ImageDecodeError{Kind: kind, Err: err}
	}
	if maxPixels > 0 && int64(cfg.Width)*int64(cfg.Height) > int64(maxPixels) {
		return nil, &entity.ImageDecodeError{
			Kind: kind,
			Err:  fmt.Errorf("%w: %dx%d, limit %d", entity.ErrImageTooLarge, cfg.Width, cfg.Height, maxPixels),
		}
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &entity.ImageDecodeError{Kind: kind, Err: err}
	}
	return img, nil
}

// DecodeSurface decodes data and normalizes it to RGBA.
func DecodeSurface(data []byte, maxPixels int) (*Surface, error) {
	img, err := Decode("", data, maxPixels)
	if err != nil {
		return nil, err
	}
	return NewSurface(img), nil
}

// Encode writes the surface as PNG, the only output format.
func Encode(s *Surface) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, s.RGBA, imaging.PNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func imageSize(img image.Image) image.Point {
	return img.Bounds().Size()
}
