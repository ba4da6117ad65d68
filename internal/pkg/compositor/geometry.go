package compositor

import (
	"fmt"
	"image"
	"math"

	"github.com/ds124wfegd/WB_L3/6/internal/entity"
)

const (
	logoBackgroundScale = 1.2
	defaultCouponAspect = 2.5
	stripHeightRatio    = 0.15
)

// LogoRect anchors the logo at its top-left corner. The width follows the
// size fraction, the height keeps the aspect ratio of src.
func LogoRect(baseW, baseH int, logo entity.OverlaySpec, src image.Point) (entity.Rectangle, error) {
	if err := checkSource(entity.KindLogo, src); err != nil {
		return entity.Rectangle{}, err
	}

	width := round(float64(baseW) * clamp01(logo.Size))
	rect := entity.Rectangle{
		X:      round(float64(baseW) * clamp01(logo.X)),
		Y:      round(float64(baseH) * clamp01(logo.Y)),
		Width:  width,
		Height: scaledHeight(width, src),
	}
	return rect, checkRect(entity.KindLogo, rect)
}

// LogoBackgroundRect is 20% wider than the logo and centered on the logo box.
// logoHeight is the resolved logo height, or 0 when no logo is drawn; in that
// case the background is not shifted vertically.
func LogoBackgroundRect(baseW, baseH int, logo entity.OverlaySpec, src image.Point, logoHeight int) (entity.Rectangle, error) {
	if err := checkSource(entity.KindLogoBackground, src); err != nil {
		return entity.Rectangle{}, err
	}

	size := clamp01(logo.Size)
	logoWidth := round(float64(baseW) * size)
	width := round(float64(baseW) * size * logoBackgroundScale)
	height := scaledHeight(width, src)

	x := round(float64(baseW) * clamp01(logo.X))
	y := round(float64(baseH) * clamp01(logo.Y))

	rect := entity.Rectangle{
		X:      x - (width-logoWidth)/2,
		Y:      y,
		Width:  width,
		Height: height,
	}
	if logoHeight > 0 {
		rect.Y = y - (height-logoHeight)/2
	}
	return rect, checkRect(entity.KindLogoBackground, rect)
}

// CouponRect is centered on the coupon position. A zero src selects the
// default 2.5:1 aspect ratio used for solid-fill coupons.
func CouponRect(baseW, baseH int, coupon entity.OverlaySpec, src image.Point) (entity.Rectangle, error) {
	width := round(float64(baseW) * clamp01(coupon.Size))

	var height int
	if src == (image.Point{}) {
		height = round(float64(width) / defaultCouponAspect)
	} else {
		if err := checkSource(entity.KindCouponBackground, src); err != nil {
			return entity.Rectangle{}, err
		}
		height = scaledHeight(width, src)
	}

	cx := round(float64(baseW) * clamp01(coupon.X))
	cy := round(float64(baseH) * clamp01(coupon.Y))

	rect := entity.Rectangle{
		X:      cx - width/2,
		Y:      cy - height/2,
		Width:  width,
		Height: height,
	}
	return rect, checkRect(entity.KindCoupon, rect)
}

// StripRect spans the full width at the bottom of the image.
func StripRect(baseW, baseH int) (entity.Rectangle, error) {
	height := round(float64(baseH) * stripHeightRatio)
	rect := entity.Rectangle{
		X:      0,
		Y:      baseH - height,
		Width:  baseW,
		Height: height,
	}
	return rect, checkRect(entity.KindUSPStrip, rect)
}

func scaledHeight(width int, src image.Point) int {
	return round(float64(width) * float64(src.Y) / float64(src.X))
}

func checkSource(kind entity.OverlayKind, src image.Point) error {
	if src.X <= 0 || src.Y <= 0 {
		return &entity.GeometryError{
			Kind:   kind,
			Reason: fmt.Sprintf("source image has non-positive size %dx%d", src.X, src.Y),
		}
	}
	return nil
}

func checkRect(kind entity.OverlayKind, r entity.Rectangle) error {
	if r.Width <= 0 || r.Height <= 0 {
		return &entity.GeometryError{
			Kind:   kind,
			Reason: fmt.Sprintf("resolved size %dx%d is not positive", r.Width, r.Height),
		}
	}
	return nil
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

func round(v float64) int {
	return int(math.Round(v))
}
