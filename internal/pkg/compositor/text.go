package compositor

import (
	"image"
	"strings"

	"github.com/ds124wfegd/WB_L3/6/internal/entity"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

const (
	couponFontRatio  = 0.04
	minStripFontSize = 10
	stripPadding     = 5
)

// LinePlacement is one measured line of text ready to draw.
type LinePlacement struct {
	Text string
	// Dot is the baseline origin passed to font.Drawer.
	Dot fixed.Point26_6
	// Ink is the glyph bounding box once drawn at Dot.
	Ink image.Rectangle
	// Top is the y of the line's ascender edge.
	Top int
}

// CouponFontSize is 4% of the base image height.
func CouponFontSize(baseH int) int {
	return max(1, round(float64(baseH)*couponFontRatio))
}

// StripFontSize shares the strip height between the lines, never going
// below 10 points.
func StripFontSize(stripH, lines int) int {
	return max(minStripFontSize, round(float64(stripH)/(float64(lines)+1.5)))
}

// USPLines trims every line and drops the empty ones.
func USPLines(text []string) []string {
	lines := make([]string, 0, len(text))
	for _, t := range text {
		for _, line := range strings.Split(t, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				lines = append(lines, line)
			}
		}
	}
	return lines
}

// CouponText joins the coupon text into one line.
func CouponText(text []string) string {
	return strings.TrimSpace(strings.Join(USPLines(text), " "))
}

// LayoutCoupon centers the ink box of text inside rect on both axes.
func LayoutCoupon(face font.Face, text string, rect entity.Rectangle) LinePlacement {
	bounds, _ := font.BoundString(face, text)
	inkW := bounds.Max.X - bounds.Min.X
	inkH := bounds.Max.Y - bounds.Min.Y

	dot := fixed.Point26_6{
		X: fixed.I(rect.X) + (fixed.I(rect.Width)-inkW)/2 - bounds.Min.X,
		Y: fixed.I(rect.Y) + (fixed.I(rect.Height)-inkH)/2 - bounds.Min.Y,
	}
	return placement(face, text, dot, bounds)
}

// LayoutStrip centers every line horizontally across baseW and stacks the
// lines from 5px below the strip top, one font size plus 5px apart.
func LayoutStrip(face font.Face, lines []string, baseW int, strip entity.Rectangle, size int) []LinePlacement {
	ascent := face.Metrics().Ascent
	placements := make([]LinePlacement, 0, len(lines))

	for i, line := range lines {
		top := strip.Y + stripPadding + i*(size+stripPadding)
		bounds, _ := font.BoundString(face, line)
		inkW := bounds.Max.X - bounds.Min.X

		dot := fixed.Point26_6{
			X: (fixed.I(baseW)-inkW)/2 - bounds.Min.X,
			Y: fixed.I(top) + ascent,
		}
		placements = append(placements, placement(face, line, dot, bounds))
	}
	return placements
}

func placement(face font.Face, text string, dot fixed.Point26_6, bounds fixed.Rectangle26_6) LinePlacement {
	return LinePlacement{
		Text: text,
		Dot:  dot,
		Ink: image.Rect(
			(dot.X + bounds.Min.X).Floor(),
			(dot.Y + bounds.Min.Y).Floor(),
			(dot.X + bounds.Max.X).Ceil(),
			(dot.Y + bounds.Max.Y).Ceil(),
		),
		Top: (dot.Y - face.Metrics().Ascent).Round(),
	}
}
