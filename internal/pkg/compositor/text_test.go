package compositor

import (
	"testing"

	"github.com/ds124wfegd/WB_L3/6/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font"
)

func builtinFace(t *testing.T, size int) font.Face {
	t.Helper()
	spec, fallback := ResolveFont("", size)
	require.False(t, fallback)
	face, err := spec.Face()
	require.NoError(t, err)
	t.Cleanup(func() { face.Close() })
	return face
}

func TestCouponFontSize(t *testing.T) {
	assert.Equal(t, 20, CouponFontSize(512))
	assert.Equal(t, 43, CouponFontSize(1080))
	assert.Equal(t, 1, CouponFontSize(5))
}

func TestStripFontSize(t *testing.T) {
	tests := []struct {
		name   string
		stripH int
		lines  int
		expect int
	}{
		{name: "three lines on 512px image", stripH: 77, lines: 3, expect: 17},
		{name: "single line", stripH: 77, lines: 1, expect: 31},
		{name: "no lines", stripH: 77, lines: 0, expect: 51},
		{name: "floored at 10", stripH: 77, lines: 10, expect: 10},
		{name: "tiny strip", stripH: 8, lines: 2, expect: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, StripFontSize(tt.stripH, tt.lines))
		})
	}
}

func TestUSPLines(t *testing.T) {
	lines := USPLines([]string{"  65+ years of experience ", "", "Free Cancellation\n\n4+ rating on Trustpilot", "   "})
	assert.Equal(t, []string{"65+ years of experience", "Free Cancellation", "4+ rating on Trustpilot"}, lines)
	assert.Empty(t, USPLines(nil))
}

func TestCouponText(t *testing.T) {
	assert.Equal(t, "25% off", CouponText([]string{" 25% off "}))
	assert.Equal(t, "25% off today", CouponText([]string{"25% off", "today"}))
	assert.Equal(t, "", CouponText([]string{"  "}))
}

func TestLayoutCouponCentersInk(t *testing.T) {
	face := builtinFace(t, CouponFontSize(512))
	rects := []entity.Rectangle{
		{X: 307, Y: -5, Width: 154, Height: 62},
		{X: 10, Y: 300, Width: 400, Height: 160},
	}

	for _, rect := range rects {
		for _, text := range []string{"25% off", "Free shipping on everything!", "gyp"} {
			p := LayoutCoupon(face, text, rect)

			rectCX := float64(rect.X) + float64(rect.Width)/2
			rectCY := float64(rect.Y) + float64(rect.Height)/2
			inkCX := float64(p.Ink.Min.X+p.Ink.Max.X) / 2
			inkCY := float64(p.Ink.Min.Y+p.Ink.Max.Y) / 2

			assert.InDelta(t, rectCX, inkCX, 1.0, "text %q in %v", text, rect)
			assert.InDelta(t, rectCY, inkCY, 1.0, "text %q in %v", text, rect)
			assert.Equal(t, text, p.Text)
		}
	}
}

func TestLayoutStripStacksLines(t *testing.T) {
	lines := []string{"65+ years of experience", "Free Cancellation", "4+ rating on Trustpilot"}
	strip, err := StripRect(768, 512)
	require.NoError(t, err)

	size := StripFontSize(strip.Height, len(lines))
	require.Equal(t, 17, size)

	placements := LayoutStrip(builtinFace(t, size), lines, 768, strip, size)
	require.Len(t, placements, 3)

	assert.Equal(t, 440, placements[0].Top)
	assert.Equal(t, 462, placements[1].Top)
	assert.Equal(t, 484, placements[2].Top)

	for _, p := range placements {
		inkCX := float64(p.Ink.Min.X+p.Ink.Max.X) / 2
		assert.InDelta(t, 384.0, inkCX, 1.0, "line %q", p.Text)
		assert.GreaterOrEqual(t, p.Ink.Min.Y, strip.Y, "line %q starts above the strip", p.Text)
	}
}
