package compositor

import (
	"image"
	"math"
	"testing"

	"github.com/ds124wfegd/WB_L3/6/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogoRect(t *testing.T) {
	tests := []struct {
		name   string
		baseW  int
		baseH  int
		spec   entity.OverlaySpec
		src    image.Point
		expect entity.Rectangle
	}{
		{
			name:   "default logo on 768x512",
			baseW:  768,
			baseH:  512,
			spec:   entity.OverlaySpec{X: 0.05, Y: 0.05, Size: 0.15},
			src:    image.Pt(200, 100),
			expect: entity.Rectangle{X: 38, Y: 26, Width: 115, Height: 58},
		},
		{
			name:   "portrait logo",
			baseW:  1000,
			baseH:  1000,
			spec:   entity.OverlaySpec{X: 0.5, Y: 0.25, Size: 0.1},
			src:    image.Pt(50, 150),
			expect: entity.Rectangle{X: 500, Y: 250, Width: 100, Height: 300},
		},
		{
			name:   "fractions are clamped",
			baseW:  400,
			baseH:  300,
			spec:   entity.OverlaySpec{X: 1.7, Y: -0.2, Size: 0.25},
			src:    image.Pt(10, 10),
			expect: entity.Rectangle{X: 400, Y: 0, Width: 100, Height: 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rect, err := LogoRect(tt.baseW, tt.baseH, tt.spec, tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.expect, rect)
		})
	}
}

func TestLogoRectKeepsAspectRatio(t *testing.T) {
	sources := []image.Point{image.Pt(200, 100), image.Pt(97, 131), image.Pt(640, 480), image.Pt(33, 7)}
	sizes := []float64{0.01, 0.07, 0.15, 0.3}

	for _, src := range sources {
		for _, sz := range sizes {
			rect, err := LogoRect(768, 512, entity.OverlaySpec{Size: sz}, src)
			require.NoError(t, err)

			assert.Equal(t, int(math.Round(768*sz)), rect.Width)
			want := float64(rect.Width) * float64(src.Y) / float64(src.X)
			assert.InDelta(t, want, float64(rect.Height), 1.0, "src %v size %v", src, sz)
		}
	}
}

func TestLogoBackgroundRect(t *testing.T) {
	logo := entity.OverlaySpec{X: 0.05, Y: 0.05, Size: 0.15}

	t.Run("centered on the logo box", func(t *testing.T) {
		rect, err := LogoBackgroundRect(768, 512, logo, image.Pt(100, 100), 58)
		require.NoError(t, err)
		assert.Equal(t, entity.Rectangle{X: 27, Y: -14, Width: 138, Height: 138}, rect)
	})

	t.Run("no vertical offset without a logo", func(t *testing.T) {
		rect, err := LogoBackgroundRect(768, 512, logo, image.Pt(100, 100), 0)
		require.NoError(t, err)
		assert.Equal(t, entity.Rectangle{X: 27, Y: 26, Width: 138, Height: 138}, rect)
	})

	t.Run("degenerate source", func(t *testing.T) {
		_, err := LogoBackgroundRect(768, 512, logo, image.Pt(0, 10), 58)
		var geomErr *entity.GeometryError
		require.ErrorAs(t, err, &geomErr)
		assert.Equal(t, entity.KindLogoBackground, geomErr.Kind)
	})
}

func TestCouponRect(t *testing.T) {
	coupon := entity.OverlaySpec{X: 0.5, Y: 0.05, Size: 0.20}

	t.Run("default aspect", func(t *testing.T) {
		rect, err := CouponRect(768, 512, coupon, image.Point{})
		require.NoError(t, err)
		assert.Equal(t, 154, rect.Width)
		assert.Equal(t, 62, rect.Height)
		assert.Equal(t, image.Pt(384, 26), rect.Center())
		assert.Equal(t, entity.Rectangle{X: 307, Y: -5, Width: 154, Height: 62}, rect)
	})

	t.Run("background image aspect", func(t *testing.T) {
		rect, err := CouponRect(768, 512, coupon, image.Pt(300, 100))
		require.NoError(t, err)
		assert.Equal(t, 154, rect.Width)
		assert.Equal(t, 51, rect.Height)
		assert.Equal(t, image.Pt(384, 26), rect.Center())
	})

	t.Run("zero size", func(t *testing.T) {
		_, err := CouponRect(768, 512, entity.OverlaySpec{X: 0.5, Y: 0.5}, image.Point{})
		var geomErr *entity.GeometryError
		require.ErrorAs(t, err, &geomErr)
		assert.Equal(t, entity.KindCoupon, geomErr.Kind)
	})
}

func TestCouponRectIsCentered(t *testing.T) {
	for _, dims := range []image.Point{image.Pt(768, 512), image.Pt(1024, 1024), image.Pt(333, 777)} {
		for px := 0.0; px <= 1.0; px += 0.1 {
			for py := 0.0; py <= 1.0; py += 0.1 {
				spec := entity.OverlaySpec{X: px, Y: py, Size: 0.2}
				rect, err := CouponRect(dims.X, dims.Y, spec, image.Point{})
				require.NoError(t, err)

				want := image.Pt(
					int(math.Round(float64(dims.X)*clamp01(px))),
					int(math.Round(float64(dims.Y)*clamp01(py))),
				)
				assert.Equal(t, want, rect.Center(), "dims %v pos (%.1f, %.1f)", dims, px, py)
			}
		}
	}
}

func TestStripRect(t *testing.T) {
	rect, err := StripRect(768, 512)
	require.NoError(t, err)
	assert.Equal(t, entity.Rectangle{X: 0, Y: 435, Width: 768, Height: 77}, rect)

	for _, h := range []int{20, 99, 512, 513, 1080, 2161} {
		rect, err := StripRect(640, h)
		require.NoError(t, err)
		assert.Equal(t, int(math.Round(float64(h)*0.15)), rect.Height)
		assert.Equal(t, 640, rect.Width)
		assert.Equal(t, h, rect.Y+rect.Height)
	}

	_, err = StripRect(640, 3)
	var geomErr *entity.GeometryError
	assert.ErrorAs(t, err, &geomErr)
}
