package compositor

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	"github.com/ds124wfegd/WB_L3/6/internal/entity"
	"golang.org/x/image/font"
)

// Layer names one compositing step. Steps run in declaration order.
type Layer string

const (
	LayerLogoBackground   Layer = "logo-background"
	LayerLogo             Layer = "logo"
	LayerCouponBackground Layer = "coupon-background"
	LayerCouponText       Layer = "coupon-text"
	LayerStripBackground  Layer = "strip-background"
	LayerStripText        Layer = "strip-text"
	LayerFont             Layer = "font"
)

// errAbsent marks an optional overlay that was not supplied.
var errAbsent = errors.New("overlay not supplied")

// Warning is a non-fatal failure of one layer.
type Warning struct {
	Layer Layer
	Err   error
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %v", w.Layer, w.Err)
}

// Report lists the layers drawn and the ones that failed.
type Report struct {
	Layers   []Layer
	Warnings []Warning
}

// WarningStrings flattens the warnings for logs and API responses.
func (r Report) WarningStrings() []string {
	out := make([]string, 0, len(r.Warnings))
	for _, w := range r.Warnings {
		out = append(out, w.String())
	}
	return out
}

type Result struct {
	PNG    []byte
	Width  int
	Height int
	Report
}

// Renderer composites overlays onto base images. It holds no per-render
// state and is safe for concurrent use.
type Renderer struct {
	fontPath  string
	maxPixels int
}

type Option func(*Renderer)

// WithMaxPixels overrides DefaultMaxPixels for every decoded image.
func WithMaxPixels(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.maxPixels = n
		}
	}
}

func NewRenderer(fontPath string, opts ...Option) *Renderer {
	r := &Renderer{fontPath: fontPath, maxPixels: DefaultMaxPixels}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// FontPath returns the font a render of params uses: its own path, else the
// renderer default.
func (r *Renderer) FontPath(params entity.Params) string {
	if params.FontPath != "" {
		return params.FontPath
	}
	return r.fontPath
}

// Render decodes base, applies every overlay in params and returns the PNG.
// Only an unreadable base image or a failed encode is returned as an error;
// overlay failures end up in the report.
func (r *Renderer) Render(base []byte, params entity.Params) (*Result, error) {
	surface, err := DecodeSurface(base, r.maxPixels)
	if err != nil {
		return nil, err
	}

	surface, report := r.Composite(surface, params)

	out, err := Encode(surface)
	if err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}

	return &Result{
		PNG:    out,
		Width:  surface.Width(),
		Height: surface.Height(),
		Report: report,
	}, nil
}

// Composite draws the overlays on s in place and returns s.
func (r *Renderer) Composite(s *Surface, params entity.Params) (*Surface, Report) {
	c := &composition{
		surface:   s,
		params:    params,
		fontPath:  r.FontPath(params),
		maxPixels: r.maxPixels,
		width:     s.Width(),
		height:    s.Height(),
	}
	c.run()
	return s, c.report
}

type composition struct {
	surface   *Surface
	params    entity.Params
	fontPath  string
	maxPixels int
	width     int
	height    int

	fontWarned bool
	report     Report
}

func (c *composition) run() {
	// The logo is decoded up front: the background is centered on it.
	logo, logoRect, logoErr := c.prepareLogo()
	logoHeight := 0
	if logoErr == nil {
		logoHeight = logoRect.Height
	}

	c.step(LayerLogoBackground, func() error {
		return c.drawLogoBackground(logoHeight)
	})
	c.step(LayerLogo, func() error {
		if logoErr != nil {
			return logoErr
		}
		c.paste(logo, logoRect)
		return nil
	})

	couponBg, couponRect, couponErr := c.prepareCoupon()
	c.step(LayerCouponBackground, func() error {
		if couponErr != nil {
			return couponErr
		}
		if couponBg != nil {
			c.paste(couponBg, couponRect)
			return nil
		}
		return c.fill(couponRect, c.params.Coupon.FillColor)
	})
	c.step(LayerCouponText, func() error {
		if couponErr != nil {
			return errAbsent
		}
		return c.drawCouponText(couponRect)
	})

	strip, stripErr := StripRect(c.width, c.height)
	c.step(LayerStripBackground, func() error {
		if stripErr != nil {
			return stripErr
		}
		return c.fill(strip, c.params.USPStrip.FillColor)
	})
	c.step(LayerStripText, func() error {
		if stripErr != nil {
			return errAbsent
		}
		return c.drawStripText(strip)
	})
}

// step records the outcome of one layer.
func (c *composition) step(layer Layer, fn func() error) {
	err := fn()
	switch {
	case err == nil:
		c.report.Layers = append(c.report.Layers, layer)
	case errors.Is(err, errAbsent):
	default:
		c.warn(layer, err)
	}
}

func (c *composition) warn(layer Layer, err error) {
	c.report.Warnings = append(c.report.Warnings, Warning{Layer: layer, Err: err})
}

func (c *composition) prepareLogo() (image.Image, entity.Rectangle, error) {
	if !c.params.Logo.HasImage() {
		return nil, entity.Rectangle{}, errAbsent
	}
	img, err := Decode(entity.KindLogo, c.params.Logo.Image, c.maxPixels)
	if err != nil {
		return nil, entity.Rectangle{}, err
	}
	rect, err := LogoRect(c.width, c.height, c.params.Logo, imageSize(img))
	if err != nil {
		return nil, entity.Rectangle{}, err
	}
	return img, rect, nil
}

func (c *composition) drawLogoBackground(logoHeight int) error {
	if !c.params.LogoBackground.HasImage() {
		return errAbsent
	}
	img, err := Decode(entity.KindLogoBackground, c.params.LogoBackground.Image, c.maxPixels)
	if err != nil {
		return err
	}
	rect, err := LogoBackgroundRect(c.width, c.height, c.params.Logo, imageSize(img), logoHeight)
	if err != nil {
		return err
	}
	c.paste(img, rect)
	return nil
}

// prepareCoupon resolves the coupon box. An unreadable background image is
// reported and the coupon falls back to the default aspect and a solid fill.
func (c *composition) prepareCoupon() (image.Image, entity.Rectangle, error) {
	var bg image.Image
	var src image.Point
	if c.params.CouponBackground.HasImage() {
		img, err := Decode(entity.KindCouponBackground, c.params.CouponBackground.Image, c.maxPixels)
		if err != nil {
			c.warn(LayerCouponBackground, err)
		} else {
			bg, src = img, imageSize(img)
		}
	}
	rect, err := CouponRect(c.width, c.height, c.params.Coupon, src)
	return bg, rect, err
}

func (c *composition) drawCouponText(rect entity.Rectangle) error {
	text := CouponText(c.params.Coupon.Text)
	if text == "" {
		return errAbsent
	}
	col, err := parseColor(c.params.Coupon.TextColor)
	if err != nil {
		return err
	}

	face, err := c.face(CouponFontSize(c.height))
	if err != nil {
		return err
	}
	defer face.Close()

	c.drawLine(face, col, LayoutCoupon(face, text, rect))
	return nil
}

func (c *composition) drawStripText(strip entity.Rectangle) error {
	lines := USPLines(c.params.USPStrip.Text)
	if len(lines) == 0 {
		return errAbsent
	}
	col, err := parseColor(c.params.USPStrip.TextColor)
	if err != nil {
		return err
	}

	size := StripFontSize(strip.Height, len(lines))
	face, err := c.face(size)
	if err != nil {
		return err
	}
	defer face.Close()

	for _, p := range LayoutStrip(face, lines, c.width, strip, size) {
		c.drawLine(face, col, p)
	}
	return nil
}

// face resolves the configured font, reporting a fallback once per render.
func (c *composition) face(size int) (font.Face, error) {
	spec, fallback := ResolveFont(c.fontPath, size)
	if fallback && !c.fontWarned {
		c.fontWarned = true
		c.warn(LayerFont, spec.LoadError())
	}
	return spec.Face()
}

// paste resizes img to rect and blends it over the surface using its alpha.
func (c *composition) paste(img image.Image, rect entity.Rectangle) {
	resized := imaging.Resize(img, rect.Width, rect.Height, imaging.Lanczos)
	draw.Draw(c.surface.RGBA, rect.Bounds(), resized, image.Point{}, draw.Over)
}

// fill paints rect with an opaque color, no blending.
func (c *composition) fill(rect entity.Rectangle, hex string) error {
	col, err := parseColor(hex)
	if err != nil {
		return err
	}
	draw.Draw(c.surface.RGBA, rect.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
	return nil
}

func (c *composition) drawLine(face font.Face, col color.RGBA, p LinePlacement) {
	d := &font.Drawer{
		Dst:  c.surface.RGBA,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  p.Dot,
	}
	d.DrawString(p.Text)
}
