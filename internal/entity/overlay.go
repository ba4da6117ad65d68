package entity

import "image"

type OverlayKind string

const (
	KindLogo             OverlayKind = "logo"
	KindLogoBackground   OverlayKind = "logo-background"
	KindCoupon           OverlayKind = "coupon"
	KindCouponBackground OverlayKind = "coupon-background"
	KindUSPStrip         OverlayKind = "usp-strip"
)

// OverlaySpec describes one overlay. X, Y and Size are fractions of the base
// image (Size is relative to its width). Background kinds are positioned by
// their foreground spec, so only their Image is read.
type OverlaySpec struct {
	Kind      OverlayKind `json:"kind"`
	Image     []byte      `json:"-"`
	X         float64     `json:"x"`
	Y         float64     `json:"y"`
	Size      float64     `json:"size"`
	FillColor string      `json:"fill_color,omitempty"`
	TextColor string      `json:"text_color,omitempty"`
	Text      []string    `json:"text,omitempty"`
}

// HasImage reports whether image bytes were supplied.
func (s OverlaySpec) HasImage() bool {
	return len(s.Image) > 0
}

// Params is the full, immutable input of a render besides the base image.
type Params struct {
	Logo             OverlaySpec `json:"logo"`
	LogoBackground   OverlaySpec `json:"logo_background"`
	Coupon           OverlaySpec `json:"coupon"`
	CouponBackground OverlaySpec `json:"coupon_background"`
	USPStrip         OverlaySpec `json:"usp_strip"`
	FontPath         string      `json:"font_path,omitempty"`
}

// DefaultParams mirrors the defaults of the creative form.
func DefaultParams() Params {
	return Params{
		Logo:             OverlaySpec{Kind: KindLogo, X: 0.05, Y: 0.05, Size: 0.15},
		LogoBackground:   OverlaySpec{Kind: KindLogoBackground},
		Coupon:           OverlaySpec{Kind: KindCoupon, X: 0.50, Y: 0.05, Size: 0.20, FillColor: "#FFFFFF", TextColor: "#FF0000"},
		CouponBackground: OverlaySpec{Kind: KindCouponBackground},
		USPStrip:         OverlaySpec{Kind: KindUSPStrip, FillColor: "#000000", TextColor: "#FFFFFF"},
	}
}

// Rectangle is an absolute pixel box on one base image.
type Rectangle struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (r Rectangle) Bounds() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Center returns the midpoint, rounded down.
func (r Rectangle) Center() image.Point {
	return image.Pt(r.X+r.Width/2, r.Y+r.Height/2)
}
