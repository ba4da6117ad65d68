package transport

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/ds124wfegd/WB_L3/6/internal/entity"
	"github.com/ds124wfegd/WB_L3/6/internal/service"
	"github.com/gin-gonic/gin"
)

const defaultDimensions = "768x512"

// creativeForm mirrors the creative builder form. Positions and sizes are
// percents of the base image.
type creativeForm struct {
	Prompt     string `form:"prompt"`
	Dimensions string `form:"dimensions"`

	LogoX    float64 `form:"logo_x,default=5" binding:"min=0,max=100"`
	LogoY    float64 `form:"logo_y,default=5" binding:"min=0,max=100"`
	LogoSize float64 `form:"logo_size,default=15" binding:"min=0,max=100"`

	CouponX    float64 `form:"coupon_x,default=50" binding:"min=0,max=100"`
	CouponY    float64 `form:"coupon_y,default=5" binding:"min=0,max=100"`
	CouponSize float64 `form:"coupon_size,default=20" binding:"min=0,max=100"`

	CouponText      string `form:"coupon_text"`
	CouponTextColor string `form:"coupon_text_color,default=#FF0000"`
	CouponBgColor   string `form:"coupon_bg_color,default=#FFFFFF"`

	USPs           string `form:"usps"`
	StripBgColor   string `form:"strip_bg_color,default=#000000"`
	StripTextColor string `form:"strip_text_color,default=#FFFFFF"`
}

// bindCreativeRequest reads the multipart form and its uploaded files.
func (h *CreativeHandler) bindCreativeRequest(c *gin.Context) (service.CreativeRequest, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	var form creativeForm
	if err := c.ShouldBind(&form); err != nil {
		return service.CreativeRequest{}, fmt.Errorf("%w: %w", entity.ErrInvalidInput, err)
	}

	width, height, err := parseDimensions(form.Dimensions)
	if err != nil {
		return service.CreativeRequest{}, err
	}

	params := entity.DefaultParams()
	params.Logo.X = form.LogoX / 100
	params.Logo.Y = form.LogoY / 100
	params.Logo.Size = form.LogoSize / 100
	params.Coupon.X = form.CouponX / 100
	params.Coupon.Y = form.CouponY / 100
	params.Coupon.Size = form.CouponSize / 100
	params.Coupon.FillColor = form.CouponBgColor
	params.Coupon.TextColor = form.CouponTextColor
	params.USPStrip.FillColor = form.StripBgColor
	params.USPStrip.TextColor = form.StripTextColor
	if text := strings.TrimSpace(form.CouponText); text != "" {
		params.Coupon.Text = []string{text}
	}
	if form.USPs != "" {
		params.USPStrip.Text = strings.Split(form.USPs, "\n")
	}

	req := service.CreativeRequest{
		Prompt: strings.TrimSpace(form.Prompt),
		Width:  width,
		Height: height,
		Params: params,
	}

	files := []struct {
		field string
		dst   *[]byte
	}{
		{"base_image", &req.Base},
		{"reference_image", &req.Reference},
		{"logo", &req.Params.Logo.Image},
		{"logo_background", &req.Params.LogoBackground.Image},
		{"coupon_background", &req.Params.CouponBackground.Image},
	}
	for _, f := range files {
		data, err := h.readFile(c, f.field)
		if err != nil {
			return service.CreativeRequest{}, err
		}
		*f.dst = data
	}
	return req, nil
}

// readFile returns nil for a field that carries no upload.
func (h *CreativeHandler) readFile(c *gin.Context, field string) ([]byte, error) {
	header, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", entity.ErrInvalidInput, field, err)
	}
	if header.Size > h.maxUploadBytes {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", entity.ErrInvalidInput, field, h.maxUploadBytes)
	}

	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return io.ReadAll(file)
}

// parseDimensions parses "WxH"; an empty value selects the default size.
func parseDimensions(s string) (int, int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		s = defaultDimensions
	}
	parts := strings.Split(strings.ToLower(s), "x")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", entity.ErrInvalidDimension, s)
	}
	width, errW := strconv.Atoi(strings.TrimSpace(parts[0]))
	height, errH := strconv.Atoi(strings.TrimSpace(parts[1]))
	if errW != nil || errH != nil || width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("%w: %q", entity.ErrInvalidDimension, s)
	}
	return width, height, nil
}
