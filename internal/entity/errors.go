package entity

import (
	"errors"
	"fmt"
)

var (
	// Creative errors
	ErrCreativeNotFound = errors.New("creative not found")
	ErrOutputNotReady   = errors.New("creative output is not ready")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidDimension = errors.New("invalid dimension format, expected WxH")

	// Generator errors
	ErrGeneratorUnavailable = errors.New("image generator is not configured")
	ErrGeneratorRejected    = errors.New("image generator rejected the request")
	ErrGeneratorForbidden   = errors.New("image generator denied access, check the api key")
	ErrGeneratorRateLimited = errors.New("image generator rate limit reached")
	ErrGeneratorUpstream    = errors.New("image generator failed")
	ErrNoPrediction         = errors.New("image generator returned no image")

	// Decode errors
	ErrImageTooLarge = errors.New("image exceeds the pixel limit")
)

// ImageDecodeError reports bytes that are not a supported raster image.
type ImageDecodeError struct {
	Kind OverlayKind
	Err  error
}

func (e *ImageDecodeError) Error() string {
	if e.Kind == "" {
		return fmt.Sprintf("decode image: %v", e.Err)
	}
	return fmt.Sprintf("decode %s image: %v", e.Kind, e.Err)
}

func (e *ImageDecodeError) Unwrap() error { return e.Err }

// FontLoadError is recoverable: rendering continues with the built-in font.
type FontLoadError struct {
	Path string
	Err  error
}

func (e *FontLoadError) Error() string {
	return fmt.Sprintf("load font %q: %v, using built-in font", e.Path, e.Err)
}

func (e *FontLoadError) Unwrap() error { return e.Err }

// GeometryError reports a degenerate rectangle. The overlay is skipped.
type GeometryError struct {
	Kind   OverlayKind
	Reason string
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("%s geometry: %s", e.Kind, e.Reason)
}
