package raster

import (
	"errors"
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"
)

// ErrRenderTarget means a raster surface could not be allocated.
// Fatal for the call; never retried.
var ErrRenderTarget = errors.New("render target unavailable")

// maxSurfacePixels caps surface allocation at 256 megapixels (~1 GB
// NRGBA). Anything larger is treated as an allocation failure rather
// than an OOM risk.
const maxSurfacePixels = 256 << 20

// Surface is a temporary drawing target owned by a single crop or
// compress call. Iterations within one call may reuse it sequentially;
// it must never be shared across concurrent calls.
type Surface struct {
	dst *image.NRGBA
}

// NewSurface allocates a surface of the given pixel dimensions.
func NewSurface(w, h int) (*Surface, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: invalid dimensions %dx%d", ErrRenderTarget, w, h)
	}
	if int64(w)*int64(h) > maxSurfacePixels {
		return nil, fmt.Errorf("%w: %dx%d exceeds pixel limit", ErrRenderTarget, w, h)
	}
	return &Surface{dst: image.NewNRGBA(image.Rect(0, 0, w, h))}, nil
}

// Draw renders srcRect of src into dstRect of the surface, scaling with
// CatmullRom interpolation.
func (s *Surface) Draw(src image.Image, srcRect, dstRect image.Rectangle) {
	xdraw.CatmullRom.Scale(s.dst, dstRect, src, srcRect, xdraw.Src, nil)
}

// DrawImage renders the whole of src across the whole surface.
func (s *Surface) DrawImage(src image.Image) {
	s.Draw(src, src.Bounds(), s.dst.Bounds())
}

// Image returns the surface pixels for encoding.
func (s *Surface) Image() image.Image { return s.dst }

// Width returns the surface width in pixels.
func (s *Surface) Width() int { return s.dst.Bounds().Dx() }

// Height returns the surface height in pixels.
func (s *Surface) Height() int { return s.dst.Bounds().Dy() }
