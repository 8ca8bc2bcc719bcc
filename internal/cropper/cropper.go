// Package cropper extracts a display-space region of a decoded image
// and re-encodes it at maximum quality. Cropping is lossless-intent:
// there is no size search here, only coordinate mapping and one encode.
package cropper

import (
	"errors"
	"fmt"
	"image"

	"github.com/AnyUserName/imgfit-cli/internal/artifact"
	"github.com/AnyUserName/imgfit-cli/internal/encoder"
	"github.com/AnyUserName/imgfit-cli/internal/raster"
)

// ErrRegion means the crop region violates the image's display bounds.
var ErrRegion = errors.New("invalid crop region")

// Region is a crop rectangle in display-coordinate pixels. The image's
// display dimensions may differ from its natural dimensions when the
// caller rendered it scaled; Crop maps the region back to natural
// pixel space.
type Region struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Validate checks the region against the image's display bounds.
func (r Region) Validate(img *raster.DecodedImage) error {
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("%w: non-positive size %dx%d", ErrRegion, r.Width, r.Height)
	}
	if r.X < 0 || r.Y < 0 {
		return fmt.Errorf("%w: negative origin (%d,%d)", ErrRegion, r.X, r.Y)
	}
	if r.X+r.Width > img.DisplayWidth() || r.Y+r.Height > img.DisplayHeight() {
		return fmt.Errorf("%w: (%d,%d)+%dx%d exceeds display bounds %dx%d",
			ErrRegion, r.X, r.Y, r.Width, r.Height,
			img.DisplayWidth(), img.DisplayHeight())
	}
	return nil
}

// Crop encodes the sub-image covered by region using enc at maximum
// quality. The region is given in display coordinates; the scale factor
// between natural and display dimensions is applied before drawing, so
// the output keeps the source's full resolution for the covered area.
func Crop(img *raster.DecodedImage, region Region, enc encoder.Encoder) (*artifact.Artifact, error) {
	if err := region.Validate(img); err != nil {
		return nil, err
	}

	scaleX := float64(img.NaturalWidth()) / float64(img.DisplayWidth())
	scaleY := float64(img.NaturalHeight()) / float64(img.DisplayHeight())

	// Truncation keeps rounding consistent between the surface size and
	// the mapped source rectangle.
	outW := int(float64(region.Width) * scaleX)
	outH := int(float64(region.Height) * scaleY)

	surf, err := raster.NewSurface(outW, outH)
	if err != nil {
		return nil, err
	}

	srcRect := image.Rect(
		int(float64(region.X)*scaleX),
		int(float64(region.Y)*scaleY),
		int(float64(region.X)*scaleX)+outW,
		int(float64(region.Y)*scaleY)+outH,
	)
	surf.Draw(img.Image(), srcRect, image.Rect(0, 0, outW, outH))

	data, err := enc.Encode(surf.Image(), 1.0)
	if err != nil {
		return nil, fmt.Errorf("crop encode: %w", err)
	}

	return &artifact.Artifact{
		Data:   data,
		Width:  outW,
		Height: outH,
		Format: enc.Format(),
		Ext:    enc.Extension(),
	}, nil
}
