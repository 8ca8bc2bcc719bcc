package raster

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/disintegration/imaging"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrDecode means the source bytes are not a decodable image.
// Fatal for the call; never retried.
var ErrDecode = errors.New("image decode failed")

// DecodedImage is a decoded raster plus its natural (true pixel) and
// display dimensions. Display dimensions default to natural and only
// differ when the caller rendered the image at a scaled size; crop
// regions are expressed in display coordinates and mapped back.
type DecodedImage struct {
	img      image.Image
	naturalW int
	naturalH int
	displayW int
	displayH int
}

// Decode reads and decodes an image, applying EXIF auto-orientation.
// Supported inputs: jpeg, png, gif, webp, bmp, tiff.
func Decode(r io.Reader) (*DecodedImage, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return FromImage(img), nil
}

// FromImage wraps an already-decoded image. Display dimensions start
// equal to natural dimensions.
func FromImage(img image.Image) *DecodedImage {
	b := img.Bounds()
	return &DecodedImage{
		img:      img,
		naturalW: b.Dx(),
		naturalH: b.Dy(),
		displayW: b.Dx(),
		displayH: b.Dy(),
	}
}

// SetDisplaySize records the dimensions the image is rendered at.
// Non-positive values are ignored.
func (d *DecodedImage) SetDisplaySize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	d.displayW = w
	d.displayH = h
}

func (d *DecodedImage) Image() image.Image { return d.img }
func (d *DecodedImage) NaturalWidth() int  { return d.naturalW }
func (d *DecodedImage) NaturalHeight() int { return d.naturalH }
func (d *DecodedImage) DisplayWidth() int  { return d.displayW }
func (d *DecodedImage) DisplayHeight() int { return d.displayH }

// HasAlpha reports whether the image contains any non-opaque pixel.
// Fast paths for common opaque color models avoid the per-pixel scan.
func HasAlpha(img image.Image) bool {
	switch img.(type) {
	case *image.YCbCr, *image.Gray, *image.Gray16, *image.CMYK:
		return false
	}
	if op, ok := img.(interface{ Opaque() bool }); ok {
		return !op.Opaque()
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			_, _, _, a := img.At(x, y).RGBA()
			if a < 0xffff {
				return true
			}
		}
	}
	return false
}

// AvgColor calculates the average RGB color of an image.
func AvgColor(img image.Image) [3]uint8 {
	bounds := img.Bounds()
	w := uint64(bounds.Dx())
	h := uint64(bounds.Dy())
	count := w * h
	if count == 0 {
		return [3]uint8{0, 0, 0}
	}
	var rSum, gSum, bSum uint64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			rSum += uint64(r >> 8)
			gSum += uint64(g >> 8)
			bSum += uint64(b >> 8)
		}
	}
	return [3]uint8{
		uint8(rSum / count),
		uint8(gSum / count),
		uint8(bSum / count),
	}
}
