package encoder

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
)

// JPEGEncoder encodes images to JPEG using Go's standard library.
type JPEGEncoder struct{}

func (e *JPEGEncoder) Format() string    { return "jpeg" }
func (e *JPEGEncoder) Extension() string { return "jpeg" }
func (e *JPEGEncoder) Available() bool   { return true }

func (e *JPEGEncoder) Encode(img image.Image, quality float64) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(256 * 1024) // pre-alloc 256KB — avoids repeated grow for typical photos

	err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: clampQuality(quality)})
	if err != nil {
		return nil, fmt.Errorf("%w: jpeg: %v", ErrEncode, err)
	}
	if buf.Len() == 0 {
		return nil, fmt.Errorf("%w: jpeg", ErrEncode)
	}
	return buf.Bytes(), nil
}
