package encoder

import (
	"bytes"
	"fmt"
	"image"

	"github.com/chai2010/webp"
)

// WebPEncoder encodes images to lossy WebP in-process. The size search
// runs up to 26 encode attempts per request, so shelling out to an
// external cwebp binary per attempt is not an option here.
type WebPEncoder struct{}

func (e *WebPEncoder) Format() string    { return "webp" }
func (e *WebPEncoder) Extension() string { return "webp" }
func (e *WebPEncoder) Available() bool   { return true }

func (e *WebPEncoder) Encode(img image.Image, quality float64) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(256 * 1024)

	opts := &webp.Options{Quality: float32(clampQuality(quality))}
	if err := webp.Encode(&buf, img, opts); err != nil {
		return nil, fmt.Errorf("%w: webp: %v", ErrEncode, err)
	}
	if buf.Len() == 0 {
		return nil, fmt.Errorf("%w: webp", ErrEncode)
	}
	return buf.Bytes(), nil
}
