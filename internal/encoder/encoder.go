package encoder

import (
	"errors"
	"image"
)

// ErrEncode means an encoder produced no output for the given image and
// quality. Fatal for the call: retrying with identical inputs would fail
// identically, so the error propagates instead.
var ErrEncode = errors.New("encoder produced no output")

// Encoder encodes an image to a specific lossy format.
type Encoder interface {
	// Format returns the output format name (e.g. "jpeg", "webp").
	Format() string

	// Encode converts the image to bytes at the given quality in [0,1].
	// Implementations clamp out-of-range values to their native scale.
	Encode(img image.Image, quality float64) ([]byte, error)

	// Available returns true if the encoder is ready to use.
	Available() bool

	// Extension returns the file extension without dot.
	Extension() string
}

// clampQuality maps a [0,1] quality scalar to an integer 1-100 scale.
func clampQuality(quality float64) int {
	if quality < 0 {
		quality = 0
	}
	if quality > 1 {
		quality = 1
	}
	q := int(quality*100 + 0.5)
	if q < 1 {
		q = 1
	}
	return q
}
