// Package compressor searches for an encoding of an image that fits a
// byte budget while keeping as much visual fidelity as possible. The
// search runs two phases: quality bisection at the original resolution,
// then dimension scaling at a fixed mid quality. It is best-effort —
// the terminal fallback may return an artifact over budget, never an
// error.
package compressor

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"

	"github.com/AnyUserName/imgfit-cli/internal/artifact"
	"github.com/AnyUserName/imgfit-cli/internal/encoder"
	"github.com/AnyUserName/imgfit-cli/internal/raster"
)

// Search constants. The step values and iteration caps materially
// affect which quality is chosen for a given image; they are fixed so
// behavior stays reproducible across versions.
const (
	qualityFloor    = 0.01 // lower bound of the quality interval
	qualityStep     = 0.05 // asymmetric step applied after each probe
	maxQualityIters = 10

	scaleStart    = 0.9
	scaleStep     = 0.1
	scaleFloor    = 0.1
	scaleQuality  = 0.5 // fixed quality for scaled re-encodes
	maxScaleIters = 15

	fallbackQuality = 0.1 // terminal encode when nothing fits
)

// KBToBytes converts a target expressed in kilobytes to a byte budget.
func KBToBytes(kb int) int { return kb * 1024 }

// Compressor runs the size-targeting search with a fixed encoder. It
// holds no per-call state; one instance may serve sequential calls.
type Compressor struct {
	enc  encoder.Encoder
	logf func(format string, args ...any)
}

// New creates a compressor using enc for every encode attempt.
func New(enc encoder.Encoder) *Compressor {
	return &Compressor{enc: enc}
}

// SetLogf installs a verbose logging callback for per-attempt tracing.
func (c *Compressor) SetLogf(logf func(format string, args ...any)) {
	c.logf = logf
}

func (c *Compressor) trace(format string, args ...any) {
	if c.logf != nil {
		c.logf(format, args...)
	}
}

// Compress produces an encoding of img that best approximates
// targetBytes. It always returns an artifact when the encoder
// cooperates; the result's SizeBytes may exceed the budget in the
// terminal fallback case. Callers needing strict enforcement must
// check the returned size themselves.
func (c *Compressor) Compress(img *raster.DecodedImage, targetBytes int) (*artifact.Artifact, error) {
	if a, err := c.qualitySearch(img, targetBytes); a != nil || err != nil {
		return a, err
	}
	return c.scaleSearch(img, targetBytes)
}

// qualitySearch bisects encoder quality at the original resolution.
// The interval narrows by the step value past the midpoint on each
// probe, guaranteeing convergence within the iteration cap. A fitting
// probe is recorded and the search keeps pushing quality upward, so the
// last recorded candidate is the highest quality that fit. Returns
// (nil, nil) when no quality at full resolution meets the budget.
func (c *Compressor) qualitySearch(img *raster.DecodedImage, targetBytes int) (*artifact.Artifact, error) {
	minQ, maxQ := qualityFloor, 1.0
	var best []byte

	for i := 0; i < maxQualityIters && minQ <= maxQ; i++ {
		midQ := (minQ + maxQ) / 2

		data, err := c.enc.Encode(img.Image(), midQ)
		if err != nil {
			return nil, fmt.Errorf("quality search q=%.3f: %w", midQ, err)
		}
		c.trace("quality probe q=%.3f → %d bytes (budget %d)", midQ, len(data), targetBytes)

		if len(data) <= targetBytes {
			best = data
			minQ = midQ + qualityStep
		} else {
			maxQ = midQ - qualityStep
		}
	}

	if best == nil {
		return nil, nil
	}
	return &artifact.Artifact{
		Data:   best,
		Width:  img.NaturalWidth(),
		Height: img.NaturalHeight(),
		Format: c.enc.Format(),
		Ext:    c.enc.Extension(),
	}, nil
}

// scaleSearch shrinks pixel dimensions at a fixed quality until the
// encode fits; first fit wins. If no scale down to the floor fits, one
// terminal encode at the last attempted dimensions and the fallback
// quality is returned unconditionally.
func (c *Compressor) scaleSearch(img *raster.DecodedImage, targetBytes int) (*artifact.Artifact, error) {
	natW, natH := img.NaturalWidth(), img.NaturalHeight()
	lastW, lastH := natW, natH
	var lastScaled image.Image = img.Image()

	// The ladder walks exact tenths. Deriving each rung by float
	// subtraction drifts below the floor one step early and skips the
	// 0.1 attempt entirely.
	startRung := int(math.Round(scaleStart * 10))
	floorRung := int(math.Round(scaleFloor * 10))
	stepRung := int(math.Round(scaleStep * 10))

	for i := 0; i < maxScaleIters; i++ {
		rung := startRung - i*stepRung
		if rung < floorRung {
			break
		}
		scale := float64(rung) / 10

		w := int(float64(natW) * scale)
		h := int(float64(natH) * scale)
		if w < 1 {
			w = 1
		}
		if h < 1 {
			h = 1
		}

		scaled := imaging.Resize(img.Image(), w, h, imaging.Lanczos)
		lastW, lastH, lastScaled = w, h, scaled

		data, err := c.enc.Encode(scaled, scaleQuality)
		if err != nil {
			return nil, fmt.Errorf("scale search %.1fx: %w", scale, err)
		}
		c.trace("scale probe %.1fx (%dx%d) → %d bytes (budget %d)", scale, w, h, len(data), targetBytes)

		if len(data) <= targetBytes {
			return &artifact.Artifact{
				Data:   data,
				Width:  w,
				Height: h,
				Format: c.enc.Format(),
				Ext:    c.enc.Extension(),
			}, nil
		}
	}

	// Terminal fallback: the budget is unreachable. Encode once more at
	// the last attempted dimensions with the floor quality and return
	// the result even though it may exceed the budget.
	data, err := c.enc.Encode(lastScaled, fallbackQuality)
	if err != nil {
		return nil, fmt.Errorf("fallback encode: %w", err)
	}
	c.trace("fallback encode %dx%d q=%.2f → %d bytes (budget %d)", lastW, lastH, fallbackQuality, len(data), targetBytes)

	return &artifact.Artifact{
		Data:   data,
		Width:  lastW,
		Height: lastH,
		Format: c.enc.Format(),
		Ext:    c.enc.Extension(),
	}, nil
}
