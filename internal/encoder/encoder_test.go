package encoder

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"testing"
)

func gradientImg(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / w), G: uint8(y * 255 / h), B: 100, A: 255,
			})
		}
	}
	return img
}

func TestClampQuality(t *testing.T) {
	cases := []struct {
		in   float64
		want int
	}{
		{0, 1},
		{-0.5, 1},
		{0.005, 1},
		{0.5, 50},
		{1.0, 100},
		{1.5, 100},
		{0.824, 82},
	}
	for _, tc := range cases {
		if got := clampQuality(tc.in); got != tc.want {
			t.Errorf("clampQuality(%v): got %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestJPEGEncoder(t *testing.T) {
	enc := &JPEGEncoder{}
	img := gradientImg(64, 48)

	data, err := enc.Encode(img, 0.8)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("empty output")
	}

	decoded, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output not decodable: %v", err)
	}
	if b := decoded.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
		t.Errorf("decoded size: got %dx%d, want 64x48", b.Dx(), b.Dy())
	}
}

func TestJPEGEncoder_QualityAffectsSize(t *testing.T) {
	enc := &JPEGEncoder{}
	img := gradientImg(256, 256)

	high, err := enc.Encode(img, 1.0)
	if err != nil {
		t.Fatalf("encode high: %v", err)
	}
	low, err := enc.Encode(img, 0.05)
	if err != nil {
		t.Fatalf("encode low: %v", err)
	}
	if len(low) >= len(high) {
		t.Errorf("low quality (%d bytes) not smaller than high quality (%d bytes)", len(low), len(high))
	}
}

func TestWebPEncoder(t *testing.T) {
	enc := &WebPEncoder{}
	if !enc.Available() {
		t.Skip("webp encoder unavailable")
	}

	data, err := enc.Encode(gradientImg(32, 32), 0.8)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("empty output")
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	if r.Get("jpeg") == nil {
		t.Error("jpeg encoder missing")
	}
	if r.Get("jpg") == nil {
		t.Error("jpg alias not resolved")
	}
	if r.Get("JPEG") == nil {
		t.Error("lookup not case-insensitive")
	}
	if r.Get("avif") != nil {
		t.Error("unknown format should return nil")
	}
	if d := r.Default(); d == nil || d.Format() != "jpeg" {
		t.Error("default encoder should be jpeg")
	}
	if len(r.Available()) == 0 {
		t.Error("no encoders available")
	}
}
