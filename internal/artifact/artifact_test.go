package artifact

import (
	"errors"
	"testing"
)

func testArtifact() *Artifact {
	return &Artifact{
		Data:   []byte("encoded-bytes"),
		Width:  640,
		Height: 480,
		Format: "jpeg",
		Ext:    "jpeg",
	}
}

func TestSizeBytes(t *testing.T) {
	a := testArtifact()
	if a.SizeBytes() != len(a.Data) {
		t.Errorf("SizeBytes: got %d, want %d", a.SizeBytes(), len(a.Data))
	}
}

func TestContentHash(t *testing.T) {
	a := testArtifact()

	h1 := a.ContentHash(16)
	h2 := a.ContentHash(16)
	if h1 != h2 {
		t.Errorf("hash not deterministic: %s vs %s", h1, h2)
	}
	if len(h1) != 16 {
		t.Errorf("hash length: got %d, want 16", len(h1))
	}
	if len(a.ContentHash(8)) != 8 {
		t.Error("truncation to 8 chars failed")
	}
	if len(a.ContentHash(0)) != 16 {
		t.Error("zero length should return the full 16-char hash")
	}

	other := &Artifact{Data: []byte("different-bytes")}
	if other.ContentHash(16) == h1 {
		t.Error("different data produced identical hash")
	}
}

func TestFileName(t *testing.T) {
	a := testArtifact()
	name := a.FileName("photo")
	want := "photo.640x480." + a.ContentHash(8) + ".jpeg"
	if name != want {
		t.Errorf("filename: got %q, want %q", name, want)
	}
}

func TestHandle_ReleaseExactlyOnce(t *testing.T) {
	h := NewHandle(testArtifact())

	if h.Released() {
		t.Fatal("fresh handle reports released")
	}
	if err := h.Release(); err != nil {
		t.Fatalf("first release: %v", err)
	}
	if err := h.Release(); !errors.Is(err, ErrReleased) {
		t.Errorf("second release: got %v, want ErrReleased", err)
	}
	if h.Bytes() != nil {
		t.Error("bytes available after release")
	}
	if h.Artifact() != nil {
		t.Error("artifact available after release")
	}
}

func TestHandle_CloneIndependence(t *testing.T) {
	h := NewHandle(testArtifact())

	clone, err := h.Clone()
	if err != nil {
		t.Fatalf("clone: %v", err)
	}

	// Releasing the original must not invalidate the clone.
	if err := h.Release(); err != nil {
		t.Fatalf("release original: %v", err)
	}
	if clone.Bytes() == nil {
		t.Fatal("clone invalidated by original's release")
	}
	if string(clone.Bytes()) != "encoded-bytes" {
		t.Errorf("clone data: got %q", clone.Bytes())
	}
	if a := clone.Artifact(); a == nil || a.Width != 640 || a.Height != 480 {
		t.Error("clone lost artifact metadata")
	}

	if err := clone.Release(); err != nil {
		t.Fatalf("release clone: %v", err)
	}
}

func TestHandle_CloneAfterRelease(t *testing.T) {
	h := NewHandle(testArtifact())
	h.Release()

	if _, err := h.Clone(); !errors.Is(err, ErrReleased) {
		t.Errorf("clone after release: got %v, want ErrReleased", err)
	}
}

func TestHandle_CloneCopiesBuffer(t *testing.T) {
	a := testArtifact()
	h := NewHandle(a)

	clone, err := h.Clone()
	if err != nil {
		t.Fatalf("clone: %v", err)
	}

	// Mutating the original buffer must not leak into the clone.
	a.Data[0] = 'X'
	if clone.Bytes()[0] == 'X' {
		t.Error("clone shares the original's buffer")
	}
}
