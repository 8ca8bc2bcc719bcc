package artifact

import (
	"errors"
	"fmt"
)

// ErrReleased means a handle was released twice or used after release.
var ErrReleased = errors.New("handle already released")

// Handle is a scope-owned view of an artifact's backing buffer. Each
// consumer that needs to outlive the others gets its own handle via
// Clone, so releasing one never invalidates another. Release must be
// called exactly once per handle.
type Handle struct {
	art      *Artifact
	released bool
}

// NewHandle wraps an artifact in a fresh handle. The handle takes
// ownership of the artifact's buffer.
func NewHandle(a *Artifact) *Handle {
	return &Handle{art: a}
}

// Clone duplicates the encoded buffer into a new independently owned
// handle. Cloning a released handle fails.
func (h *Handle) Clone() (*Handle, error) {
	if h.released {
		return nil, fmt.Errorf("clone: %w", ErrReleased)
	}
	data := make([]byte, len(h.art.Data))
	copy(data, h.art.Data)
	return NewHandle(&Artifact{
		Data:   data,
		Width:  h.art.Width,
		Height: h.art.Height,
		Format: h.art.Format,
		Ext:    h.art.Ext,
	}), nil
}

// Artifact returns the underlying artifact, or nil after release.
func (h *Handle) Artifact() *Artifact {
	if h.released {
		return nil
	}
	return h.art
}

// Bytes returns the encoded buffer, or nil after release.
func (h *Handle) Bytes() []byte {
	if h.released {
		return nil
	}
	return h.art.Data
}

// Release drops the handle's reference to the buffer. Exactly-once:
// a second release is an error.
func (h *Handle) Release() error {
	if h.released {
		return ErrReleased
	}
	h.released = true
	h.art = nil
	return nil
}

// Released reports whether the handle has been released.
func (h *Handle) Released() bool { return h.released }
