package encoder

import (
	"fmt"
	"strings"
)

// Registry holds all available encoders and selects one per format.
type Registry struct {
	encoders map[string]Encoder
}

// NewRegistry creates a registry, probing all encoders for availability.
func NewRegistry() *Registry {
	r := &Registry{
		encoders: make(map[string]Encoder),
	}

	// Register all encoders. Only available ones will be used.
	all := []Encoder{
		&WebPEncoder{},
		&JPEGEncoder{},
	}

	for _, enc := range all {
		if enc.Available() {
			r.encoders[enc.Format()] = enc
		}
	}

	return r
}

// Get returns an encoder for the given format, or nil if unavailable.
// "jpg" is accepted as an alias for "jpeg".
func (r *Registry) Get(format string) Encoder {
	f := strings.ToLower(format)
	if f == "jpg" {
		f = "jpeg"
	}
	return r.encoders[f]
}

// Default returns the encoder used when the caller names no format.
func (r *Registry) Default() Encoder {
	return r.encoders["jpeg"]
}

// Available returns all available format names in priority order.
func (r *Registry) Available() []string {
	var result []string
	for _, f := range []string{"webp", "jpeg"} {
		if _, ok := r.encoders[f]; ok {
			result = append(result, f)
		}
	}
	return result
}

// String returns a summary of available encoders.
func (r *Registry) String() string {
	avail := r.Available()
	if len(avail) == 0 {
		return "no encoders available"
	}
	return fmt.Sprintf("encoders: %s", strings.Join(avail, ", "))
}
