package artifact

import (
	"encoding/hex"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Artifact is the encoded output of a crop or compress call: the
// compressed bytes plus the pixel dimensions they were encoded at.
// Every call produces a fresh artifact; ownership transfers to the
// caller.
type Artifact struct {
	Data   []byte
	Width  int
	Height int
	Format string // "jpeg", "webp"
	Ext    string // file extension without dot
}

// SizeBytes returns the exact encoded byte length.
func (a *Artifact) SizeBytes() int { return len(a.Data) }

// ContentHash computes the xxHash64 of the encoded bytes as a hex
// string truncated to hexLen chars. 16 hex chars (64 bits) is
// collision-safe for practical artifact counts.
func (a *Artifact) ContentHash(hexLen int) string {
	h := xxhash.Sum64(a.Data)
	var b [8]byte
	for i := 0; i < 8; i++ {
		b[i] = byte(h >> (56 - 8*i))
	}
	full := hex.EncodeToString(b[:])
	if hexLen > 0 && hexLen < len(full) {
		return full[:hexLen]
	}
	return full
}

// FileName builds a content-addressed output name: base.WxH.hash.ext.
func (a *Artifact) FileName(base string) string {
	return fmt.Sprintf("%s.%dx%d.%s.%s", base, a.Width, a.Height, a.ContentHash(8), a.Ext)
}
