// Package session retains produced artifacts for the life of the
// process. Each retained entry owns its own handle, cloned from the
// artifact handed in, so the caller's preview handle and the history
// entry can be released independently and in either order.
package session

import (
	"fmt"
	"time"

	"github.com/AnyUserName/imgfit-cli/internal/artifact"
)

// Entry is one retained compression or crop result.
type Entry struct {
	Name        string
	TargetBytes int
	CreatedAt   time.Time
	handle      *artifact.Handle
}

// Artifact returns the retained artifact, or nil once the history has
// released it.
func (e *Entry) Artifact() *artifact.Artifact {
	return e.handle.Artifact()
}

// History is an in-memory list of retained entries. Oldest entries are
// evicted (and their handles released) when the limit is exceeded.
// Nothing survives the process; there is no persistence layer.
type History struct {
	entries []*Entry
	limit   int
}

// NewHistory creates a history keeping at most limit entries.
// A non-positive limit keeps everything.
func NewHistory(limit int) *History {
	return &History{limit: limit}
}

// Add clones the artifact behind h into a retained entry and returns
// it. The caller's handle stays valid and caller-owned; the entry's
// clone is owned by the history.
func (hist *History) Add(name string, h *artifact.Handle, targetBytes int) (*Entry, error) {
	retained, err := h.Clone()
	if err != nil {
		return nil, fmt.Errorf("retain %s: %w", name, err)
	}

	e := &Entry{
		Name:        name,
		TargetBytes: targetBytes,
		CreatedAt:   time.Now(),
		handle:      retained,
	}
	hist.entries = append(hist.entries, e)

	if hist.limit > 0 && len(hist.entries) > hist.limit {
		evicted := hist.entries[0]
		hist.entries = hist.entries[1:]
		if !evicted.handle.Released() {
			evicted.handle.Release()
		}
	}
	return e, nil
}

// Entries returns the retained entries, oldest first.
func (hist *History) Entries() []*Entry {
	return hist.entries
}

// Len returns the number of retained entries.
func (hist *History) Len() int { return len(hist.entries) }

// Clear releases every retained handle and empties the history.
func (hist *History) Clear() {
	for _, e := range hist.entries {
		if !e.handle.Released() {
			e.handle.Release()
		}
	}
	hist.entries = nil
}
