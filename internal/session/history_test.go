package session

import (
	"fmt"
	"testing"

	"github.com/AnyUserName/imgfit-cli/internal/artifact"
)

func newHandle(data string) *artifact.Handle {
	return artifact.NewHandle(&artifact.Artifact{
		Data:   []byte(data),
		Width:  100,
		Height: 100,
		Format: "jpeg",
		Ext:    "jpeg",
	})
}

func TestAdd_RetainsIndependentHandle(t *testing.T) {
	hist := NewHistory(0)
	defer hist.Clear()

	preview := newHandle("payload")
	entry, err := hist.Add("photo@50KB", preview, 51200)
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	// The caller's preview handle can be released without touching the
	// retained entry.
	if err := preview.Release(); err != nil {
		t.Fatalf("release preview: %v", err)
	}
	a := entry.Artifact()
	if a == nil {
		t.Fatal("entry invalidated by preview release")
	}
	if string(a.Data) != "payload" {
		t.Errorf("entry data: got %q", a.Data)
	}
	if entry.TargetBytes != 51200 {
		t.Errorf("target: got %d", entry.TargetBytes)
	}
}

func TestAdd_ReleasedHandleFails(t *testing.T) {
	hist := NewHistory(0)
	h := newHandle("x")
	h.Release()

	if _, err := hist.Add("x", h, 1); err == nil {
		t.Error("expected error retaining a released handle")
	}
}

func TestEviction(t *testing.T) {
	hist := NewHistory(2)
	defer hist.Clear()

	var entries []*Entry
	for i := 0; i < 3; i++ {
		h := newHandle(fmt.Sprintf("entry-%d", i))
		e, err := hist.Add(fmt.Sprintf("e%d", i), h, 1024)
		if err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
		entries = append(entries, e)
		h.Release()
	}

	if hist.Len() != 2 {
		t.Fatalf("len: got %d, want 2", hist.Len())
	}
	// Oldest entry was evicted and its handle released.
	if entries[0].Artifact() != nil {
		t.Error("evicted entry still holds its artifact")
	}
	if entries[1].Artifact() == nil || entries[2].Artifact() == nil {
		t.Error("retained entries lost their artifacts")
	}
	if got := hist.Entries()[0].Name; got != "e1" {
		t.Errorf("oldest retained: got %q, want e1", got)
	}
}

func TestClear(t *testing.T) {
	hist := NewHistory(0)

	h := newHandle("x")
	e, err := hist.Add("x", h, 1)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	h.Release()

	hist.Clear()
	if hist.Len() != 0 {
		t.Errorf("len after clear: got %d", hist.Len())
	}
	if e.Artifact() != nil {
		t.Error("entry still holds artifact after clear")
	}

	// Clearing twice is safe.
	hist.Clear()
}
