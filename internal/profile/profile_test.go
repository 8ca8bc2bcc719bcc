package profile

import "testing"

func TestGet(t *testing.T) {
	p := Get("web")
	if p.Name != "web" || p.Format != "jpeg" {
		t.Errorf("web profile: got %+v", p)
	}

	// Unknown names fall back to web but keep the requested name.
	p = Get("does-not-exist")
	if p.Name != "does-not-exist" {
		t.Errorf("fallback name: got %q", p.Name)
	}
	if p.Format != "jpeg" {
		t.Errorf("fallback format: got %q", p.Format)
	}
}

func TestRegister(t *testing.T) {
	Register(Profile{Name: "custom", TargetKB: []int{42}, Format: "webp"})

	p := Get("custom")
	if len(p.TargetKB) != 1 || p.TargetKB[0] != 42 {
		t.Errorf("custom targets: got %v", p.TargetKB)
	}

	// Empty names are ignored.
	Register(Profile{TargetKB: []int{1}})
	if _, ok := profiles[""]; ok {
		t.Error("empty-name profile registered")
	}
}

func TestEffectiveTargets(t *testing.T) {
	p := Profile{TargetKB: []int{500, 0, 500, -3, 100}}
	got := p.EffectiveTargets()
	if len(got) != 2 || got[0] != 500 || got[1] != 100 {
		t.Errorf("targets: got %v, want [500 100]", got)
	}
}
