package profile

// Profile bundles fitting parameters for a common output target.
type Profile struct {
	Name     string
	TargetKB []int  // size budgets, one output per entry
	Format   string // output format ("jpeg", "webp")
}

// Built-in profiles. Config files may register more or override these.
var profiles = map[string]Profile{
	"web": {
		Name:     "web",
		TargetKB: []int{500},
		Format:   "jpeg",
	},
	"email": {
		Name:     "email",
		TargetKB: []int{1024, 300},
		Format:   "jpeg",
	},
	"avatar": {
		Name:     "avatar",
		TargetKB: []int{64},
		Format:   "webp",
	},
	"thumb": {
		Name:     "thumb",
		TargetKB: []int{32},
		Format:   "webp",
	},
}

// Get returns a profile by name. Falls back to web if unknown.
func Get(name string) Profile {
	if p, ok := profiles[name]; ok {
		return p
	}
	p := profiles["web"]
	p.Name = name // preserve requested name
	return p
}

// Register adds or replaces a profile. Used by the config layer.
func Register(p Profile) {
	if p.Name == "" {
		return
	}
	profiles[p.Name] = p
}

// Names lists registered profile names.
func Names() []string {
	var out []string
	for n := range profiles {
		out = append(out, n)
	}
	return out
}

// EffectiveTargets returns the profile's budgets, bounded below at 1 KB
// and deduplicated while keeping order.
func (p Profile) EffectiveTargets() []int {
	seen := map[int]bool{}
	var result []int
	for _, kb := range p.TargetKB {
		if kb < 1 {
			continue
		}
		if !seen[kb] {
			seen[kb] = true
			result = append(result, kb)
		}
	}
	return result
}
