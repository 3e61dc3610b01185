package search

import (
	"strings"

	"github.com/rocksolid/rocksolid/pkg/skill"
)

// Kinds accepted by Filters.Kind.
const (
	KindStrength    = "strength"
	KindFlexibility = "flexibility"
	KindBalance     = "balance"
)

// muscleGroups expand a muscle filter into any of its members.
var muscleGroups = map[string][]string{
	"legs": {"quadriceps", "hamstrings", "calves", "glutes", "adductors", "abductors", "legs", "thigh"},
	"core": {"abdominals", "abs", "core", "obliques", "rectus abdominis", "transverse"},
}

var balanceHints = []string{"balance", "stand", "pose", "handstand"}

// Filters are exact-match facet predicates applied after ranking. Empty
// fields do not filter.
type Filters struct {
	Type       string `json:"type,omitempty"`
	Category   string `json:"category,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`

	// Muscle matches any muscle containing it, or any member of the named
	// group (legs, core).
	Muscle string `json:"muscle,omitempty"`

	// Kind is the coarse strength/flexibility/balance facet.
	Kind string `json:"kind,omitempty"`
}

// IsZero reports whether no facet is set.
func (f Filters) IsZero() bool {
	return f == Filters{}
}

// Match reports whether s passes every set facet.
func (f Filters) Match(s skill.Skill) bool {
	if v := strings.TrimSpace(f.Type); v != "" && !strings.EqualFold(string(s.Type), v) {
		return false
	}
	if v := strings.TrimSpace(f.Category); v != "" && !strings.EqualFold(string(s.Category), v) {
		return false
	}
	if v := strings.TrimSpace(f.Difficulty); v != "" && !strings.EqualFold(string(s.Difficulty), v) {
		return false
	}
	if !matchMuscle(s, f.Muscle) {
		return false
	}
	return matchKind(s, f.Kind)
}

func matchMuscle(s skill.Skill, filter string) bool {
	filter = strings.ToLower(strings.TrimSpace(filter))
	if filter == "" {
		return true
	}

	needles := append([]string{filter}, muscleGroups[filter]...)
	for _, m := range s.Muscles {
		m = strings.ToLower(m)
		for _, n := range needles {
			if strings.Contains(m, n) {
				return true
			}
		}
	}
	return false
}

// matchKind maps the coarse kind facet onto categories. Balance has no
// category of its own and is approximated from the name. Unknown kinds do
// not filter.
func matchKind(s skill.Skill, kind string) bool {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case KindStrength:
		return s.Category == skill.CategoryStrength
	case KindFlexibility:
		return s.Category == skill.CategoryStretching
	case KindBalance:
		name := strings.ToLower(s.Name)
		for _, hint := range balanceHints {
			if strings.Contains(name, hint) {
				return true
			}
		}
		return false
	default:
		return true
	}
}
