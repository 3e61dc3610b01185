// Package collection persists the user's curated skill collections, My Skills
// and Routines, as references to skills, and moves them in and out of signed
// export documents.
package collection

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/rocksolid/rocksolid/pkg/skill"
)

// PrefixExerciseName marks a reference resolved by exercise name.
const PrefixExerciseName = "exname"

// Ref is a persisted pointer to a Skill: ex:<id>, yoga:<id> or
// exname:<lowercased name>.
type Ref string

func (r Ref) String() string {
	return string(r)
}

// IsSkill reports whether r is a typed id reference (ex: or yoga:).
func (r Ref) IsSkill() bool {
	prefix, local, ok := strings.Cut(string(r), ":")
	if !ok || local == "" {
		return false
	}
	return prefix == skill.PrefixExercise || prefix == skill.PrefixYoga
}

// IsName reports whether r is a non-empty exname: reference.
func (r Ref) IsName() bool {
	name, ok := strings.CutPrefix(string(r), PrefixExerciseName+":")
	return ok && name != ""
}

// IsItem reports whether r may be stored in a routine.
func (r Ref) IsItem() bool {
	return r.IsSkill() || r.IsName()
}

var (
	digitsOnly = regexp.MustCompile(`^\d+$`)
	looseEx    = regexp.MustCompile(`(?i)^ex\D*(\d+)$`)
	looseYoga  = regexp.MustCompile(`(?i)^yoga\D*(\d+)$`)
)

// ParseUserRef turns free-text input into a Ref. It accepts, in order:
//
//   - a canonical ex:, yoga: or exname: reference, kept as is
//   - a bare integer, read as an exercise id
//   - "ex" or "yoga" followed by any non-digits and then digits ("ex 45",
//     "YOGA-12"), read as that source's id
//   - any other text, read as an exercise name
//
// Empty input, or a known prefix with nothing after it, is a
// skill.ValidationError.
func ParseUserRef(raw string) (Ref, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", skill.ValidationError{Field: "reference", Reason: "empty input"}
	}

	if r := Ref(s); r.IsItem() {
		return r, nil
	}

	if prefix, local, ok := strings.Cut(s, ":"); ok && strings.TrimSpace(local) == "" {
		switch strings.ToLower(strings.TrimSpace(prefix)) {
		case skill.PrefixExercise, skill.PrefixYoga, PrefixExerciseName:
			return "", skill.ValidationError{Field: "reference", Reason: fmt.Sprintf("%q has no id after the prefix", s)}
		}
	}

	if digitsOnly.MatchString(s) {
		return Ref(skill.NewID(skill.PrefixExercise, s)), nil
	}
	if m := looseEx.FindStringSubmatch(s); m != nil {
		return Ref(skill.NewID(skill.PrefixExercise, m[1])), nil
	}
	if m := looseYoga.FindStringSubmatch(s); m != nil {
		return Ref(skill.NewID(skill.PrefixYoga, m[1])), nil
	}

	return Ref(PrefixExerciseName + ":" + strings.ToLower(s)), nil
}

// decodeRef reads one stored or imported entry. Strings are trimmed. An
// object with a string id is a legacy embedded skill snapshot and is reduced
// to that id. Anything else decodes to "".
func decodeRef(raw json.RawMessage) Ref {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return Ref(strings.TrimSpace(s))
	}

	var snapshot struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &snapshot); err == nil {
		return Ref(strings.TrimSpace(snapshot.ID))
	}

	return ""
}

// cleanRefs decodes entries, keeps those accepted by valid and drops
// duplicates after the first occurrence. It returns the kept refs and the
// number of entries that failed validation.
func cleanRefs(entries []json.RawMessage, valid func(Ref) bool) ([]Ref, int) {
	out := make([]Ref, 0, len(entries))
	seen := make(map[Ref]bool, len(entries))
	invalid := 0

	for _, entry := range entries {
		r := decodeRef(entry)
		if !valid(r) {
			invalid++
			continue
		}
		if seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	return out, invalid
}

// mergeRefs appends every ref of add missing from base, keeping base order.
// It returns the merged list and how many refs were new.
func mergeRefs(base, add []Ref) ([]Ref, int) {
	seen := make(map[Ref]bool, len(base)+len(add))
	out := make([]Ref, 0, len(base)+len(add))
	for _, r := range base {
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}

	added := 0
	for _, r := range add {
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
			added++
		}
	}
	return out, added
}
