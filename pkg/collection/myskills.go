package collection

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/rocksolid/rocksolid/pkg/skill"
)

// MySkillsKey is the store key of the My Skills document.
const MySkillsKey = "my_skills_v1"

// MySkills is the user's deduplicated set of typed skill references, kept in
// insertion order.
type MySkills struct {
	store Store
	now   func() time.Time
}

// NewMySkills creates a MySkills collection over store.
func NewMySkills(store Store, opts ...Option) *MySkills {
	s := applyOptions(opts)
	return &MySkills{store: store, now: s.now}
}

// mySkillsData is the export payload.
type mySkillsData struct {
	Items []Ref `json:"items"`
}

// Load returns the stored references. Malformed documents and entries are
// dropped silently; only a failing store is an error.
func (m *MySkills) Load() ([]Ref, error) {
	doc, err := m.store.Get(MySkillsKey)
	if err != nil {
		return nil, err
	}
	return decodeMySkills(doc), nil
}

// Contains reports whether ref is in the collection.
func (m *MySkills) Contains(ref Ref) (bool, error) {
	refs, err := m.Load()
	if err != nil {
		return false, err
	}
	for _, r := range refs {
		if r == ref {
			return true, nil
		}
	}
	return false, nil
}

// Add stores ref. Only ex: and yoga: references are accepted. It reports
// whether ref was new.
func (m *MySkills) Add(ref Ref) (bool, error) {
	if !ref.IsSkill() {
		return false, skill.ValidationError{Field: "reference", Reason: fmt.Sprintf("%q is not an ex: or yoga: id", ref)}
	}

	added := false
	err := m.update(func(refs []Ref) []Ref {
		merged, n := mergeRefs(refs, []Ref{ref})
		added = n > 0
		return merged
	})
	return added, err
}

// Remove drops the reference with the exact id. It reports whether it was
// present.
func (m *MySkills) Remove(id Ref) (bool, error) {
	removed := false
	err := m.update(func(refs []Ref) []Ref {
		out := refs[:0]
		for _, r := range refs {
			if r == id {
				removed = true
				continue
			}
			out = append(out, r)
		}
		return out
	})
	return removed, err
}

// Clear removes every reference.
func (m *MySkills) Clear() error {
	return m.store.Delete(MySkillsKey)
}

// Export wraps the collection in a SignatureMySkills document.
func (m *MySkills) Export() (Document, error) {
	refs, err := m.Load()
	if err != nil {
		return Document{}, err
	}
	return NewDocument(SignatureMySkills, m.now(), mySkillsData{Items: refs})
}

// Import merges the references of a SignatureMySkills document. A wrong
// signature rejects the whole document and leaves the collection untouched.
// Invalid entries are dropped one by one; a document without any valid
// entry is a skill.ValidationError.
func (m *MySkills) Import(doc Document) (ImportResult, error) {
	if err := doc.checkSignature(SignatureMySkills); err != nil {
		return ImportResult{}, err
	}

	var data struct {
		Items []json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(doc.Data, &data); err != nil || data.Items == nil {
		return ImportResult{}, skill.ValidationError{Field: "data.items", Reason: "must be an array"}
	}

	refs, invalid := cleanRefs(data.Items, Ref.IsSkill)
	result := ImportResult{
		Imported: len(data.Items) - invalid,
		Skipped:  invalid,
		Total:    len(data.Items),
	}
	if len(refs) == 0 {
		return result, skill.ValidationError{Field: "data.items", Reason: "no valid skill ids"}
	}

	err := m.update(func(existing []Ref) []Ref {
		merged, _ := mergeRefs(existing, refs)
		return merged
	})
	if err != nil {
		return ImportResult{}, err
	}
	return result, nil
}

func (m *MySkills) update(fn func([]Ref) []Ref) error {
	return m.store.Update(MySkillsKey, func(doc []byte) ([]byte, error) {
		refs := fn(decodeMySkills(doc))
		if refs == nil {
			refs = []Ref{}
		}
		return json.Marshal(refs)
	})
}

func decodeMySkills(doc []byte) []Ref {
	if len(doc) == 0 {
		return []Ref{}
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(doc, &entries); err != nil {
		return []Ref{}
	}

	refs, _ := cleanRefs(entries, Ref.IsSkill)
	return refs
}
