package collection

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rocksolid/rocksolid/pkg/skill"
)

const (
	// RoutinesKey is the store key of the routines document.
	RoutinesKey = "routines_v1"

	// RoutineIDPrefix starts every routine id.
	RoutineIDPrefix = "routine:"

	// DefaultRoutineName names the routine created by AddToNewest when the
	// collection is empty.
	DefaultRoutineName = "My Routine"
)

// ErrRoutineNotFound is returned for operations on an unknown routine id.
var ErrRoutineNotFound = errors.New("routine not found")

// Routine is a named, ordered list of item references without duplicates.
type Routine struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	Items     []Ref     `json:"items"`
}

// NewRoutineID returns the id of a routine created at t.
func NewRoutineID(t time.Time) string {
	return RoutineIDPrefix + strconv.FormatInt(t.UnixMilli(), 10)
}

// Routines is the user's routine collection.
type Routines struct {
	store Store
	now   func() time.Time
}

// NewRoutines creates a Routines collection over store.
func NewRoutines(store Store, opts ...Option) *Routines {
	s := applyOptions(opts)
	return &Routines{store: store, now: s.now}
}

// routinesData is the payload of a SignatureRoutines document.
type routinesData struct {
	Routines []Routine `json:"routines"`
}

// Load returns every valid routine, newest first. Records without a
// routine: id or a name are dropped, as are invalid items.
func (r *Routines) Load() ([]Routine, error) {
	doc, err := r.store.Get(RoutinesKey)
	if err != nil {
		return nil, err
	}

	routines := decodeRoutines(doc)
	sort.SliceStable(routines, func(i, j int) bool {
		return newer(routines[i], routines[j])
	})
	return routines, nil
}

func newer(a, b Routine) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}

// Get returns the routine with id.
func (r *Routines) Get(id string) (Routine, error) {
	doc, err := r.store.Get(RoutinesKey)
	if err != nil {
		return Routine{}, err
	}

	for _, routine := range decodeRoutines(doc) {
		if routine.ID == id {
			return routine, nil
		}
	}
	return Routine{}, fmt.Errorf("%w: %s", ErrRoutineNotFound, id)
}

// Create stores a new empty routine. A blank name is a
// skill.ValidationError.
func (r *Routines) Create(name string) (Routine, error) {
	return r.create(name, nil)
}

func (r *Routines) create(name string, items []Ref) (Routine, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Routine{}, skill.ValidationError{Field: "name", Reason: "empty"}
	}

	var created Routine
	err := r.update(func(routines []Routine) ([]Routine, error) {
		created = Routine{
			ID:        r.uniqueID(routines),
			Name:      name,
			CreatedAt: r.now().UTC(),
			Items:     validItems(items),
		}
		return append(routines, created), nil
	})
	return created, err
}

// uniqueID derives an id from the current time, stepping forward a
// millisecond at a time past ids already in use.
func (r *Routines) uniqueID(routines []Routine) string {
	used := make(map[string]bool, len(routines))
	for _, routine := range routines {
		used[routine.ID] = true
	}

	t := r.now()
	id := NewRoutineID(t)
	for used[id] {
		t = t.Add(time.Millisecond)
		id = NewRoutineID(t)
	}
	return id
}

// AddItem appends ref to the routine unless it is already there. It
// reports whether ref was new.
func (r *Routines) AddItem(id string, ref Ref) (bool, error) {
	if !ref.IsItem() {
		return false, skill.ValidationError{Field: "reference", Reason: fmt.Sprintf("%q is not a skill reference", ref)}
	}

	added := false
	err := r.mutate(id, func(routine *Routine) {
		var n int
		routine.Items, n = mergeRefs(routine.Items, []Ref{ref})
		added = n > 0
	})
	return added, err
}

// AddToNewest appends ref to the newest routine. An empty collection gets a
// new DefaultRoutineName routine holding ref. created reports whether a
// routine was made; added whether ref was new to the routine.
func (r *Routines) AddToNewest(ref Ref) (routine Routine, created, added bool, err error) {
	if !ref.IsItem() {
		return Routine{}, false, false, skill.ValidationError{Field: "reference", Reason: fmt.Sprintf("%q is not a skill reference", ref)}
	}

	err = r.update(func(routines []Routine) ([]Routine, error) {
		if len(routines) == 0 {
			routine = Routine{
				ID:        r.uniqueID(routines),
				Name:      DefaultRoutineName,
				CreatedAt: r.now().UTC(),
				Items:     []Ref{ref},
			}
			created, added = true, true
			return append(routines, routine), nil
		}

		i := 0
		for j := range routines {
			if newer(routines[j], routines[i]) {
				i = j
			}
		}

		var n int
		routines[i].Items, n = mergeRefs(routines[i].Items, []Ref{ref})
		added = n > 0
		routine = routines[i]
		return routines, nil
	})
	if err != nil {
		return Routine{}, false, false, err
	}
	return routine, created, added, nil
}

// RemoveItem drops ref from the routine. It reports whether it was present.
func (r *Routines) RemoveItem(id string, ref Ref) (bool, error) {
	removed := false
	err := r.mutate(id, func(routine *Routine) {
		items := make([]Ref, 0, len(routine.Items))
		for _, item := range routine.Items {
			if item == ref {
				removed = true
				continue
			}
			items = append(items, item)
		}
		routine.Items = items
	})
	return removed, err
}

// Rename changes the routine name. A blank name leaves the routine
// untouched and is not an error.
func (r *Routines) Rename(id, name string) (Routine, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return r.Get(id)
	}

	var renamed Routine
	err := r.mutate(id, func(routine *Routine) {
		routine.Name = name
		renamed = *routine
	})
	return renamed, err
}

// Delete removes the routine.
func (r *Routines) Delete(id string) error {
	return r.update(func(routines []Routine) ([]Routine, error) {
		out := make([]Routine, 0, len(routines))
		found := false
		for _, routine := range routines {
			if routine.ID == id {
				found = true
				continue
			}
			out = append(out, routine)
		}
		if !found {
			return nil, fmt.Errorf("%w: %s", ErrRoutineNotFound, id)
		}
		return out, nil
	})
}

// Export wraps one routine in a SignatureRoutine document.
func (r *Routines) Export(id string) (Document, error) {
	routine, err := r.Get(id)
	if err != nil {
		return Document{}, err
	}
	return NewDocument(SignatureRoutine, r.now(), routine)
}

// ExportAll wraps every routine in a SignatureRoutines document.
func (r *Routines) ExportAll() (Document, error) {
	routines, err := r.Load()
	if err != nil {
		return Document{}, err
	}
	return NewDocument(SignatureRoutines, r.now(), routinesData{Routines: routines})
}

// Import merges a SignatureRoutine or SignatureRoutines document. Any other
// signature rejects the whole document.
//
// Each imported routine whose id matches a stored routine has its valid
// items merged into that routine; any other routine with a name is added
// with a fresh id. Routines without a name, invalid items and repeated
// items are dropped and each counts as skipped.
func (r *Routines) Import(doc Document) (ImportResult, error) {
	var entries []json.RawMessage

	switch doc.Signature {
	case SignatureRoutine:
		entries = []json.RawMessage{doc.Data}
	case SignatureRoutines:
		var data struct {
			Routines []json.RawMessage `json:"routines"`
		}
		if err := json.Unmarshal(doc.Data, &data); err != nil || data.Routines == nil {
			return ImportResult{}, skill.ValidationError{Field: "data.routines", Reason: "must be an array"}
		}
		entries = data.Routines
	default:
		return ImportResult{}, fmt.Errorf("%w: expected %q or %q, got %q",
			skill.ErrSignatureMismatch, SignatureRoutine, SignatureRoutines, doc.Signature)
	}

	result := ImportResult{Total: len(entries)}
	imported := make([]Routine, 0, len(entries))
	for _, entry := range entries {
		routine, dropped, ok := decodeRoutine(entry)
		if !ok {
			result.Skipped++
			continue
		}
		result.Skipped += dropped
		imported = append(imported, routine)
	}
	result.Imported = len(imported)

	if len(imported) == 0 {
		return result, nil
	}

	err := r.update(func(routines []Routine) ([]Routine, error) {
		for _, in := range imported {
			if i := indexOf(routines, in.ID); i >= 0 {
				routines[i].Items, _ = mergeRefs(routines[i].Items, in.Items)
				continue
			}

			if !strings.HasPrefix(in.ID, RoutineIDPrefix) {
				in.ID = r.uniqueID(routines)
			}
			if in.CreatedAt.IsZero() {
				in.CreatedAt = r.now().UTC()
			}
			routines = append(routines, in)
		}
		return routines, nil
	})
	if err != nil {
		return ImportResult{}, err
	}
	return result, nil
}

// FindByContent returns the stored routine with the same name and the same
// items in the same order, if any.
func (r *Routines) FindByContent(name string, items []Ref) (Routine, bool, error) {
	routines, err := r.Load()
	if err != nil {
		return Routine{}, false, err
	}

	want := validItems(items)
	for _, routine := range routines {
		if routine.Name == strings.TrimSpace(name) && slices.Equal(routine.Items, want) {
			return routine, true, nil
		}
	}
	return Routine{}, false, nil
}

// Restore stores a routine with a caller-chosen id and creation time, as
// used when pulling routines from a remote backend. An id already in use is
// a no-op that reports false.
func (r *Routines) Restore(routine Routine) (bool, error) {
	routine.Name = strings.TrimSpace(routine.Name)
	if routine.Name == "" {
		return false, skill.ValidationError{Field: "name", Reason: "empty"}
	}
	if !strings.HasPrefix(routine.ID, RoutineIDPrefix) {
		return false, skill.ValidationError{Field: "id", Reason: "must start with " + RoutineIDPrefix}
	}
	routine.Items = validItems(routine.Items)

	stored := false
	err := r.update(func(routines []Routine) ([]Routine, error) {
		if indexOf(routines, routine.ID) >= 0 {
			return routines, nil
		}
		stored = true
		return append(routines, routine), nil
	})
	return stored, err
}

func (r *Routines) mutate(id string, fn func(*Routine)) error {
	return r.update(func(routines []Routine) ([]Routine, error) {
		i := indexOf(routines, id)
		if i < 0 {
			return nil, fmt.Errorf("%w: %s", ErrRoutineNotFound, id)
		}
		fn(&routines[i])
		return routines, nil
	})
}

// update runs fn over the stored routines in storage order and writes the
// result back.
func (r *Routines) update(fn func([]Routine) ([]Routine, error)) error {
	return r.store.Update(RoutinesKey, func(doc []byte) ([]byte, error) {
		routines, err := fn(decodeRoutines(doc))
		if err != nil {
			return nil, err
		}
		if routines == nil {
			routines = []Routine{}
		}
		return json.Marshal(routines)
	})
}

// storedRoutine is the lenient wire shape of a routine record.
type storedRoutine struct {
	ID        json.RawMessage   `json:"id"`
	Name      json.RawMessage   `json:"name"`
	CreatedAt json.RawMessage   `json:"createdAt"`
	Items     []json.RawMessage `json:"items"`
}

func decodeRoutines(doc []byte) []Routine {
	if len(doc) == 0 {
		return []Routine{}
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(doc, &entries); err != nil {
		return []Routine{}
	}

	routines := make([]Routine, 0, len(entries))
	for _, entry := range entries {
		routine, _, ok := decodeRoutine(entry)
		if !ok || !strings.HasPrefix(routine.ID, RoutineIDPrefix) {
			continue
		}
		routines = append(routines, routine)
	}
	return routines
}

// decodeRoutine reads one record leniently. dropped counts the invalid and
// repeated items left out. ok is false when the record is not an object or
// has no name. createdAt falls back to the time encoded in a routine: id,
// then to the zero time.
func decodeRoutine(raw json.RawMessage) (routine Routine, dropped int, ok bool) {
	var s storedRoutine
	if err := json.Unmarshal(raw, &s); err != nil {
		return Routine{}, 0, false
	}

	routine = Routine{
		ID:   strings.TrimSpace(rawString(s.ID)),
		Name: strings.TrimSpace(rawString(s.Name)),
	}
	if routine.Name == "" {
		return Routine{}, 0, false
	}

	routine.Items, _ = cleanRefs(s.Items, Ref.IsItem)
	routine.CreatedAt = parseCreatedAt(rawString(s.CreatedAt), routine.ID)
	return routine, len(s.Items) - len(routine.Items), true
}

func parseCreatedAt(value, id string) time.Time {
	if t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(value)); err == nil {
		return t.UTC()
	}

	if millis, ok := strings.CutPrefix(id, RoutineIDPrefix); ok {
		if ms, err := strconv.ParseInt(millis, 10, 64); err == nil {
			return time.UnixMilli(ms).UTC()
		}
	}
	return time.Time{}
}

func rawString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

func validItems(items []Ref) []Ref {
	out := make([]Ref, 0, len(items))
	seen := make(map[Ref]bool, len(items))
	for _, item := range items {
		item = Ref(strings.TrimSpace(string(item)))
		if !item.IsItem() || seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}

func indexOf(routines []Routine, id string) int {
	for i, routine := range routines {
		if routine.ID == id {
			return i
		}
	}
	return -1
}
