package storage

import (
	"sort"
	"strings"
)

// SortNewestFirst orders routines by creation time descending, breaking ties
// on id so listings are stable across drivers.
func SortNewestFirst(routines []Routine) {
	sort.SliceStable(routines, func(i, j int) bool {
		a, b := routines[i], routines[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return strings.Compare(a.ID, b.ID) > 0
	})
}

// Clone returns a copy of r that shares no slices with it.
func (r Routine) Clone() Routine {
	out := r
	out.Items = append([]string{}, r.Items...)
	return out
}
