// Package inmemory provides a map-backed storage driver for tests and
// single-process deployments.
package inmemory

import (
	"context"
	"errors"
	"sync"

	"github.com/rocksolid/rocksolid/pkg/storage"
)

// Driver implements storage.Driver using an in-memory map.
type Driver struct {
	// mu is a read write sync mutex for locking the mapping of routines
	mu sync.RWMutex

	// routines is the in memory map of routines keyed by id
	routines map[string]storage.Routine
}

var _ storage.Driver = (*Driver)(nil)

// NewDriver creates a new in-memory storer.
func NewDriver() *Driver {
	return &Driver{
		routines: make(map[string]storage.Routine),
	}
}

// Create stores a routine. Creating an id that already exists is an error.
func (s *Driver) Create(_ context.Context, r storage.Routine) error {
	if r.ID == "" {
		return errors.New("cannot store routine without id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.routines[r.ID]; ok {
		return errors.New("routine already exists: " + r.ID)
	}

	s.routines[r.ID] = r.Clone()
	return nil
}

// Get retrieves a routine by id.
func (s *Driver) Get(_ context.Context, id string) (*storage.Routine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.routines[id]
	if !ok {
		return nil, storage.NotFoundError{ID: id}
	}

	out := r.Clone()
	return &out, nil
}

// List returns all routines in the store, newest first.
func (s *Driver) List(_ context.Context) ([]storage.Routine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	routines := make([]storage.Routine, 0, len(s.routines))
	for _, r := range s.routines {
		routines = append(routines, r.Clone())
	}

	storage.SortNewestFirst(routines)
	return routines, nil
}

// Delete removes a routine by id.
func (s *Driver) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.routines[id]; !ok {
		return storage.NotFoundError{ID: id}
	}

	delete(s.routines, id)
	return nil
}

// Close is a no-op for the in-memory store.
func (s *Driver) Close() error {
	return nil
}
