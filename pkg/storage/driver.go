// Package storage
package storage

import (
	"context"
	"time"
)

// Routine is a routine as the backend stores it. Items are skill references
// kept verbatim; the backend never resolves them.
type Routine struct {
	ID        string    `json:"id" firestore:"id"`
	Name      string    `json:"name" firestore:"name"`
	Items     []string  `json:"items" firestore:"items"`
	CreatedAt time.Time `json:"created_at" firestore:"created_at"`
}

// Driver defines the interface for persisting and retrieving routines in a
// storage backend.
type Driver interface {
	// Create stores a new routine. The caller assigns the id and creation time.
	Create(ctx context.Context, r Routine) error

	// Get retrieves a routine by id. Returns NotFoundError when it does not exist.
	Get(ctx context.Context, id string) (*Routine, error)

	// List returns all routines, newest first.
	List(ctx context.Context) ([]Routine, error)

	// Delete removes a routine by id. Returns NotFoundError when it does not exist.
	Delete(ctx context.Context, id string) error

	// Close closes the store and releases any resources.
	Close() error
}
