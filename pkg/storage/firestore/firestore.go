// Package firestore provides a Cloud Firestore-backed storage driver. Each
// routine is one document in the routines collection, keyed by its id.
package firestore

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/rocksolid/rocksolid/pkg/storage"
)

// DefaultCollection is the collection routines are stored in.
const DefaultCollection = "routines"

// Driver implements storage.Driver on top of a Firestore client.
type Driver struct {
	Client     *firestore.Client
	collection string
}

var _ storage.Driver = (*Driver)(nil)

// NewDriver connects to Firestore in the given project. Credentials are
// resolved the usual way (ADC, or FIRESTORE_EMULATOR_HOST for the emulator).
func NewDriver(ctx context.Context, projectID string) (*Driver, error) {
	if projectID == "" {
		return nil, errors.New("firestore project id is required")
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}

	return NewDriverWithClient(client, DefaultCollection), nil
}

// NewDriverWithClient wraps an existing client.
func NewDriverWithClient(client *firestore.Client, collection string) *Driver {
	if collection == "" {
		collection = DefaultCollection
	}
	return &Driver{Client: client, collection: collection}
}

func (d *Driver) routines() *firestore.CollectionRef {
	return d.Client.Collection(d.collection)
}

// Create stores a routine. Create fails if the document already exists.
func (d *Driver) Create(ctx context.Context, r storage.Routine) error {
	if r.ID == "" {
		return errors.New("cannot store routine without id")
	}

	r = r.Clone()
	if _, err := d.routines().Doc(r.ID).Create(ctx, r); err != nil {
		return fmt.Errorf("could not execute routine creation: %w", err)
	}
	return nil
}

// Get retrieves a routine by id.
func (d *Driver) Get(ctx context.Context, id string) (*storage.Routine, error) {
	snap, err := d.routines().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, storage.NotFoundError{ID: id}
		}
		return nil, fmt.Errorf("failed to get routine: %w", err)
	}

	r, err := decode(snap)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// List returns all routines, newest first.
func (d *Driver) List(ctx context.Context) ([]storage.Routine, error) {
	docs, err := d.routines().OrderBy("created_at", firestore.Desc).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list routines: %w", err)
	}

	routines := make([]storage.Routine, 0, len(docs))
	for _, snap := range docs {
		r, err := decode(snap)
		if err != nil {
			return nil, err
		}
		routines = append(routines, r)
	}

	// Firestore orders by created_at only; apply the id tie-break locally.
	storage.SortNewestFirst(routines)
	return routines, nil
}

// Delete removes a routine by id.
func (d *Driver) Delete(ctx context.Context, id string) error {
	ref := d.routines().Doc(id)
	if _, err := ref.Delete(ctx, firestore.Exists); err != nil {
		if status.Code(err) == codes.NotFound {
			return storage.NotFoundError{ID: id}
		}
		return fmt.Errorf("failed to delete routine: %w", err)
	}
	return nil
}

// Close closes the Firestore client.
func (d *Driver) Close() error {
	return d.Client.Close()
}

func decode(snap *firestore.DocumentSnapshot) (storage.Routine, error) {
	var r storage.Routine
	if err := snap.DataTo(&r); err != nil {
		return storage.Routine{}, fmt.Errorf("failed to decode routine %s: %w", snap.Ref.ID, err)
	}
	if r.ID == "" {
		r.ID = snap.Ref.ID
	}
	if r.Items == nil {
		r.Items = []string{}
	}
	return r, nil
}
