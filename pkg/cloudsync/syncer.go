package cloudsync

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/rocksolid/rocksolid/pkg/collection"
	"github.com/rocksolid/rocksolid/pkg/logger"
)

// maxIDBumps bounds how far Pull moves a local id past a colliding one.
const maxIDBumps = 1000

// Remote is the backend surface the Syncer needs. *Client satisfies it.
type Remote interface {
	List(ctx context.Context) ([]RemoteRoutine, error)
	Create(ctx context.Context, name string, items []string) (RemoteRoutine, error)
}

// PullResult summarizes a Pull.
type PullResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
	Total    int `json:"total"`
}

// Syncer copies routines between the local collection and the backend.
type Syncer struct {
	remote   Remote
	routines *collection.Routines
	logger   *zap.Logger
	now      func() time.Time
}

// NewSyncer creates a Syncer.
func NewSyncer(remote Remote, routines *collection.Routines, log *zap.Logger) *Syncer {
	return &Syncer{
		remote:   remote,
		routines: routines,
		logger:   logger.OrNop(log),
		now:      time.Now,
	}
}

// Push uploads one local routine. The backend assigns its own id.
func (s *Syncer) Push(ctx context.Context, routineID string) (RemoteRoutine, error) {
	routine, err := s.routines.Get(routineID)
	if err != nil {
		return RemoteRoutine{}, err
	}

	items := make([]string, 0, len(routine.Items))
	for _, item := range routine.Items {
		items = append(items, item.String())
	}

	created, err := s.remote.Create(ctx, routine.Name, items)
	if err != nil {
		return RemoteRoutine{}, err
	}

	s.logger.Info("routine pushed",
		zap.String("local_id", routine.ID),
		zap.String("remote_id", created.ID),
		zap.Int("items", len(items)),
	)
	return created, nil
}

// Pull imports every backend routine into the local collection. A remote
// routine whose name and items already exist locally is skipped. New
// routines get a local id derived from the remote creation time.
func (s *Syncer) Pull(ctx context.Context) (PullResult, error) {
	remote, err := s.remote.List(ctx)
	if err != nil {
		return PullResult{}, err
	}

	result := PullResult{Total: len(remote)}
	for _, r := range remote {
		imported, err := s.pullOne(r)
		if err != nil {
			s.logger.Warn("skipping remote routine",
				zap.String("remote_id", r.ID),
				zap.Error(err),
			)
			result.Skipped++
			continue
		}
		if imported {
			result.Imported++
		} else {
			result.Skipped++
		}
	}

	s.logger.Info("routines pulled",
		zap.Int("imported", result.Imported),
		zap.Int("skipped", result.Skipped),
	)
	return result, nil
}

func (s *Syncer) pullOne(r RemoteRoutine) (bool, error) {
	items := make([]collection.Ref, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, collection.Ref(item))
	}

	if _, found, err := s.routines.FindByContent(r.Name, items); err != nil || found {
		return false, err
	}

	created := r.CreatedAt
	if created.IsZero() {
		created = s.now()
	}

	for i := 0; i < maxIDBumps; i++ {
		stamp := created.Add(time.Duration(i) * time.Millisecond)
		stored, err := s.routines.Restore(collection.Routine{
			ID:        collection.NewRoutineID(stamp),
			Name:      r.Name,
			CreatedAt: created,
			Items:     items,
		})
		if err != nil || stored {
			return stored, err
		}
	}
	return false, nil
}
