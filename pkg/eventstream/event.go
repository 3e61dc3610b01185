package eventstream

import (
	"time"

	"github.com/google/uuid"

	"github.com/rocksolid/rocksolid/pkg/storage"
)

const (
	// SchemaVersionV1 is the first version of the event payload schema.
	SchemaVersionV1 = 1

	// EventTypeRoutineCreated is emitted after a routine is stored by the backend.
	EventTypeRoutineCreated = "rocksolid.routine.created"

	// EventTypeRoutineDeleted is emitted after a routine is removed from the backend.
	EventTypeRoutineDeleted = "rocksolid.routine.deleted"
)

// RoutineEvent is a transport-neutral event payload for a routine lifecycle change.
type RoutineEvent struct {
	SchemaVersion int             `json:"schema_version"`
	EventType     string          `json:"event_type"`
	EventID       string          `json:"event_id"`
	EmittedAt     time.Time       `json:"emitted_at"`
	Routine       storage.Routine `json:"routine"`
}

// NewRoutineEvent builds a versioned event with a fresh id.
func NewRoutineEvent(eventType string, r storage.Routine, now time.Time) *RoutineEvent {
	return &RoutineEvent{
		SchemaVersion: SchemaVersionV1,
		EventType:     eventType,
		EventID:       "evt_" + uuid.NewString(),
		EmittedAt:     now.UTC(),
		Routine:       r,
	}
}
