package eventstream

import "context"

// Publisher publishes routine events to an event stream backend.
type Publisher interface {
	PublishRoutine(ctx context.Context, event *RoutineEvent) error
	Close() error
}
