package nop

import (
	"context"

	"github.com/rocksolid/rocksolid/pkg/eventstream"
)

// Publisher is a no-op eventstream publisher used for tests and disabled mode.
type Publisher struct{}

var _ eventstream.Publisher = (*Publisher)(nil)

// NewPublisher creates a new no-op eventstream publisher.
func NewPublisher() *Publisher {
	return &Publisher{}
}

// PublishRoutine validates input and otherwise does nothing.
func (p *Publisher) PublishRoutine(_ context.Context, event *eventstream.RoutineEvent) error {
	if event == nil {
		return eventstream.ErrNilRoutineEvent
	}

	return nil
}

// Close is a no-op.
func (p *Publisher) Close() error {
	return nil
}
