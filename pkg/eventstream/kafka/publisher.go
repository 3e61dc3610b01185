// Package kafka publishes routine events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/rocksolid/rocksolid/pkg/eventstream"
)

// DefaultTopic is used when no topic is configured.
const DefaultTopic = "rocksolid.routines"

// Writer is the subset of *kafkago.Writer the publisher needs.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Config configures the Kafka publisher.
type Config struct {
	Brokers []string
	Topic   string

	// WriteTimeout bounds a single publish. Zero uses kafka-go's default.
	WriteTimeout time.Duration
}

// Publisher writes one message per event, keyed by routine id so events for
// the same routine land on the same partition.
type Publisher struct {
	writer Writer
	topic  string
}

var _ eventstream.Publisher = (*Publisher)(nil)

// NewPublisher creates a publisher backed by a kafka-go writer.
func NewPublisher(cfg Config) (*Publisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka publisher requires at least one broker")
	}

	topic := cfg.Topic
	if topic == "" {
		topic = DefaultTopic
	}

	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.Brokers...),
		Topic:                  topic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireOne,
		AllowAutoTopicCreation: true,
		WriteTimeout:           cfg.WriteTimeout,
	}

	return NewPublisherWithWriter(w, topic), nil
}

// NewPublisherWithWriter wraps an existing writer.
func NewPublisherWithWriter(w Writer, topic string) *Publisher {
	return &Publisher{writer: w, topic: topic}
}

// Topic returns the topic events are written to.
func (p *Publisher) Topic() string {
	return p.topic
}

// PublishRoutine marshals the event and writes it to the topic.
func (p *Publisher) PublishRoutine(ctx context.Context, event *eventstream.RoutineEvent) error {
	if event == nil {
		return eventstream.ErrNilRoutineEvent
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal routine event: %w", err)
	}

	msg := kafkago.Message{
		Key:   []byte(event.Routine.ID),
		Value: payload,
		Time:  event.EmittedAt,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "event_id", Value: []byte(event.EventID)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish routine event to %s: %w", p.topic, err)
	}
	return nil
}

// Close flushes and closes the writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
