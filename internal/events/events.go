package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"user-admin/internal/entity"
)

type Kind string

const (
	Created Kind = "created"
	Updated Kind = "updated"
	Deleted Kind = "deleted"
)

// Event is the JSON value written to the user topic.
type Event struct {
	ID   string      `json:"id"`
	Kind Kind        `json:"kind"`
	User entity.User `json:"user"`
	Time time.Time   `json:"time"`
}

// Key is the message key, e.g. user-created-1.
func (e Event) Key() string {
	return fmt.Sprintf("user-%s-%d", e.Kind, e.User.ID)
}

// MessageWriter is the part of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// MessageReader is the part of *kafka.Reader the consumer needs.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

type Publisher struct {
	writer MessageWriter
	now    func() time.Time
}

func NewPublisher(writer MessageWriter) *Publisher {
	return &Publisher{writer: writer, now: time.Now}
}

func (p *Publisher) Publish(ctx context.Context, kind Kind, user entity.User) error {
	event := Event{
		ID:   uuid.NewString(),
		Kind: kind,
		User: user,
		Time: p.now().UTC(),
	}

	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Key()),
		Value: value,
	})
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// Noop drops every event. It stands in when no Kafka brokers are configured.
type Noop struct{}

func (Noop) Publish(context.Context, Kind, entity.User) error { return nil }
func (Noop) Close() error                                     { return nil }

type Consumer struct {
	reader MessageReader
	log    zerolog.Logger
}

func NewConsumer(reader MessageReader, log zerolog.Logger) *Consumer {
	return &Consumer{reader: reader, log: log}
}

// Run reads events until ctx is done and hands each one to handle. Messages that
// are not events are logged and skipped. Run returns nil when ctx ends.
func (c *Consumer) Run(ctx context.Context, handle func(Event) error) error {
	defer c.reader.Close()

	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("reading message: %w", err)
		}

		var event Event
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			c.log.Error().Err(err).Msgf("Error unmarshalling message %s", string(msg.Key))
			continue
		}

		if err := handle(event); err != nil {
			return err
		}
	}
}
