package service

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// MessageIterator abstracts the Kafka consumer behind the Iterator.
//
// Implementations own the lifecycle of the consumer connection.
type MessageIterator interface {
	// Messages is closed by the implementation when the consumer stops.
	Messages() <-chan kafka.Message

	// CommitOffset acknowledges that a message has been handled.
	CommitOffset(ctx context.Context, msg kafka.Message) error
}

// Delivery pairs a decoded message body with the message it came from.
type Delivery[T any] struct {
	Data    T
	Message kafka.Message
}

// HandlerFunc processes one decoded message. A returned error is logged;
// the message is committed either way.
type HandlerFunc[T any] func(ctx context.Context, item T) error
