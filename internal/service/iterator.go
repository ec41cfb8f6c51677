// Package service holds the exploration use case and the queue plumbing that
// feeds it from Kafka.
package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
)

// Iterator decodes JSON messages from a MessageIterator into values of T.
type Iterator[T any] struct {
	msgIterator MessageIterator
	logger      *zap.Logger
}

func NewIterator[T any](iterator MessageIterator, logger *zap.Logger) *Iterator[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Iterator[T]{msgIterator: iterator, logger: logger}
}

// Objects streams decoded deliveries until the underlying Messages channel
// closes. Messages that are not valid JSON for T are committed and dropped so
// they are not redelivered.
func (it *Iterator[T]) Objects(ctx context.Context) <-chan *Delivery[T] {
	out := make(chan *Delivery[T])
	go func() {
		defer close(out)

		for msg := range it.msgIterator.Messages() {
			var data T
			if err := json.Unmarshal(msg.Value, &data); err != nil {
				it.logger.Warn("dropping undecodable message", zap.Int64("offset", msg.Offset), zap.Error(err))
				it.commit(ctx, &Delivery[T]{Message: msg})
				continue
			}

			select {
			case out <- &Delivery[T]{Data: data, Message: msg}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Run hands each delivery to handle, one at a time, and commits its offset
// afterwards whether or not handle failed. It returns when the source closes.
func (it *Iterator[T]) Run(ctx context.Context, handle HandlerFunc[T]) {
	for d := range it.Objects(ctx) {
		if err := handle(ctx, d.Data); err != nil {
			it.logger.Info("message handling failed", zap.Int64("offset", d.Message.Offset), zap.Error(err))
		}
		it.commit(ctx, d)
	}
}

func (it *Iterator[T]) commit(ctx context.Context, d *Delivery[T]) {
	if err := it.msgIterator.CommitOffset(ctx, d.Message); err != nil {
		it.logger.Warn("failed to commit offset", zap.Int64("offset", d.Message.Offset), zap.Error(err))
	}
}
