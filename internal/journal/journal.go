// Package journal copies finished results to whichever sinks are configured:
// a Kafka topic, an object store archive and the Postgres search history.
package journal

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"travel/internal/metrics"
	"travel/internal/models"
)

// Sink stores or forwards one result.
type Sink interface {
	Name() string
	Write(ctx context.Context, r *models.Result) error
}

type Journal struct {
	sinks  []Sink
	logger *zap.Logger
}

func New(logger *zap.Logger, sinks ...Sink) *Journal {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Journal{sinks: sinks, logger: logger}
}

// Len reports how many sinks are configured.
func (j *Journal) Len() int { return len(j.sinks) }

// Record writes r to every sink concurrently. One failing sink does not stop
// the others; all failures are returned joined.
func (j *Journal) Record(ctx context.Context, r *models.Result) error {
	errs := make([]error, len(j.sinks))

	var g errgroup.Group
	for i, sink := range j.sinks {
		g.Go(func() error {
			if err := sink.Write(ctx, r); err != nil {
				metrics.JournalFailures.WithLabelValues(sink.Name()).Inc()
				j.logger.Warn("journal sink failed",
					zap.String("sink", sink.Name()),
					zap.String("id", r.ID),
					zap.Error(err),
				)
				errs[i] = fmt.Errorf("%s: %w", sink.Name(), err)
				return errs[i]
			}
			return nil
		})
	}
	// Wait reports only the first failure; the rest are kept in errs.
	if err := g.Wait(); err != nil {
		return errors.Join(errs...)
	}
	return nil
}
