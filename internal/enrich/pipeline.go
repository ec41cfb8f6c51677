package enrich

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Pipeline applies its stages, in order, to an item.
type Pipeline[T any] struct {
	stages []Stage[T]
	logger *zap.Logger
}

func NewPipeline[T any](logger *zap.Logger, stages ...Stage[T]) *Pipeline[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline[T]{stages: stages, logger: logger}
}

// Run executes every step of every stage against item and returns the first
// step error as is. A cancelled context stops the run before the next step.
func (p *Pipeline[T]) Run(ctx context.Context, item *T) error {
	for _, stage := range p.stages {
		for _, step := range stage.steps {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("stage %s: %w", stage.name, err)
			}
			if err := step(ctx, item); err != nil {
				p.logger.Debug("pipeline step failed", zap.String("stage", stage.name), zap.Error(err))
				return err
			}
		}
	}
	return nil
}
