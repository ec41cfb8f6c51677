// Package enrich provides a small, generic pipeline that runs a fixed
// sequence of stages against one item, each stage made of ordered steps.
package enrich

import (
	"context"
)

// Step is a single operation that mutates the given item. A step that
// returns an error ends the run for that item; later steps do not execute.
//
// Example:
//
//	func geocode(ctx context.Context, r *Exploration) error { r.Coords = ...; return nil }
type Step[T any] func(ctx context.Context, item *T) error

// Stage groups steps that belong together. Steps run one after another in
// declaration order, so a step may read what an earlier one wrote.
type Stage[T any] struct {
	name  string
	steps []Step[T]
}

// NewStage constructs a named Stage from the provided steps.
func NewStage[T any](name string, steps ...Step[T]) Stage[T] {
	return Stage[T]{name: name, steps: steps}
}

// When wraps step so it only runs if cond reports true for the item.
func When[T any](cond func(*T) bool, step Step[T]) Step[T] {
	return func(ctx context.Context, item *T) error {
		if !cond(item) {
			return nil
		}
		return step(ctx, item)
	}
}
