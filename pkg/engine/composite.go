package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"time"

	validation "github.com/dmitrymomot/validation"
	"github.com/dmitrymomot/validation/pkg/async"
	"github.com/dmitrymomot/validation/pkg/logger"
)

var _ validation.Validator[struct{}] = (*Composite[struct{}])(nil)

// Composite runs several validators of the same type and merges their
// results in declaration order. The synchronous path runs members one after
// another; the asynchronous path runs them concurrently, at most
// ParallelLimit at a time.
type Composite[T any] struct {
	settings
	members []validation.Validator[T]
}

// Combine creates a Composite over validators. Nil members are skipped.
func Combine[T any](validators []validation.Validator[T], opts ...Option) *Composite[T] {
	s := settings{
		name:   "composite(" + reflect.TypeFor[T]().String() + ")",
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(&s)
	}
	members := make([]validation.Validator[T], 0, len(validators))
	for _, v := range validators {
		if v != nil {
			members = append(members, v)
		}
	}
	return &Composite[T]{settings: s, members: members}
}

// Len returns the number of members.
func (c *Composite[T]) Len() int {
	return len(c.members)
}

func (c *Composite[T]) Validate(instance T) (*validation.Result, error) {
	return c.ValidateContext(validation.NewContext(instance))
}

func (c *Composite[T]) ValidateAsync(ctx context.Context, instance T) (*validation.Result, error) {
	return c.ValidateContextAsync(ctx, validation.NewContext(instance))
}

func (c *Composite[T]) ValidateContext(vc *validation.Context) (*validation.Result, error) {
	if _, err := instanceOf[T](vc); err != nil {
		return nil, err
	}
	start := time.Now()
	results := make([]*validation.Result, 0, len(c.members))
	for _, m := range c.members {
		res, err := m.ValidateContext(vc)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
		if c.cascade == validation.CascadeStop && !res.IsValid() {
			break
		}
	}
	return c.finish(context.Background(), vc, results, start), nil
}

func (c *Composite[T]) ValidateContextAsync(ctx context.Context, vc *validation.Context) (*validation.Result, error) {
	if _, err := instanceOf[T](vc); err != nil {
		return nil, err
	}
	if c.asyncTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.asyncTimeout)
		defer cancel()
	}
	start := time.Now()

	g := async.NewGroup[*validation.Result](ctx, c.parallelLimit)
	for _, m := range c.members {
		g.Go(func(ctx context.Context) (*validation.Result, error) {
			return m.ValidateContextAsync(ctx, vc)
		})
	}
	results, err := g.Wait()
	if err != nil {
		if ctx.Err() != nil || errors.Is(err, ErrCanceled) {
			c.logger.WarnContext(ctx, "composite validation canceled",
				logger.Validator(c.name), logger.Error(err))
			return nil, fmt.Errorf("%w: %w", ErrCanceled, err)
		}
		return nil, err
	}

	// Members ran concurrently, so the validator-level cascade is applied to
	// the merged output: results after the first invalid one are dropped.
	if c.cascade == validation.CascadeStop {
		for i, res := range results {
			if !res.IsValid() {
				results = results[:i+1]
				break
			}
		}
	}
	return c.finish(ctx, vc, results, start), nil
}

// Describe concatenates the descriptors of all members.
func (c *Composite[T]) Describe() validation.Descriptor {
	return c.describe(make(map[any]bool))
}

func (c *Composite[T]) describe(seen map[any]bool) validation.Descriptor {
	seen[c] = true
	defer delete(seen, c)

	d := validation.Descriptor{Name: c.name, Rules: make([]validation.RuleDescriptor, 0)}
	for _, m := range c.members {
		nested, ok := expand(m, seen)
		if !ok {
			nested = []validation.RuleDescriptor{{Name: "child_validator"}}
		}
		d.Rules = append(d.Rules, nested...)
	}
	return d
}

func (c *Composite[T]) finish(ctx context.Context, vc *validation.Context, results []*validation.Result, start time.Time) *validation.Result {
	merged := validation.MergeResults(results...)
	c.logger.DebugContext(ctx, "composite validation completed",
		logger.Validator(c.name),
		logger.RunID(vc.RunID().String()),
		slog.Int("members", len(results)),
		logger.Failures(merged.Len()),
		logger.RuleSets(merged.RuleSetsExecuted()),
		logger.Duration(time.Since(start)),
	)
	return merged
}
