package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"time"

	validation "github.com/dmitrymomot/validation"
	"github.com/dmitrymomot/validation/pkg/logger"
)

var _ validation.Validator[struct{}] = (*Validator[struct{}])(nil)

// rule is one entry of a validator's rule list.
type rule[T any] interface {
	// selected reports whether the rule takes part in a run with vc's rule-set selection.
	selected(vc *validation.Context) bool
	// sets returns the rule sets the rule belongs to, nil for pass-through rules.
	sets() []string
	async() bool
	describe(seen map[any]bool) []validation.RuleDescriptor
	run(ctx context.Context, rc *runContext[T]) (*validation.Result, error)
}

type runContext[T any] struct {
	instance T
	vc       *validation.Context
	// suspend is true on the asynchronous path: async checks may run and
	// cancellation is observed at rule boundaries.
	suspend bool
}

// Validator is a rule-based implementation of validation.Validator.
// Declare rules with RuleFor, RuleForEach and Include before the first
// validation; a configured Validator is safe for concurrent use.
type Validator[T any] struct {
	settings
	rules      []rule[T]
	activeSets []string
}

// New creates an empty validator for T.
func New[T any](opts ...Option) *Validator[T] {
	s := settings{
		name:   reflect.TypeFor[T]().String(),
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(&s)
	}
	return &Validator[T]{settings: s}
}

// Name returns the validator name used in logs and descriptors.
func (v *Validator[T]) Name() string {
	return v.name
}

// RuleSet declares every rule added inside fn as a member of the named rule
// sets instead of the default one.
func (v *Validator[T]) RuleSet(fn func(), names ...string) {
	prev := v.activeSets
	v.activeSets = slices.Clone(names)
	defer func() { v.activeSets = prev }()
	fn()
}

// Include adds every rule of other to this validator. other runs against the
// same context, so its rules see the same rule-set selection.
func (v *Validator[T]) Include(other validation.Validator[T]) {
	v.rules = append(v.rules, &includeRule[T]{other: other})
}

func (v *Validator[T]) Validate(instance T) (*validation.Result, error) {
	return v.ValidateContext(validation.NewContext(instance))
}

func (v *Validator[T]) ValidateAsync(ctx context.Context, instance T) (*validation.Result, error) {
	return v.ValidateContextAsync(ctx, validation.NewContext(instance))
}

func (v *Validator[T]) ValidateContext(vc *validation.Context) (*validation.Result, error) {
	instance, err := instanceOf[T](vc)
	if err != nil {
		return nil, err
	}
	return v.evaluate(context.Background(), vc, instance, false)
}

func (v *Validator[T]) ValidateContextAsync(ctx context.Context, vc *validation.Context) (*validation.Result, error) {
	instance, err := instanceOf[T](vc)
	if err != nil {
		return nil, err
	}
	if v.asyncTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, v.asyncTimeout)
		defer cancel()
	}
	return v.evaluate(ctx, vc, instance, true)
}

// Describe lists every rule component in declaration order. A nested
// validator that is already being described further up, as in a recursive
// tree, appears once as a "child_validator" entry.
func (v *Validator[T]) Describe() validation.Descriptor {
	return v.describe(make(map[any]bool))
}

func (v *Validator[T]) describe(seen map[any]bool) validation.Descriptor {
	seen[v] = true
	defer delete(seen, v)

	d := validation.Descriptor{Name: v.name, Rules: make([]validation.RuleDescriptor, 0, len(v.rules))}
	for _, r := range v.rules {
		d.Rules = append(d.Rules, r.describe(seen)...)
	}
	return d
}

// describer is implemented by the validators of this package so that
// nested descriptions can detect cycles.
type describer interface {
	describe(seen map[any]bool) validation.Descriptor
}

// expand returns the rules of a nested validator. ok is false when the
// validator is already on the current description path.
func expand(child validation.ContextValidator, seen map[any]bool) ([]validation.RuleDescriptor, bool) {
	d, own := child.(describer)
	if !own {
		return child.Describe().Rules, true
	}
	if seen[d] {
		return nil, false
	}
	return d.describe(seen).Rules, true
}

// evaluate is the single evaluation routine behind all four entry points.
func (v *Validator[T]) evaluate(ctx context.Context, vc *validation.Context, instance T, suspend bool) (*validation.Result, error) {
	start := time.Now()
	ctx = logger.ContextWithAttrs(ctx, logger.Validator(v.name), logger.RunID(vc.RunID().String()))

	selected := make([]rule[T], 0, len(v.rules))
	for _, r := range v.rules {
		if r.selected(vc) {
			selected = append(selected, r)
		}
	}

	// Deterministic policy: a sync run that would reach an async rule fails
	// before any rule runs, whatever the instance holds.
	if !suspend {
		for _, r := range selected {
			if r.async() {
				err := fmt.Errorf("validator %s: %w", v.name, validation.ErrAsyncRuleInSyncPath)
				v.logger.ErrorContext(ctx, "validation rejected", logger.Error(err))
				return nil, err
			}
		}
	}

	rc := &runContext[T]{instance: instance, vc: vc, suspend: suspend}
	results := make([]*validation.Result, 0, len(selected))
	var executed []string

	for _, r := range selected {
		if suspend {
			if err := ctx.Err(); err != nil {
				return nil, v.canceled(ctx, err)
			}
		}

		res, err := r.run(ctx, rc)
		if err != nil {
			if suspend && ctx.Err() != nil {
				return nil, v.canceled(ctx, ctx.Err())
			}
			if errors.Is(err, ErrCanceled) {
				return nil, v.canceled(ctx, err)
			}
			v.logger.ErrorContext(ctx, "validation aborted by rule error", logger.Error(err))
			return nil, err
		}

		executed = appendDistinct(executed, r.sets()...)
		executed = appendDistinct(executed, res.RuleSetsExecuted()...)
		results = append(results, res)

		if v.cascade == validation.CascadeStop && !res.IsValid() {
			break
		}
	}

	result := validation.MergeResults(results...)
	result.SetRuleSetsExecuted(executed...)

	v.logger.DebugContext(ctx, "validation completed",
		slog.Bool("valid", result.IsValid()),
		logger.Failures(result.Len()),
		logger.RuleSets(executed),
		logger.Duration(time.Since(start)),
	)
	return result, nil
}

func (v *Validator[T]) canceled(ctx context.Context, cause error) error {
	v.logger.WarnContext(ctx, "validation canceled", logger.Error(cause))
	if errors.Is(cause, ErrCanceled) {
		return cause
	}
	return fmt.Errorf("%w: %w", ErrCanceled, cause)
}

func instanceOf[T any](vc *validation.Context) (T, error) {
	var zero T
	if vc == nil {
		return zero, validation.ErrNilContext
	}
	instance, ok := vc.Instance().(T)
	if !ok {
		return zero, fmt.Errorf("%w: want %s, got %T", validation.ErrInstanceType, reflect.TypeFor[T](), vc.Instance())
	}
	return instance, nil
}

// run dispatches to the sync or async entry point of another validator.
func run[P any](ctx context.Context, v validation.Validator[P], vc *validation.Context, suspend bool) (*validation.Result, error) {
	if suspend {
		return v.ValidateContextAsync(ctx, vc)
	}
	return v.ValidateContext(vc)
}

func appendDistinct(dst []string, names ...string) []string {
	for _, n := range names {
		if !slices.Contains(dst, n) {
			dst = append(dst, n)
		}
	}
	return dst
}
