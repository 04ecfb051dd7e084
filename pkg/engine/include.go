package engine

import (
	"context"

	validation "github.com/dmitrymomot/validation"
)

// includeRule runs another validator for the same instance type. It is always
// selected; the included validator applies the rule-set selection itself.
type includeRule[T any] struct {
	other validation.Validator[T]
}

func (r *includeRule[T]) selected(*validation.Context) bool { return true }

func (r *includeRule[T]) sets() []string { return nil }

// async is left to the included validator, which rejects sync runs on its own.
func (r *includeRule[T]) async() bool { return false }

func (r *includeRule[T]) describe(seen map[any]bool) []validation.RuleDescriptor {
	nested, ok := expand(r.other, seen)
	if !ok {
		return []validation.RuleDescriptor{{Name: "child_validator"}}
	}
	return nested
}

func (r *includeRule[T]) run(ctx context.Context, rc *runContext[T]) (*validation.Result, error) {
	return run(ctx, r.other, rc.vc, rc.suspend)
}
