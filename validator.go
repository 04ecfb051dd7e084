package validation

import (
	"context"

	"github.com/dmitrymomot/validation/pkg/async"
)

// Validator validates values of type T.
//
// Implementations return either a non-nil Result and a nil error, or a nil
// Result and an error. Failed rules are data inside the Result, never errors.
// Errors are reserved for programming faults (a rule body returning an error,
// ErrAsyncRuleInSyncPath, ErrInstanceType) and for cancellation.
//
// Validate and ValidateAsync must report the same failures in the same order
// for the same input. Rules that can only be evaluated asynchronously make
// Validate fail with ErrAsyncRuleInSyncPath.
type Validator[T any] interface {
	Validate(instance T) (*Result, error)
	// ValidateAsync may suspend between rules. When ctx is done before the
	// run completes it returns a nil Result and an error wrapping ctx.Err().
	ValidateAsync(ctx context.Context, instance T) (*Result, error)

	ContextValidator
}

// ContextValidator is the non-generic entry point used when the instance
// type is only known at runtime.
type ContextValidator interface {
	ValidateContext(vc *Context) (*Result, error)
	ValidateContextAsync(ctx context.Context, vc *Context) (*Result, error)
	// Describe reports the configured rules without evaluating any of them.
	Describe() Descriptor
}

// Go starts an asynchronous validation in the background.
func Go[T any](ctx context.Context, v Validator[T], instance T) *async.Future[*Result] {
	return async.Async(ctx, instance, v.ValidateAsync)
}
