package engine

import "errors"

var (
	// ErrCanceled wraps the context error when an asynchronous validation
	// stops before completion. errors.Is also matches context.Canceled or
	// context.DeadlineExceeded.
	ErrCanceled = errors.New("engine: validation canceled")

	// ErrRuleFailed wraps faults raised by a rule body, such as an AsyncCheck
	// returning an error or a nested validator failing.
	ErrRuleFailed = errors.New("engine: rule evaluation failed")
)
