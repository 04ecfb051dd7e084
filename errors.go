package validation

import "errors"

var (
	// ErrInvalidArgument is the class of programming errors raised when a
	// required argument is missing. Use errors.Is to detect it.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNilErrors is returned by Result.SetErrors when given a nil slice.
	ErrNilErrors = errors.Join(ErrInvalidArgument, errors.New("errors collection must not be nil"))

	// ErrNilContext is returned when a validator receives a nil *Context.
	ErrNilContext = errors.Join(ErrInvalidArgument, errors.New("validation context must not be nil"))

	// ErrInstanceType is returned when a context carries an instance the validator cannot handle.
	ErrInstanceType = errors.Join(ErrInvalidArgument, errors.New("instance type does not match validator"))

	// ErrValidationFailed is wrapped by the error returned from Result.Err.
	ErrValidationFailed = errors.New("validation failed")

	// ErrAsyncRuleInSyncPath is returned when an asynchronous rule is reached by a synchronous validation.
	ErrAsyncRuleInSyncPath = errors.New("asynchronous rule invoked synchronously, use ValidateAsync")

	ErrUnknownSeverity       = errors.New("unknown severity")
	ErrUnknownCascadeMode    = errors.New("unknown cascade mode")
	ErrUnknownApplyCondition = errors.New("unknown apply condition")
)
