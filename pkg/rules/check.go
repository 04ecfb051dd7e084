package rules

import "context"

// Check is a synchronous predicate over a property value together with the
// metadata of the failure it reports. Code doubles as the failure error code
// and Params as its message placeholder values.
type Check[P any] struct {
	Name    string
	Code    string
	Message string
	Params  map[string]any
	Test    func(P) bool
}

// AsyncCheck is a predicate that may block on I/O. It can only run through
// an asynchronous validation. A non-nil error is a fault of the check itself,
// not a failed validation.
type AsyncCheck[P any] struct {
	Name    string
	Code    string
	Message string
	Params  map[string]any
	Test    func(context.Context, P) (bool, error)
}

// Predicate wraps a custom test. Code defaults to "validation.<name>".
func Predicate[P any](name, message string, test func(P) bool) Check[P] {
	return Check[P]{
		Name:    name,
		Code:    "validation." + name,
		Message: message,
		Test:    test,
	}
}

// AsyncPredicate wraps a custom blocking test.
func AsyncPredicate[P any](name, message string, test func(context.Context, P) (bool, error)) AsyncCheck[P] {
	return AsyncCheck[P]{
		Name:    name,
		Code:    "validation." + name,
		Message: message,
		Test:    test,
	}
}

// Numeric is the constraint of the numeric checks.
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}
