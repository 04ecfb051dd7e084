package rules

import "fmt"

// Min fails when the value is below min.
func Min[N Numeric](min N) Check[N] {
	return Check[N]{
		Name:    "min",
		Code:    "validation.min",
		Message: fmt.Sprintf("must be at least %v", min),
		Params:  map[string]any{"min": min},
		Test: func(v N) bool {
			return v >= min
		},
	}
}

// Max fails when the value is above max.
func Max[N Numeric](max N) Check[N] {
	return Check[N]{
		Name:    "max",
		Code:    "validation.max",
		Message: fmt.Sprintf("must be at most %v", max),
		Params:  map[string]any{"max": max},
		Test: func(v N) bool {
			return v <= max
		},
	}
}

// Between is inclusive on both ends.
func Between[N Numeric](min, max N) Check[N] {
	return Check[N]{
		Name:    "between",
		Code:    "validation.between",
		Message: fmt.Sprintf("must be between %v and %v", min, max),
		Params:  map[string]any{"min": min, "max": max},
		Test: func(v N) bool {
			return v >= min && v <= max
		},
	}
}

// Positive fails for zero and negative values.
func Positive[N Numeric]() Check[N] {
	return Check[N]{
		Name:    "positive",
		Code:    "validation.positive",
		Message: "must be positive",
		Test: func(v N) bool {
			var zero N
			return v > zero
		},
	}
}
