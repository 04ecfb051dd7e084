package rules

import (
	"fmt"
	"slices"

	"golang.org/x/text/cases"
)

// NotZero fails for the zero value of P.
func NotZero[P comparable]() Check[P] {
	return Check[P]{
		Name:    "required",
		Code:    "validation.required",
		Message: "field is required",
		Test: func(v P) bool {
			var zero P
			return v != zero
		},
	}
}

// Equal fails unless the value equals expected.
func Equal[P comparable](expected P) Check[P] {
	return Check[P]{
		Name:    "equal",
		Code:    "validation.equal",
		Message: fmt.Sprintf("must be equal to %v", expected),
		Params:  map[string]any{"expected": expected},
		Test: func(v P) bool {
			return v == expected
		},
	}
}

// OneOf fails unless the value is one of allowed.
func OneOf[P comparable](allowed ...P) Check[P] {
	return Check[P]{
		Name:    "in_list",
		Code:    "validation.in_list",
		Message: fmt.Sprintf("must be one of: %v", allowed),
		Params:  map[string]any{"allowed_values": allowed},
		Test: func(v P) bool {
			return slices.Contains(allowed, v)
		},
	}
}

// NotOneOf fails when the value is one of forbidden.
func NotOneOf[P comparable](forbidden ...P) Check[P] {
	return Check[P]{
		Name:    "not_in_list",
		Code:    "validation.not_in_list",
		Message: fmt.Sprintf("must not be one of: %v", forbidden),
		Params:  map[string]any{"forbidden_values": forbidden},
		Test: func(v P) bool {
			return !slices.Contains(forbidden, v)
		},
	}
}

// OneOfFold is OneOf for strings under Unicode case folding, so "STRASSE"
// matches "straße".
func OneOfFold(allowed ...string) Check[string] {
	fold := cases.Fold()
	folded := make([]string, len(allowed))
	for i, a := range allowed {
		folded[i] = fold.String(a)
	}
	return Check[string]{
		Name:    "in_list",
		Code:    "validation.in_list",
		Message: fmt.Sprintf("must be one of: %v", allowed),
		Params:  map[string]any{"allowed_values": allowed},
		Test: func(v string) bool {
			// Casers keep state, so each call gets its own.
			return slices.Contains(folded, cases.Fold().String(v))
		},
	}
}
