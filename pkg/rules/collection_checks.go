package rules

import "fmt"

// NotEmpty fails for a nil or empty slice and is reported as required.
func NotEmpty[E any]() Check[[]E] {
	return Check[[]E]{
		Name:    "required",
		Code:    "validation.required",
		Message: "field is required",
		Test: func(v []E) bool {
			return len(v) > 0
		},
	}
}

// MinItems fails when the slice has fewer than min elements.
func MinItems[E any](min int) Check[[]E] {
	return Check[[]E]{
		Name:    "min_items",
		Code:    "validation.min_items",
		Message: fmt.Sprintf("must have at least %d items", min),
		Params:  map[string]any{"min": min},
		Test: func(v []E) bool {
			return len(v) >= min
		},
	}
}

// MaxItems fails when the slice has more than max elements.
func MaxItems[E any](max int) Check[[]E] {
	return Check[[]E]{
		Name:    "max_items",
		Code:    "validation.max_items",
		Message: fmt.Sprintf("must have at most %d items", max),
		Params:  map[string]any{"max": max},
		Test: func(v []E) bool {
			return len(v) <= max
		},
	}
}

// UniqueItems fails when any element appears twice.
func UniqueItems[E comparable]() Check[[]E] {
	return Check[[]E]{
		Name:    "unique_items",
		Code:    "validation.unique_items",
		Message: "must not contain duplicate items",
		Test: func(v []E) bool {
			seen := make(map[E]struct{}, len(v))
			for _, item := range v {
				if _, ok := seen[item]; ok {
					return false
				}
				seen[item] = struct{}{}
			}
			return true
		},
	}
}
