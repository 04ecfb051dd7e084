package rules

import (
	"context"
	"fmt"
)

// Existence answers whether a value is already known to some store.
// lookup.Source implements it.
type Existence interface {
	Exists(ctx context.Context, value string) (bool, error)
}

// Exists fails when the value is not found in src.
func Exists(src Existence) AsyncCheck[string] {
	return AsyncCheck[string]{
		Name:    "exists",
		Code:    "validation.exists",
		Message: "does not exist",
		Test: func(ctx context.Context, v string) (bool, error) {
			found, err := src.Exists(ctx, v)
			if err != nil {
				return false, fmt.Errorf("exists check: %w", err)
			}
			return found, nil
		},
	}
}

// Unique fails when the value is already present in src.
func Unique(src Existence) AsyncCheck[string] {
	return AsyncCheck[string]{
		Name:    "unique",
		Code:    "validation.unique",
		Message: "is already taken",
		Test: func(ctx context.Context, v string) (bool, error) {
			found, err := src.Exists(ctx, v)
			if err != nil {
				return false, fmt.Errorf("unique check: %w", err)
			}
			return !found, nil
		},
	}
}
