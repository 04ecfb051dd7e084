package rules

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// NotBlank fails for strings that are empty after trimming whitespace.
func NotBlank() Check[string] {
	return Check[string]{
		Name:    "required",
		Code:    "validation.required",
		Message: "field is required",
		Test: func(v string) bool {
			return strings.TrimSpace(v) != ""
		},
	}
}

// MinLen counts runes, not bytes.
func MinLen(min int) Check[string] {
	return Check[string]{
		Name:    "min_length",
		Code:    "validation.min_length",
		Message: fmt.Sprintf("must be at least %d characters long", min),
		Params:  map[string]any{"min": min},
		Test: func(v string) bool {
			return utf8.RuneCountInString(v) >= min
		},
	}
}

// MaxLen fails when the value has more than max runes.
func MaxLen(max int) Check[string] {
	return Check[string]{
		Name:    "max_length",
		Code:    "validation.max_length",
		Message: fmt.Sprintf("must be at most %d characters long", max),
		Params:  map[string]any{"max": max},
		Test: func(v string) bool {
			return utf8.RuneCountInString(v) <= max
		},
	}
}

// Len fails unless the value has exactly exact runes.
func Len(exact int) Check[string] {
	return Check[string]{
		Name:    "exact_length",
		Code:    "validation.exact_length",
		Message: fmt.Sprintf("must be exactly %d characters long", exact),
		Params:  map[string]any{"length": exact},
		Test: func(v string) bool {
			return utf8.RuneCountInString(v) == exact
		},
	}
}

// Matches checks re against the whole value as given; anchor the pattern
// yourself. description ends up in the message ("must match <description>").
func Matches(re *regexp.Regexp, description string) Check[string] {
	return Check[string]{
		Name:    "pattern",
		Code:    "validation.pattern",
		Message: "must match " + description,
		Params:  map[string]any{"pattern": re.String(), "description": description},
		Test:    re.MatchString,
	}
}
