package rules

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

// PasswordPolicy configures StrongPassword. MaxLength 0 means no upper bound.
type PasswordPolicy struct {
	MinLength        int
	MaxLength        int
	RequireUppercase bool
	RequireLowercase bool
	RequireDigits    bool
	RequireSpecial   bool
	MinCharClasses   int // minimum number of distinct character classes
}

// DefaultPasswordPolicy is 8-128 characters with at least 3 character classes.
func DefaultPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{
		MinLength:        8,
		MaxLength:        128,
		RequireUppercase: true,
		RequireLowercase: true,
		RequireDigits:    true,
		RequireSpecial:   true,
		MinCharClasses:   3,
	}
}

// StrongPassword checks length in runes and the character classes required by p.
func StrongPassword(p PasswordPolicy) Check[string] {
	return Check[string]{
		Name:    "password_strength",
		Code:    "validation.password_strength",
		Message: fmt.Sprintf("password must be %d-%d characters with required character types", p.MinLength, p.MaxLength),
		Params: map[string]any{
			"min_length":        p.MinLength,
			"max_length":        p.MaxLength,
			"require_uppercase": p.RequireUppercase,
			"require_lowercase": p.RequireLowercase,
			"require_digits":    p.RequireDigits,
			"require_special":   p.RequireSpecial,
			"min_char_classes":  p.MinCharClasses,
		},
		Test: func(v string) bool {
			n := utf8.RuneCountInString(v)
			if n < p.MinLength || (p.MaxLength > 0 && n > p.MaxLength) {
				return false
			}

			var upper, lower, digit, special bool
			for _, r := range v {
				switch {
				case unicode.IsUpper(r):
					upper = true
				case unicode.IsLower(r):
					lower = true
				case unicode.IsDigit(r):
					digit = true
				case unicode.IsPunct(r) || unicode.IsSymbol(r):
					special = true
				}
			}

			if (p.RequireUppercase && !upper) ||
				(p.RequireLowercase && !lower) ||
				(p.RequireDigits && !digit) ||
				(p.RequireSpecial && !special) {
				return false
			}

			classes := 0
			for _, ok := range []bool{upper, lower, digit, special} {
				if ok {
					classes++
				}
			}
			return classes >= p.MinCharClasses
		},
	}
}

// MatchesHash fails unless the value is the password behind a bcrypt hash,
// e.g. when confirming the current password before changing it.
func MatchesHash(hash []byte) Check[string] {
	return Check[string]{
		Name:    "password_mismatch",
		Code:    "validation.password_mismatch",
		Message: "password is incorrect",
		Test: func(v string) bool {
			return bcrypt.CompareHashAndPassword(hash, []byte(v)) == nil
		},
	}
}
