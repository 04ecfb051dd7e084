package rules

import (
	"net/mail"
	"regexp"
	"strings"
)

var alphanumericRegex = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

// Email accepts a bare address (no display name) whose domain has at least
// one dot and no empty labels.
func Email() Check[string] {
	return Check[string]{
		Name:    "email",
		Code:    "validation.email",
		Message: "must be a valid email address",
		Test:    isEmail,
	}
}

func isEmail(value string) bool {
	if strings.TrimSpace(value) == "" {
		return false
	}

	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value || addr.Name != "" {
		return false
	}

	local, domain, ok := strings.Cut(addr.Address, "@")
	if !ok || local == "" || !strings.Contains(domain, ".") {
		return false
	}
	for part := range strings.SplitSeq(domain, ".") {
		if part == "" {
			return false
		}
	}
	return true
}

// Alphanumeric accepts ASCII letters and digits only.
func Alphanumeric() Check[string] {
	return Check[string]{
		Name:    "alphanumeric",
		Code:    "validation.alphanumeric",
		Message: "must contain only letters and numbers",
		Test:    alphanumericRegex.MatchString,
	}
}
