package logger

import (
	"log/slog"
	"time"
)

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Validator records the validator name under the key "validator".
func Validator(name string) slog.Attr {
	return slog.String("validator", name)
}

// RunID records the validation run identifier under the key "run_id".
// If id is nil, it returns an empty Attr.
func RunID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("run_id", id)
}

// Property records the validated property under the key "property".
func Property(name string) slog.Attr {
	return slog.String("property", name)
}

// Rule records the rule component name under the key "rule".
func Rule(name string) slog.Attr {
	return slog.String("rule", name)
}

// RuleSets records executed rule sets under the key "rule_sets".
func RuleSets(names []string) slog.Attr {
	return slog.Any("rule_sets", names)
}

// Failures records the failure count under the key "failures".
func Failures(n int) slog.Attr {
	return slog.Int("failures", n)
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}
