package validation

import (
	"fmt"
	"strings"
)

// Severity of a single failure. It is carried on the failure only;
// Result.IsValid does not look at it.
type Severity int

const (
	// SeverityError is the default severity.
	SeverityError Severity = iota
	// SeverityWarning marks a failure callers may choose to tolerate.
	SeverityWarning
	// SeverityInfo marks a purely informational failure.
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

func (s Severity) MarshalText() ([]byte, error) {
	switch s {
	case SeverityError, SeverityWarning, SeverityInfo:
		return []byte(s.String()), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownSeverity, int(s))
	}
}

func (s *Severity) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "error", "":
		*s = SeverityError
	case "warning", "warn":
		*s = SeverityWarning
	case "info":
		*s = SeverityInfo
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSeverity, text)
	}
	return nil
}

// CascadeMode tells a rule engine whether the remaining rules of a chain
// still run after one of them has failed.
type CascadeMode int

const (
	// CascadeContinue runs every rule regardless of earlier failures.
	CascadeContinue CascadeMode = iota
	// CascadeStop halts the current chain at the first failure.
	CascadeStop
)

func (m CascadeMode) String() string {
	switch m {
	case CascadeContinue:
		return "continue"
	case CascadeStop:
		return "stop"
	default:
		return fmt.Sprintf("cascade(%d)", int(m))
	}
}

func (m CascadeMode) MarshalText() ([]byte, error) {
	switch m {
	case CascadeContinue, CascadeStop:
		return []byte(m.String()), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCascadeMode, int(m))
	}
}

func (m *CascadeMode) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "continue", "":
		*m = CascadeContinue
	case "stop":
		*m = CascadeStop
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCascadeMode, text)
	}
	return nil
}

// ApplyConditionTo sets the scope of a When/Unless gate in a rule chain.
// ApplyConditionTo selects which validators of a chain a When or Unless
// condition gates.
type ApplyConditionTo int

const (
	// ApplyToAllValidators gates every validator declared so far in the chain.
	ApplyToAllValidators ApplyConditionTo = iota
	// ApplyToCurrentValidator gates only the validator declared right before the condition.
	ApplyToCurrentValidator
)

func (a ApplyConditionTo) String() string {
	switch a {
	case ApplyToAllValidators:
		return "all"
	case ApplyToCurrentValidator:
		return "current"
	default:
		return fmt.Sprintf("apply(%d)", int(a))
	}
}

func (a ApplyConditionTo) MarshalText() ([]byte, error) {
	switch a {
	case ApplyToAllValidators, ApplyToCurrentValidator:
		return []byte(a.String()), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownApplyCondition, int(a))
	}
}

func (a *ApplyConditionTo) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "all", "":
		*a = ApplyToAllValidators
	case "current":
		*a = ApplyToCurrentValidator
	default:
		return fmt.Errorf("%w: %q", ErrUnknownApplyCondition, text)
	}
	return nil
}
