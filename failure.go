package validation

import (
	"maps"
	"reflect"
)

// Failure describes a single rule violation.
// Empty strings stand for absent text: an empty PropertyName marks a
// whole-object failure, an empty ErrorMessage renders as "".
type Failure struct {
	PropertyName   string `json:"property_name,omitempty" yaml:"property_name,omitempty"`
	ErrorMessage   string `json:"error_message,omitempty" yaml:"error_message,omitempty"`
	AttemptedValue any    `json:"attempted_value,omitempty" yaml:"attempted_value,omitempty"`
	CustomState    any    `json:"custom_state,omitempty" yaml:"custom_state,omitempty"`

	Severity  Severity `json:"severity" yaml:"severity"`
	ErrorCode string   `json:"error_code,omitempty" yaml:"error_code,omitempty"`

	// FormattedMessagePlaceholderValues holds the values a message template
	// was (or can be) rendered with, e.g. {"min": 3}.
	FormattedMessagePlaceholderValues map[string]any `json:"placeholders,omitempty" yaml:"placeholders,omitempty"`
}

// NewFailure creates a failure with error severity, no error code and an
// empty placeholder map. Arguments are not validated.
func NewFailure(property, message string, attempted any) *Failure {
	return &Failure{
		PropertyName:                      property,
		ErrorMessage:                      message,
		AttemptedValue:                    attempted,
		Severity:                          SeverityError,
		FormattedMessagePlaceholderValues: make(map[string]any),
	}
}

// String returns the error message.
func (f *Failure) String() string {
	if f == nil {
		return ""
	}
	return f.ErrorMessage
}

// Equal reports whether both failures hold structurally equal values.
// A nil placeholder map equals an empty one.
func (f *Failure) Equal(other *Failure) bool {
	if f == nil || other == nil {
		return f == other
	}
	if f.PropertyName != other.PropertyName ||
		f.ErrorMessage != other.ErrorMessage ||
		f.Severity != other.Severity ||
		f.ErrorCode != other.ErrorCode {
		return false
	}
	if !reflect.DeepEqual(f.AttemptedValue, other.AttemptedValue) ||
		!reflect.DeepEqual(f.CustomState, other.CustomState) {
		return false
	}
	if len(f.FormattedMessagePlaceholderValues) != len(other.FormattedMessagePlaceholderValues) {
		return false
	}
	for k, v := range f.FormattedMessagePlaceholderValues {
		ov, ok := other.FormattedMessagePlaceholderValues[k]
		if !ok || !reflect.DeepEqual(v, ov) {
			return false
		}
	}
	return true
}

// Clone returns a copy with its own placeholder map.
// AttemptedValue and CustomState are copied by reference.
func (f *Failure) Clone() *Failure {
	if f == nil {
		return nil
	}
	c := *f
	c.FormattedMessagePlaceholderValues = maps.Clone(f.FormattedMessagePlaceholderValues)
	if c.FormattedMessagePlaceholderValues == nil {
		c.FormattedMessagePlaceholderValues = make(map[string]any)
	}
	return &c
}

// WithSeverity sets the severity and returns f for chaining.
func (f *Failure) WithSeverity(s Severity) *Failure {
	f.Severity = s
	return f
}

// WithErrorCode sets the machine-readable error code.
func (f *Failure) WithErrorCode(code string) *Failure {
	f.ErrorCode = code
	return f
}

// WithCustomState attaches arbitrary caller data to the failure.
func (f *Failure) WithCustomState(state any) *Failure {
	f.CustomState = state
	return f
}

// WithPlaceholder sets one placeholder value, allocating the map if needed.
func (f *Failure) WithPlaceholder(key string, value any) *Failure {
	if f.FormattedMessagePlaceholderValues == nil {
		f.FormattedMessagePlaceholderValues = make(map[string]any)
	}
	f.FormattedMessagePlaceholderValues[key] = value
	return f
}
