package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// LineSeparator is the separator used by Result.String.
const LineSeparator = "\n"

// Result is the outcome of a validation run: an ordered list of failures
// plus the names of the rule sets that ran.
//
// A Result is safe for concurrent reads. SetErrors and SetRuleSetsExecuted
// must not run concurrently with anything else.
type Result struct {
	errors           []*Failure
	ruleSetsExecuted []string
}

// NewResult creates a result from failures. Nil entries are dropped and the
// input is copied, so later changes to the caller's slice are not observed.
func NewResult(failures ...*Failure) *Result {
	return &Result{errors: compact(failures)}
}

// MergeResults combines several results into one. Failures are concatenated
// in source order. RuleSetsExecuted is the distinct union, in first-seen
// order, of the sources that carry rule-set names; it stays nil when none do.
// Nil results are skipped.
func MergeResults(results ...*Result) *Result {
	merged := &Result{errors: make([]*Failure, 0)}
	for _, r := range results {
		if r == nil {
			continue
		}
		merged.errors = append(merged.errors, r.errors...)
		if r.ruleSetsExecuted != nil {
			merged.ruleSetsExecuted = appendDistinct(merged.ruleSetsExecuted, r.ruleSetsExecuted...)
		}
	}
	return merged
}

// IsValid reports whether the result holds no failures, whatever their severity.
func (r *Result) IsValid() bool {
	return len(r.errors) == 0
}

// Len returns the number of failures.
func (r *Result) Len() int {
	return len(r.errors)
}

// Errors returns a copy of the failures in insertion order.
func (r *Result) Errors() []*Failure {
	return slices.Clone(r.errors)
}

// SetErrors replaces all failures. A nil slice is rejected with ErrNilErrors;
// an empty one clears the result. Nil entries are dropped and the slice is copied.
func (r *Result) SetErrors(failures []*Failure) error {
	if failures == nil {
		return ErrNilErrors
	}
	r.errors = compact(failures)
	return nil
}

// RuleSetsExecuted returns the names of the rule sets that ran, or nil when
// the producer did not report any.
func (r *Result) RuleSetsExecuted() []string {
	return slices.Clone(r.ruleSetsExecuted)
}

// SetRuleSetsExecuted records the rule sets that ran. Duplicates are dropped,
// first occurrence wins. Calling it with no names clears the metadata.
func (r *Result) SetRuleSetsExecuted(names ...string) {
	if len(names) == 0 {
		r.ruleSetsExecuted = nil
		return
	}
	r.ruleSetsExecuted = appendDistinct(nil, names...)
}

// String joins all error messages with LineSeparator.
func (r *Result) String() string {
	return r.Render(LineSeparator)
}

// Render joins the error message of every failure with sep, in order.
// Failures without a message contribute an empty segment.
func (r *Result) Render(sep string) string {
	parts := make([]string, len(r.errors))
	for i, f := range r.errors {
		parts[i] = f.String()
	}
	return strings.Join(parts, sep)
}

// ErrorsFor returns the failures reported for property, in order.
func (r *Result) ErrorsFor(property string) []*Failure {
	var out []*Failure
	for _, f := range r.errors {
		if f.PropertyName == property {
			out = append(out, f)
		}
	}
	return out
}

// HasErrorsFor reports whether property has at least one failure.
func (r *Result) HasErrorsFor(property string) bool {
	return slices.ContainsFunc(r.errors, func(f *Failure) bool {
		return f.PropertyName == property
	})
}

// Properties returns the distinct property names that have failures,
// in first-seen order.
func (r *Result) Properties() []string {
	var props []string
	seen := make(map[string]bool)
	for _, f := range r.errors {
		if !seen[f.PropertyName] {
			seen[f.PropertyName] = true
			props = append(props, f.PropertyName)
		}
	}
	return props
}

// BySeverity returns the failures with the given severity.
func (r *Result) BySeverity(s Severity) []*Failure {
	var out []*Failure
	for _, f := range r.errors {
		if f.Severity == s {
			out = append(out, f)
		}
	}
	return out
}

// ToFieldMap groups error messages by property name. Failures without a
// property name land under ObjectKey.
func (r *Result) ToFieldMap() FieldMap {
	m := FieldMap{values: make(map[string][]string)}
	for _, f := range r.errors {
		m.add(f.PropertyName, f.ErrorMessage)
	}
	return m
}

// Err returns nil for a valid result and a *ResultError otherwise.
func (r *Result) Err() error {
	if r.IsValid() {
		return nil
	}
	return &ResultError{Result: r}
}

type resultJSON struct {
	IsValid          bool       `json:"is_valid"`
	Errors           []*Failure `json:"errors"`
	RuleSetsExecuted []string   `json:"rule_sets_executed,omitempty"`
}

func (r *Result) MarshalJSON() ([]byte, error) {
	errs := r.errors
	if errs == nil {
		errs = []*Failure{}
	}
	return json.Marshal(resultJSON{
		IsValid:          r.IsValid(),
		Errors:           errs,
		RuleSetsExecuted: r.ruleSetsExecuted,
	})
}

// UnmarshalJSON restores a result. is_valid is ignored; it is derived.
func (r *Result) UnmarshalJSON(data []byte) error {
	var raw resultJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.errors = compact(raw.Errors)
	r.ruleSetsExecuted = nil
	if raw.RuleSetsExecuted != nil {
		r.ruleSetsExecuted = appendDistinct(nil, raw.RuleSetsExecuted...)
	}
	return nil
}

// ResultError carries an invalid Result through an error return.
type ResultError struct {
	Result *Result
}

func (e *ResultError) Error() string {
	if e.Result == nil || e.Result.IsValid() {
		return ErrValidationFailed.Error()
	}
	parts := make([]string, 0, e.Result.Len())
	for _, f := range e.Result.errors {
		if f.PropertyName == "" {
			parts = append(parts, f.ErrorMessage)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", f.PropertyName, f.ErrorMessage))
	}
	return ErrValidationFailed.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ResultError) Unwrap() error {
	return ErrValidationFailed
}

// AsResult extracts the Result carried by err, if any.
func AsResult(err error) (*Result, bool) {
	var re *ResultError
	if errors.As(err, &re) && re.Result != nil {
		return re.Result, true
	}
	return nil, false
}

// IsValidationError reports whether err carries an invalid Result.
func IsValidationError(err error) bool {
	_, ok := AsResult(err)
	return ok
}

func compact(failures []*Failure) []*Failure {
	out := make([]*Failure, 0, len(failures))
	for _, f := range failures {
		if f != nil {
			out = append(out, f)
		}
	}
	return out
}

func appendDistinct(dst []string, names ...string) []string {
	for _, n := range names {
		if !slices.Contains(dst, n) {
			dst = append(dst, n)
		}
	}
	return dst
}
