// Package validation defines the result model and the validator contract
// shared by rule engines and their consumers.
//
// A validation run produces a Result: an ordered list of Failure records
// plus the names of the rule sets that ran. A Result is valid exactly when
// it holds no failures; severity is informational and does not change that.
//
// Key types:
//
//   - Failure: one violation with property name, message, attempted value,
//     severity, error code, custom state and message placeholder values
//   - Result: the failures of a run, with rendering (String, Render), field
//     grouping (ToFieldMap) and merging (MergeResults)
//   - Validator[T]: the contract every engine implements, with synchronous
//     and asynchronous entry points that must agree on their output
//   - Context: the non-generic run input carrying the instance, the
//     selected rule sets and ambient items
//   - Descriptor: a static description of the configured rules
//
// Basic usage:
//
//	res, err := v.ValidateAsync(ctx, signup)
//	if err != nil {
//		return err // canceled, or a rule could not be evaluated
//	}
//	if !res.IsValid() {
//		fields := res.ToFieldMap()
//		for _, prop := range fields.Keys() {
//			log.Printf("%s: %v", prop, fields.Get(prop))
//		}
//	}
//
// Failed rules are data, never errors. Result.Err converts an invalid result
// into an error when a caller wants to bubble it up; AsResult recovers it.
//
// Package engine provides the rule-based implementation of Validator,
// package rules the reusable checks, and package lookup the remote sources
// used by asynchronous checks.
package validation
