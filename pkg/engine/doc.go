// Package engine implements validation.Validator with a rule-based builder.
//
// A Validator[T] holds an ordered list of property rules. Each rule reads one
// property of the instance (RuleFor) or every element of a slice property
// (RuleForEach) and runs a chain of components against it: synchronous
// checks (Must), asynchronous checks (MustAsync) and nested validators
// (SetValidator). Modifiers after a component customise the failure it
// reports (WithMessage, WithErrorCode, WithSeverity, WithState) or gate it
// (When, Unless).
//
// # Usage
//
//	v := engine.New[Signup](engine.WithLogger(log))
//	engine.RuleFor(v, "Email", func(s Signup) string { return s.Email }).
//	    Must(rules.NotBlank()).
//	    Must(rules.Email()).WithSeverity(validation.SeverityWarning)
//	engine.RuleFor(v, "Password", func(s Signup) string { return s.Password }).
//	    Cascade(validation.CascadeStop).
//	    Must(rules.NotBlank()).
//	    Must(rules.MinLen(8))
//	v.RuleSet(func() {
//	    engine.RuleFor(v, "Email", func(s Signup) string { return s.Email }).
//	        MustAsync(rules.Unique(users))
//	}, "remote")
//
//	res, err := v.ValidateAsync(ctx, signup)
//
// # Evaluation
//
// The four entry points share one evaluation routine. Rules run in
// declaration order and failures keep that order. The synchronous path
// refuses to run rules that contain asynchronous checks and returns
// validation.ErrAsyncRuleInSyncPath before evaluating anything. The
// asynchronous path checks the context before every rule and component; a
// done context yields a nil result and an error matching both ErrCanceled
// and the context error.
//
// Rule sets select which rules run. Rules declared outside RuleSet or
// InRuleSet belong to validation.DefaultRuleSet, the only set that runs when
// the context selects none.
//
// Combine merges several validators into a Composite that fans out on the
// asynchronous path through package async.
//
// Rules must be declared before the validator is used concurrently.
package engine
