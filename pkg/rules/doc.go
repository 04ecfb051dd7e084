// Package rules provides reusable property checks for the engine package.
//
// A Check pairs a synchronous predicate with the metadata of the failure it
// produces: a short name, a machine-readable code such as
// "validation.min_length", a default English message and the placeholder
// values the message was built from. AsyncCheck is the blocking counterpart,
// used for remote lookups (Exists, Unique) and anything else that needs a
// context.
//
// Families:
//   - strings: NotBlank, MinLen, MaxLen, Len, Matches, Email, Alphanumeric
//   - numbers: Min, Max, Between, Positive
//   - comparable values: NotZero, Equal, OneOf, NotOneOf, OneOfFold
//   - passwords: StrongPassword, MatchesHash (bcrypt)
//   - slices: NotEmpty, MinItems, MaxItems, UniqueItems
//   - identifiers: UUID, NonNilUUID
//   - custom: Predicate, AsyncPredicate
//   - remote: Exists, Unique over any Existence (see package lookup)
//
// # Usage
//
//	engine.RuleFor(v, "Email", func(s Signup) string { return s.Email }).
//	    Must(rules.NotBlank()).
//	    Must(rules.Email()).
//	    MustAsync(rules.Unique(lookup.Redis(client, "users:emails")))
//
// Checks hold no state, so one value can be shared by many validators.
package rules
