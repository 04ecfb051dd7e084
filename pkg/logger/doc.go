// Package logger builds *slog.Logger instances for validators and the tools
// around them.
//
// New applies functional options (format, level, output, static attributes,
// context extractors) and wraps the handler with LogHandlerDecorator, which
// adds attributes stored in the context with ContextWithAttrs to every
// record. Validators use this to tag all records of one run with the
// validator name and run id without threading a derived logger around.
//
// Helper constructors in attr.go (Validator, RunID, Property, Rule,
// RuleSets, Failures, Duration, Error) keep attribute keys consistent.
//
// # Usage
//
//	log := logger.New(logger.WithTextFormatter(), logger.WithLevelName("debug"))
//	ctx = logger.ContextWithAttrs(ctx, logger.Validator("signup"))
//	log.DebugContext(ctx, "validation completed", logger.Failures(2))
package logger
