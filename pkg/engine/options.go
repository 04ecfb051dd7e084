package engine

import (
	"log/slog"
	"time"

	validation "github.com/dmitrymomot/validation"
)

// Option configures a Validator or a Composite.
type Option func(*settings)

type settings struct {
	name          string
	cascade       validation.CascadeMode
	ruleCascade   validation.CascadeMode
	asyncTimeout  time.Duration
	parallelLimit int
	logger        *slog.Logger
}

// WithName sets the name used in logs and descriptors.
func WithName(name string) Option {
	return func(s *settings) {
		if name != "" {
			s.name = name
		}
	}
}

// WithLogger sets the logger. Nil loggers are ignored.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCascade sets the validator-level cascade: with CascadeStop no further
// rule runs once a rule has reported a failure.
func WithCascade(mode validation.CascadeMode) Option {
	return func(s *settings) { s.cascade = mode }
}

// WithRuleCascade sets the cascade every new rule starts with.
func WithRuleCascade(mode validation.CascadeMode) Option {
	return func(s *settings) { s.ruleCascade = mode }
}

// WithAsyncTimeout bounds every asynchronous run. Zero disables the bound.
func WithAsyncTimeout(d time.Duration) Option {
	return func(s *settings) { s.asyncTimeout = d }
}

// WithParallelLimit caps how many members of a Composite run at once.
func WithParallelLimit(n int) Option {
	return func(s *settings) { s.parallelLimit = n }
}

// WithConfig applies every field of cfg. An empty Name keeps the current one.
func WithConfig(cfg Config) Option {
	return func(s *settings) {
		WithName(cfg.Name)(s)
		s.cascade = cfg.Cascade
		s.ruleCascade = cfg.RuleCascade
		s.asyncTimeout = cfg.AsyncTimeout
		s.parallelLimit = cfg.ParallelLimit
	}
}
