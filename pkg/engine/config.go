package engine

import (
	"time"

	validation "github.com/dmitrymomot/validation"
)

// Config holds validator defaults that are usually set per deployment.
// Load it with config.Load and pass it to New through WithConfig.
type Config struct {
	Name          string                 `env:"VALIDATION_NAME"`                                   // Name overrides the validator name used in logs and descriptors.
	Cascade       validation.CascadeMode `env:"VALIDATION_CASCADE" envDefault:"continue"`         // Cascade stops the whole validator after the first failing rule when "stop".
	RuleCascade   validation.CascadeMode `env:"VALIDATION_RULE_CASCADE" envDefault:"continue"`    // RuleCascade is the default cascade of newly declared rules.
	AsyncTimeout  time.Duration          `env:"VALIDATION_ASYNC_TIMEOUT" envDefault:"0s"`         // AsyncTimeout bounds ValidateAsync runs; zero means no bound.
	ParallelLimit int                    `env:"VALIDATION_PARALLEL_LIMIT" envDefault:"0"`         // ParallelLimit caps concurrent members of a Composite; zero means no cap.
}
