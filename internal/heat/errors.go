package heat

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidConfiguration indicates a configuration rejected before any state is built.
	ErrInvalidConfiguration = errors.New("heat: invalid configuration")

	// ErrInstabilityRisk indicates dt exceeds the CFL bound or the field diverged.
	ErrInstabilityRisk = errors.New("heat: time step exceeds stability bound")

	// ErrRunComplete indicates a runner that already ran, fully or until it
	// was stopped.
	ErrRunComplete = errors.New("heat: run already complete")
)

// ConfigError names the configuration field that failed validation.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidConfiguration, e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfiguration
}

// StepError wraps an error with stepping context.
type StepError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
