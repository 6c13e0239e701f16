package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorSolver   = 2   // Indicates the external solver failed mid-run.
	ExitErrorModel    = 3   // Indicates a model construction or registration error.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// InvalidReferenceError reports an override or constraint term that names a
// variable or constraint identity unknown to the base model. It is raised
// synchronously at registration time, never deferred to solve time.
type InvalidReferenceError struct {
	// Kind is the entity kind the reference points at ("variable" or "constraint").
	Kind string
	// ID is the identity that could not be resolved.
	ID int
}

// Error returns a formatted message naming the dangling reference.
func (e InvalidReferenceError) Error() string {
	return fmt.Sprintf("invalid reference: %s id %d does not exist in the base model", e.Kind, e.ID)
}

// DuplicateNameError reports two variables or two constraints registered
// under the same human-readable name.
type DuplicateNameError struct {
	// Kind is the entity kind ("variable" or "constraint").
	Kind string
	// Name is the name that was registered twice.
	Name string
}

// Error returns a formatted message naming the duplicate.
func (e DuplicateNameError) Error() string {
	return fmt.Sprintf("duplicate %s name %q", e.Kind, e.Name)
}

// StructureFrozenError reports an attempt to add a variable or constraint to
// a base model after FinalizeStructure has locked the structural skeleton.
type StructureFrozenError struct {
	// Operation is the mutating call that was rejected.
	Operation string
}

// Error returns a formatted message naming the rejected operation.
func (e StructureFrozenError) Error() string {
	return fmt.Sprintf("%s rejected: base model structure is frozen", e.Operation)
}

// FrozenRegistryError reports an override mutation attempted after the
// scenario registry was frozen.
type FrozenRegistryError struct {
	// Operation is the mutating call that was rejected.
	Operation string
}

// Error returns a formatted message naming the rejected operation.
func (e FrozenRegistryError) Error() string {
	return fmt.Sprintf("%s rejected: scenario registry is frozen", e.Operation)
}

// RegistrationClosedError reports a scenario registration attempted after
// the registry was frozen or after the solve phase has started. The scenario
// count is fixed before any solve begins.
type RegistrationClosedError struct {
	// Name is the scenario name whose registration was rejected.
	Name string
}

// Error returns a formatted message naming the rejected scenario.
func (e RegistrationClosedError) Error() string {
	return fmt.Sprintf("scenario %q rejected: registration is closed", e.Name)
}

// SolverFailureError encapsulates a non-recoverable solver error (numerical
// or resource failure) for a given scenario while preserving the original
// cause. A solver failure aborts the remaining run, since result ordering and
// comparability across scenarios depends on consistent conditions.
// Infeasibility and "no solution found" are classified outcomes, not errors,
// and are never wrapped in this type.
type SolverFailureError struct {
	// ScenarioID is the scenario whose solve failed.
	ScenarioID int
	// Cause is the underlying error reported by the solver.
	Cause error
}

// Error returns a formatted message including the failing scenario and cause.
func (e SolverFailureError) Error() string {
	return fmt.Sprintf("solver failure on scenario %d: %v", e.ScenarioID, e.Cause)
}

// Unwrap returns the original wrapped error, allowing for error chain
// inspection (e.g., using errors.Is or errors.As).
func (e SolverFailureError) Unwrap() error { return e.Cause }

// ValidationError represents an input validation failure. It identifies which
// field failed validation and provides a human-readable explanation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline
// exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
