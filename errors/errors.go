// Package errors provides error handling for strata.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Assertion errors for internal invariant violations
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := doSomething(); err != nil {
//	    return errors.Wrap(err, "failed to do something")
//	}
//
//	// Check errors
//	if errors.Is(err, errors.ErrSchemaMismatch) {
//	    // handle stale artifact
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is     = crdb.Is
	IsAny  = crdb.IsAny
	As     = crdb.As
	Unwrap = crdb.Unwrap
	Mark   = crdb.Mark
)

// Assertions and panics
var (
	AssertionFailedf    = crdb.AssertionFailedf
	HasAssertionFailure = crdb.HasAssertionFailure
)

// Stack trace extraction for diagnostics
var (
	GetReportableStackTrace = crdb.GetReportableStackTrace
)

// GetStack is an alias for GetReportableStackTrace for convenience.
var GetStack = crdb.GetReportableStackTrace

// Pipeline error taxonomy.
//
// Use these with errors.Is() for type-safe error checking, and wrap them with
// errors.Wrap() to add context while preserving the class.
var (
	// ErrConfiguration indicates invalid or contradictory configuration
	// (ranges, increments, split indices). Detected before generation starts;
	// always fatal.
	ErrConfiguration = New("invalid configuration")

	// ErrSolverDivergence indicates the solver could not compute a response
	// for a section. Recoverable at section granularity: the section is
	// excluded and reported in aggregate at the end of the run.
	ErrSolverDivergence = New("solver diverged")

	// ErrSchemaMismatch indicates a cached artifact's metadata disagrees with
	// the active configuration. Fatal; never silently coerced.
	ErrSchemaMismatch = New("artifact schema mismatch")

	// ErrLeakageGuard indicates normalization statistics were fit on rows
	// outside the train partition. This is a programming defect, not a
	// runtime condition; it is raised as an assertion failure.
	ErrLeakageGuard = New("normalization leakage")
)

// IsConfigurationError checks if an error is or wraps ErrConfiguration.
func IsConfigurationError(err error) bool {
	return err != nil && Is(err, ErrConfiguration)
}

// IsSolverDivergence checks if an error is or wraps ErrSolverDivergence.
func IsSolverDivergence(err error) bool {
	return err != nil && Is(err, ErrSolverDivergence)
}

// IsSchemaMismatch checks if an error is or wraps ErrSchemaMismatch.
func IsSchemaMismatch(err error) bool {
	return err != nil && Is(err, ErrSchemaMismatch)
}

// IsLeakageGuard checks if an error is or wraps ErrLeakageGuard.
func IsLeakageGuard(err error) bool {
	return err != nil && Is(err, ErrLeakageGuard)
}

// NewConfigurationError creates a configuration error with a formatted message.
func NewConfigurationError(format string, args ...interface{}) error {
	return Wrap(ErrConfiguration, Newf(format, args...).Error())
}

// NewSchemaMismatchError creates a schema-mismatch error with a formatted message.
func NewSchemaMismatchError(format string, args ...interface{}) error {
	return Wrap(ErrSchemaMismatch, Newf(format, args...).Error())
}

// NewLeakageGuardError creates a leakage-guard assertion. The returned error
// wraps ErrLeakageGuard and carries an assertion-failure marker so callers can
// distinguish programming defects from operational failures.
func NewLeakageGuardError(format string, args ...interface{}) error {
	return crdb.NewAssertionErrorWithWrappedErrf(ErrLeakageGuard, format, args...)
}
