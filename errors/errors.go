// Package errors provides error handling for dtsgen.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Hints and details for users
//   - Marking errors so they can be matched with Is after wrapping
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := readDoclets(path); err != nil {
//	    return errors.Wrapf(err, "failed to read %s", path)
//	}
//
//	// Add hints for users
//	return errors.WithHint(err, "run jsdoc with -X to produce a doclet dump")
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
	WithHint      = crdb.WithHint
	WithHintf     = crdb.WithHintf
	WithDetail    = crdb.WithDetail
	WithDetailf   = crdb.WithDetailf
	GetAllHints   = crdb.GetAllHints
	GetAllDetails = crdb.GetAllDetails
	FlattenHints  = crdb.FlattenHints
)

// Error inspection
var (
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Mark      = crdb.Mark
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
)

// AssertionFailedf reports a broken internal invariant.
var AssertionFailedf = crdb.AssertionFailedf

// Sentinel errors. Match with errors.Is; wrap with errors.Wrap to add context
// while preserving the type.
var (
	// ErrFatal marks a compilation that cannot produce output
	ErrFatal = New("fatal compilation failure")

	// ErrInvalidInput indicates a doclet dump that could not be decoded
	ErrInvalidInput = New("invalid input")

	// ErrNotFound indicates a missing input file or directory
	ErrNotFound = New("not found")

	// ErrOutOfDate indicates generated declarations differ from the file on disk
	ErrOutOfDate = New("declarations out of date")
)

// IsFatal reports whether err is or wraps ErrFatal
func IsFatal(err error) bool {
	return err != nil && Is(err, ErrFatal)
}

// IsInvalidInputError checks if an error is or wraps ErrInvalidInput
func IsInvalidInputError(err error) bool {
	return err != nil && Is(err, ErrInvalidInput)
}

// NewInvalidInputError creates an invalid-input error with a formatted message
func NewInvalidInputError(format string, args ...interface{}) error {
	return Wrap(ErrInvalidInput, Newf(format, args...).Error())
}

// WrapInvalidInput wraps an error as an invalid-input error with context
func WrapInvalidInput(err error, context string) error {
	return Wrap(Wrap(ErrInvalidInput, err.Error()), context)
}
